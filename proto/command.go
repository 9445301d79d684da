package proto

import (
	"slices"
	"strconv"
)

// Command is a single ADC command.
// It is a plain data container; Parse fills it from a wire line and the
// Format methods render it back.
//
// A Command is not safe for concurrent mutation.
type Command struct {
	// Type is the message type, one of the Type* constants.
	Type Type

	// Code is the packed three-character command code, e.g. CmdMSG.
	Code Code

	// From is the origin SID. Set for broadcast, direct, echo and feature
	// commands; HubSID for info commands; zero otherwise.
	From SID

	// To is the target SID of direct and echo commands.
	To SID

	// Features is the feature selector of feature commands, as sent on the
	// wire: a concatenation of "+XXXX" (required) and "-XXXX" (excluded).
	Features string

	// Params holds the unescaped parameters in wire order.
	Params []string
}

// NewCommand creates a command without positional fields.
//
//	cmd := NewCommand(CmdINF, TypeBroadcast)
//	cmd.From = mySID
//	cmd.AddNamedParam("NI", "nick")
func NewCommand(code Code, typ Type) *Command {
	return &Command{Code: code, Type: typ}
}

// NewDirectCommand creates a command addressed to a single SID.
func NewDirectCommand(code Code, to SID, typ Type) *Command {
	return &Command{Code: code, Type: typ, To: to}
}

// NewStatus creates a STA command.
// The first parameter is "000" on success, the three digit severity+code
// otherwise; the second is the description.
func NewStatus(sev Severity, code ErrorCode, desc string, typ Type) *Command {
	c := NewCommand(CmdSTA, typ)
	if sev == SeveritySuccess && code == ErrorGeneric {
		c.AddParam(StatusSuccess)
	} else {
		c.AddParam(formatStatusCode(sev, code))
	}
	c.AddParam(desc)
	return c
}

func formatStatusCode(sev Severity, code ErrorCode) string {
	n := int(sev)*100 + int(code)
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// AddParam appends a parameter.
func (c *Command) AddParam(value string) *Command {
	c.Params = append(c.Params, value)
	return c
}

// AddNamedParam appends a named parameter: the two-character name followed by the value.
func (c *Command) AddNamedParam(name, value string) *Command {
	c.Params = append(c.Params, name+value)
	return c
}

// AddParams appends named parameters, sorted by name so the output is stable.
func (c *Command) AddParams(params map[string]string) *Command {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		c.AddNamedParam(name, params[name])
	}
	return c
}

// AddFeature appends a four-character feature to the selector of a feature command.
func (c *Command) AddFeature(name string, required bool) *Command {
	if required {
		c.Features += string(rune(FeatureRequired)) + name
	} else {
		c.Features += string(rune(FeatureExcluded)) + name
	}
	return c
}

// Feature is one entry of a feature selector.
type Feature struct {
	Name     string
	Required bool
}

// FeatureList splits the feature selector into its entries.
func (c *Command) FeatureList() []Feature {
	if len(c.Features) == 0 {
		return nil
	}
	features := make([]Feature, 0, len(c.Features)/5)
	for i := 0; i+5 <= len(c.Features); i += 5 {
		features = append(features, Feature{
			Name:     c.Features[i+1 : i+5],
			Required: c.Features[i] == FeatureRequired,
		})
	}
	return features
}

// Param returns the n-th parameter, or "" when there are not enough parameters.
func (c *Command) Param(n int) string {
	if n < 0 || n >= len(c.Params) {
		return ""
	}
	return c.Params[n]
}

// Get returns the value of the first parameter named name, starting at
// index start. The value is the parameter without its two-character name.
func (c *Command) Get(name string, start int) (string, bool) {
	for i := max(start, 0); i < len(c.Params); i++ {
		if matchName(c.Params[i], name) {
			return c.Params[i][2:], true
		}
	}
	return "", false
}

// GetAll returns the values of every parameter named name, starting at index start.
func (c *Command) GetAll(name string, start int) []string {
	var values []string
	for i := max(start, 0); i < len(c.Params); i++ {
		if matchName(c.Params[i], name) {
			values = append(values, c.Params[i][2:])
		}
	}
	return values
}

// HasFlag reports whether a boolean parameter named name is set ("XX1"),
// starting at index start.
func (c *Command) HasFlag(name string, start int) bool {
	for i := max(start, 0); i < len(c.Params); i++ {
		p := c.Params[i]
		if len(p) == 3 && p[2] == '1' && matchName(p, name) {
			return true
		}
	}
	return false
}

// matchName compares the first two bytes of a parameter with a parameter name.
func matchName(param, name string) bool {
	return len(param) >= 2 && len(name) >= 2 && param[0] == name[0] && param[1] == name[1]
}
