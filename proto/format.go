package proto

import "strings"

// escapedChars are the characters that cannot appear raw in a parameter.
const escapedChars = " \n\\"

// Escape escapes a parameter for the wire.
//
// Standard style replaces space, newline and backslash with \s, \n and \\.
// Legacy style (NMDC tunnelled commands) only inserts a backslash in front of
// them. The legacy form cannot be told apart from standard escapes on the
// receiving side; it is kept for compatibility with old peers.
func Escape(s string, legacy bool) string {
	if !strings.ContainsAny(s, escapedChars) {
		return s
	}
	return string(appendEscaped(make([]byte, 0, len(s)+8), s, legacy))
}

func appendEscaped(dst []byte, s string, legacy bool) []byte {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if legacy {
			if ch == ' ' || ch == '\n' || ch == '\\' {
				dst = append(dst, '\\')
			}
			dst = append(dst, ch)
			continue
		}

		switch ch {
		case ' ':
			dst = append(dst, '\\', 's')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\\':
			dst = append(dst, '\\', '\\')
		default:
			dst = append(dst, ch)
		}
	}
	return dst
}

// Format renders the command as a wire line, terminator included.
//
// from is written as the origin SID of broadcast, direct, echo and feature
// commands. Legacy lines start with "$ADC" instead of the type, use legacy
// escaping and end with '|'.
func (c *Command) Format(from SID, legacy bool) string {
	return string(c.AppendFormat(make([]byte, 0, 64), from, legacy))
}

// String renders the command with its own From SID in the standard format.
func (c *Command) String() string {
	return c.Format(c.From, false)
}

// AppendFormat appends the wire form of the command to dst, see Format.
func (c *Command) AppendFormat(dst []byte, from SID, legacy bool) []byte {
	if legacy {
		dst = append(dst, LegacyPrefix...)
	} else {
		dst = append(dst, byte(c.Type))
	}
	dst = c.Code.appendTo(dst)

	if c.Type.NeedsFrom() {
		dst = append(dst, Separator)
		dst = from.appendTo(dst)
	}

	if c.Type.NeedsTo() {
		dst = append(dst, Separator)
		dst = c.To.appendTo(dst)
	}

	if c.Type.NeedsFeatures() {
		dst = append(dst, Separator)
		dst = append(dst, c.Features...)
	}

	return c.appendParams(dst, legacy)
}

// FormatCID renders a UDP command addressed by the CID of its sender.
// It panics if the command is not a TypeUDP command.
func (c *Command) FormatCID(cid CID) string {
	c.mustBeUDP()
	dst := make([]byte, 0, 64)
	dst = append(dst, byte(c.Type))
	dst = c.Code.appendTo(dst)
	dst = append(dst, Separator)
	dst = append(dst, cid.Base32()...)
	return string(c.appendParams(dst, false))
}

// FormatUDP renders a UDP command without any positional field.
// It panics if the command is not a TypeUDP command.
func (c *Command) FormatUDP() string {
	c.mustBeUDP()
	dst := make([]byte, 0, 64)
	dst = append(dst, byte(c.Type))
	dst = c.Code.appendTo(dst)
	return string(c.appendParams(dst, false))
}

func (c *Command) mustBeUDP() {
	if c.Type != TypeUDP {
		panic("adc: UDP header requested for a " + c.Type.String() + " command")
	}
}

func (c *Command) appendParams(dst []byte, legacy bool) []byte {
	for _, p := range c.Params {
		dst = append(dst, Separator)
		dst = appendEscaped(dst, p, legacy)
	}
	if legacy {
		return append(dst, LegacyTerminator)
	}
	return append(dst, Terminator)
}
