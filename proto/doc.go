// Package proto implements the wire codec of the ADC (Advanced Direct Connect)
// protocol.
//
// It turns raw command lines into Command values and Command values back into
// lines. It does no I/O: framing lines on a connection is the job of the
// caller (see the adc package for an io.Reader based framer).
//
// # Wire Format
//
// One command per line:
//
//	<type><code>[ <from>][ <to>][ <features>][ <param>]*\n
//
// The type character decides which positional fields follow the code:
//
//	Type        Char  from   to   features
//	Broadcast   B     yes    -    -
//	Client      C     -      -    -
//	Direct      D     yes    yes  -
//	Echo        E     yes    yes  -
//	Feature     F     yes    -    yes
//	Info        I     (hub)  -    -
//	Hub         H     -      -    -
//	UDP         U     -      -    -
//
// Commands tunnelled over an NMDC connection use the legacy form:
//
//	$ADC<code>[ <param>]*|
//
// Parameters escape space, newline and backslash as \s, \n and \\.
//
// # Parsing
//
//	cmd, err := proto.Parse("BMSG AAAA hello\\sworld", false)
//	if err != nil {
//	    if errors.Is(err, proto.ErrMissingFromSID) {
//	        // ...
//	    }
//	    return err
//	}
//	text := cmd.Param(0) // "hello world"
//
// Every failure is a *ParseError wrapping one of ErrTooShort, ErrInvalidType,
// ErrEscapeAtEOL, ErrUnknownEscape, ErrInvalidSIDLength,
// ErrInvalidFeatureLength, ErrMissingFromSID, ErrMissingToSID or
// ErrMissingFeature. There is no partial result.
//
// # Formatting
//
//	cmd := proto.NewCommand(proto.CmdMSG, proto.TypeBroadcast)
//	cmd.AddParam("hello world")
//	line := cmd.Format(mySID, false) // "BMSG AAAA hello\\sworld\n"
//
// UDP commands are addressed by CID and rendered with FormatCID.
//
// # Named Parameters
//
// Most parameters start with a two-character name:
//
//	nick, ok := cmd.Get("NI", 0)
//	ips := cmd.GetAll("I4", 0)
//	if cmd.HasFlag("TH", 0) { ... } // "TH1"
//
// Lookups are linear scans; commands carry few parameters and the order of
// Params is the wire order.
//
// # Thread Safety
//
// Parse, Escape and Unescape are safe for concurrent use. A Command must not be
// mutated by more than one goroutine at a time.
package proto
