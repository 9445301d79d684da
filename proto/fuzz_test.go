package proto

import (
	"errors"
	"strings"
	"testing"
)

// FuzzParse checks that the parser never panics and that what it accepts
// honours the positional field rules.
// Run with: go test -fuzz='^FuzzParse$' -fuzztime=60s ./proto
func FuzzParse(f *testing.F) {
	f.Add("BMSG AAAA hello\\sworld", false)
	f.Add("DMSG AAAA BBBB text", false)
	f.Add("EMSG AAAA BBBB text PMAAAA", false)
	f.Add("FSCH AAAA +TCP4-NAT0 TRABC", false)
	f.Add("ISID AAAB", false)
	f.Add("HSUP ADBASE ADTIGR", false)
	f.Add("CGET file files.xml.bz2 0 -1", false)
	f.Add("URES ABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFG SI1234", false)
	f.Add("$ADCGET file my\\ file 0 -1", true)
	f.Add("$ADCSND file x 0 10", true)

	// Malformed input
	f.Add("", false)
	f.Add("BMS", false)
	f.Add("XMSG", false)
	f.Add("BMSG", false)
	f.Add("BMSG AAA", false)
	f.Add("DMSG AAAA", false)
	f.Add("FSCH AAAA +TCP", false)
	f.Add("HMSG a\\", false)
	f.Add("HMSG a\\x", false)
	f.Add("HMSG   ", false)
	f.Add("$ADC", true)

	f.Fuzz(func(t *testing.T, line string, legacy bool) {
		cmd, err := Parse(line, legacy)
		if err != nil {
			if cmd != nil {
				t.Errorf("Parse(%q) returned a command and an error", line)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse(%q) error %T is not a *ParseError", line, err)
			}
			return
		}

		if !cmd.Type.Valid() {
			t.Errorf("Parse(%q) accepted type %q", line, cmd.Type)
		}
		if legacy && cmd.Type != TypeClient {
			t.Errorf("legacy Parse(%q) type = %q", line, cmd.Type)
		}
		if cmd.Type == TypeInfo && cmd.From != HubSID {
			t.Errorf("info Parse(%q) from = %q", line, cmd.From)
		}
		if len(cmd.Features)%5 != 0 {
			t.Errorf("Parse(%q) features %q", line, cmd.Features)
		}

		// Formatting the parameters back and parsing them again is lossless.
		if cmd.Type == TypeHub {
			again, err := Parse(strings.TrimSuffix(cmd.String(), "\n"), false)
			if err != nil {
				t.Fatalf("Parse(String()) of %q failed: %v", line, err)
			}
			if !trailingEmpty(cmd.Params) && !equalParams(again.Params, cmd.Params) {
				t.Errorf("params of %q: %q after round trip, want %q", line, again.Params, cmd.Params)
			}
		}
	})
}

// FuzzEscape checks that standard escaping is reversible.
func FuzzEscape(f *testing.F) {
	f.Add("a b\\c\nd")
	f.Add("")
	f.Add("\\s\\n")
	f.Add("   ")

	f.Fuzz(func(t *testing.T, s string) {
		got, err := Unescape(Escape(s, false), false)
		if err != nil {
			t.Fatalf("Unescape(Escape(%q)) failed: %v", s, err)
		}
		if got != s {
			t.Errorf("Unescape(Escape(%q)) = %q", s, got)
		}
	})
}

// A trailing empty parameter renders as a trailing separator, which the
// parser does not turn into a token.
func trailingEmpty(params []string) bool {
	return len(params) > 0 && params[len(params)-1] == ""
}

func equalParams(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
