package proto

import (
	"errors"
	"strings"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want uint32
	}{
		{name: "SUP", code: CmdSUP, want: 'S' | 'U'<<8 | 'P'<<16},
		{name: "MSG", code: CmdMSG, want: 0x47534d},
		{name: "GET", code: CmdGET, want: 0x544547},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.name); got != tt.code {
				t.Errorf("CodeOf(%q) = %#x, want %#x", tt.name, uint32(got), uint32(tt.code))
			}
			if uint32(tt.code) != tt.want {
				t.Errorf("%s = %#x, want %#x", tt.name, uint32(tt.code), tt.want)
			}
			if got := tt.code.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestCodeIgnoresExtraBytes(t *testing.T) {
	if got := CodeOf("MSG AAAA"); got != CmdMSG {
		t.Errorf("CodeOf(MSG AAAA) = %q, want MSG", got)
	}
	if got := (CmdMSG | 0x7f000000).String(); got != "MSG" {
		t.Errorf("String() with high byte = %q, want MSG", got)
	}
}

func TestSID(t *testing.T) {
	for _, s := range []string{"AAAA", "ABCD", "7Z2Q"} {
		sid := SIDOf(s)
		if got := sid.String(); got != s {
			t.Errorf("SIDOf(%q).String() = %q", s, got)
		}
	}

	if SIDOf("AAAA") == SIDOf("AAAB") {
		t.Errorf("distinct SIDs compare equal")
	}
	if got := HubSID.String(); got != "\xff\xff\xff\xff" {
		t.Errorf("HubSID.String() = %q", got)
	}
}

func TestCID(t *testing.T) {
	var cid CID
	for i := range cid {
		cid[i] = byte(i * 7)
	}

	encoded := cid.Base32()
	if len(encoded) != 39 {
		t.Fatalf("Base32() length = %d, want 39", len(encoded))
	}
	if strings.Contains(encoded, "=") {
		t.Errorf("Base32() = %q contains padding", encoded)
	}

	decoded, err := ParseCID(encoded)
	if err != nil {
		t.Fatalf("ParseCID(%q) failed: %v", encoded, err)
	}
	if decoded != cid {
		t.Errorf("ParseCID(Base32()) = %x, want %x", decoded, cid)
	}

	if !(CID{}).IsZero() || cid.IsZero() {
		t.Errorf("IsZero() is wrong")
	}
}

func TestParseCIDErrors(t *testing.T) {
	for _, s := range []string{"", "ABC", strings.Repeat("A", 40), strings.Repeat("1", 39)} {
		if _, err := ParseCID(s); !errors.Is(err, ErrInvalidCID) {
			t.Errorf("ParseCID(%q) error = %v, want %v", s, err, ErrInvalidCID)
		}
	}
}
