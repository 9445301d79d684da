package proto

import (
	"encoding/base32"
	"errors"
)

// Code is a three-character command code packed into an integer:
// byte0 | byte1<<8 | byte2<<16. The high byte is always zero.
type Code uint32

// CodeOf packs the first three bytes of s.
// The caller guarantees len(s) >= 3.
func CodeOf(s string) Code {
	return Code(s[0]) | Code(s[1])<<8 | Code(s[2])<<16
}

// String unpacks the code back into its three characters.
func (c Code) String() string {
	return string([]byte{byte(c), byte(c >> 8), byte(c >> 16)})
}

func (c Code) appendTo(dst []byte) []byte {
	return append(dst, byte(c), byte(c>>8), byte(c>>16))
}

// SID is a four-character session identifier packed the same way as Code.
type SID uint32

// SIDOf packs the first four bytes of s.
// The caller guarantees len(s) >= 4.
func SIDOf(s string) SID {
	return SID(s[0]) | SID(s[1])<<8 | SID(s[2])<<16 | SID(s[3])<<24
}

// String unpacks the SID back into its four characters.
func (s SID) String() string {
	return string(s.appendTo(make([]byte, 0, 4)))
}

func (s SID) appendTo(dst []byte) []byte {
	return append(dst, byte(s), byte(s>>8), byte(s>>16), byte(s>>24))
}

// CIDSize is the size of a client id (a Tiger hash) in bytes.
const CIDSize = 24

// CID is a client id. It addresses UDP commands.
type CID [CIDSize]byte

// ErrInvalidCID is returned by ParseCID for anything but a 39 character base-32 string.
var ErrInvalidCID = errors.New("adc: invalid CID")

var cidEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Base32 returns the 39 character wire form of the CID.
func (c CID) Base32() string {
	return cidEncoding.EncodeToString(c[:])
}

// IsZero reports whether the CID is unset.
func (c CID) IsZero() bool {
	return c == CID{}
}

// ParseCID decodes the wire form produced by CID.Base32.
func ParseCID(s string) (CID, error) {
	var cid CID
	if len(s) != cidEncoding.EncodedLen(CIDSize) {
		return cid, ErrInvalidCID
	}
	n, err := cidEncoding.Decode(cid[:], []byte(s))
	if err != nil || n != CIDSize {
		return CID{}, ErrInvalidCID
	}
	return cid, nil
}
