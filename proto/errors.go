package proto

import "errors"

// Parse failures. Every error returned by Parse wraps exactly one of these,
// so callers can branch with errors.Is.
//
// All of them are terminal for the line: there is no partial result. Whether
// the connection is dropped, the line is logged or ignored is up to the caller.
var (
	ErrTooShort             = errors.New("too short")
	ErrInvalidType          = errors.New("invalid type")
	ErrEscapeAtEOL          = errors.New("escape at eol")
	ErrUnknownEscape        = errors.New("unknown escape")
	ErrInvalidSIDLength     = errors.New("invalid SID length")
	ErrInvalidFeatureLength = errors.New("invalid feature length")
	ErrMissingFromSID       = errors.New("missing from_sid")
	ErrMissingToSID         = errors.New("missing to_sid")
	ErrMissingFeature       = errors.New("missing feature")
)

// ParseError represents a line that could not be parsed.
//
// Err is one of the sentinel errors above, Line is the offending input.
type ParseError struct {
	Err  error
	Line string
}

func (e *ParseError) Error() string {
	return "adc: parse error: " + e.Err.Error()
}

// Unwrap returns the sentinel error for errors.Is
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error, line string) *ParseError {
	return &ParseError{Err: err, Line: line}
}

// IsParseError reports whether err (or anything it wraps) is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
