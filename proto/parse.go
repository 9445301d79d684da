package proto

import "strings"

// parseState tracks which positional slots have been filled so far.
type parseState struct {
	fromSet     bool
	toSet       bool
	featuresSet bool
}

// Parse parses a single command line, without its terminator.
//
// Standard format: <type><code>[ <from>][ <to>][ <features>][ <param>]*
// Legacy format:   $ADC<code>[ <param>]*
//
// Legacy lines are always TypeClient and never carry a from SID.
//
// Returns a *ParseError wrapping one of the Err* sentinels on failure.
func Parse(line string, legacy bool) (*Command, error) {
	cmd := &Command{}
	body := standardBodyOffset

	if legacy {
		if len(line) < minLegacyLength {
			return nil, newParseError(ErrTooShort, line)
		}
		cmd.Type = TypeClient
		cmd.Code = CodeOf(line[len(LegacyPrefix):])
		body = legacyBodyOffset
	} else {
		if len(line) < minStandardLength {
			return nil, newParseError(ErrTooShort, line)
		}
		cmd.Type = Type(line[0])
		cmd.Code = CodeOf(line[1:])
	}

	if !cmd.Type.Valid() {
		return nil, newParseError(ErrInvalidType, line)
	}

	if cmd.Type == TypeInfo {
		cmd.From = HubSID
	}

	state := parseState{fromSet: legacy}

	var cur strings.Builder
	var err error
	for i := body; i < len(line); i++ {
		switch ch := line[i]; ch {
		case '\\':
			i++
			if i == len(line) {
				return nil, newParseError(ErrEscapeAtEOL, line)
			}
			b, ok := unescapeByte(line[i], legacy)
			if !ok {
				return nil, newParseError(ErrUnknownEscape, line)
			}
			cur.WriteByte(b)
		case Separator:
			state, err = consume(cmd, state, cur.String())
			if err != nil {
				return nil, newParseError(err, line)
			}
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}

	// The line has no explicit terminator: flush the last token.
	if cur.Len() > 0 {
		state, err = consume(cmd, state, cur.String())
		if err != nil {
			return nil, newParseError(err, line)
		}
	}

	if err := state.complete(cmd.Type); err != nil {
		return nil, newParseError(err, line)
	}

	return cmd, nil
}

// consume assigns a completed token to the next free positional slot of the
// command type, or appends it to the parameters once all slots are filled.
func consume(cmd *Command, state parseState, token string) (parseState, error) {
	switch {
	case cmd.Type.NeedsFrom() && !state.fromSet:
		if len(token) != 4 {
			return state, ErrInvalidSIDLength
		}
		cmd.From = SIDOf(token)
		state.fromSet = true

	case cmd.Type.NeedsTo() && !state.toSet:
		if len(token) != 4 {
			return state, ErrInvalidSIDLength
		}
		cmd.To = SIDOf(token)
		state.toSet = true

	case cmd.Type.NeedsFeatures() && !state.featuresSet:
		if len(token)%5 != 0 {
			return state, ErrInvalidFeatureLength
		}
		cmd.Features = token
		state.featuresSet = true

	default:
		cmd.Params = append(cmd.Params, token)
	}
	return state, nil
}

// complete checks that every positional slot required by typ was filled.
func (s parseState) complete(typ Type) error {
	if typ.NeedsFrom() && !s.fromSet {
		return ErrMissingFromSID
	}
	if typ.NeedsTo() && !s.toSet {
		return ErrMissingToSID
	}
	if typ.NeedsFeatures() && !s.featuresSet {
		return ErrMissingFeature
	}
	return nil
}

// unescapeByte decodes the character following a backslash.
func unescapeByte(ch byte, legacy bool) (byte, bool) {
	switch ch {
	case 's':
		return ' ', true
	case 'n':
		return '\n', true
	case '\\':
		return '\\', true
	case ' ':
		// $ADCGET escaping, left over from older protocol revisions
		return ' ', legacy
	default:
		return 0, false
	}
}

// Unescape decodes the escape sequences of a single parameter.
// It is the inverse of Escape(s, false). Unescaped spaces are kept as is.
func Unescape(s string, legacy bool) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			return "", newParseError(ErrEscapeAtEOL, s)
		}
		ch, ok := unescapeByte(s[i], legacy)
		if !ok {
			return "", newParseError(ErrUnknownEscape, s)
		}
		b.WriteByte(ch)
	}
	return b.String(), nil
}
