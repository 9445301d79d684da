package adc

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/pior/adc/proto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// DefaultMaxLineLength is the longest line a Reader accepts by default.
const DefaultMaxLineLength = 128 * 1024

var (
	// ErrLineTooLong is returned when a line exceeds the configured maximum.
	// The stream is left in the middle of the line: close the connection.
	ErrLineTooLong = errors.New("adc: line too long")

	// ErrTooManyMalformed is returned when the malformed line breaker is open.
	ErrTooManyMalformed = errors.New("adc: too many malformed lines")
)

// ReaderConfig holds configuration for a Reader.
type ReaderConfig struct {
	// Legacy frames lines on '|' and parses them as NMDC tunnelled "$ADC" commands.
	Legacy bool

	// MaxLineLength is the longest accepted line, terminator excluded.
	// Zero means DefaultMaxLineLength.
	MaxLineLength int

	// MalformedLineBreaker makes the Reader skip lines the parser rejects,
	// until the breaker opens. See NewMalformedLineBreaker.
	// If nil, the first malformed line is returned as a *proto.ParseError.
	MalformedLineBreaker *gobreaker.CircuitBreaker[*proto.Command]

	// Logger receives a warning for every skipped line.
	// If nil, the global zerolog logger is used.
	Logger *zerolog.Logger
}

// DefaultReaderConfig returns a strict, standard (non legacy) configuration.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Reader frames and parses commands from a stream.
//
// Empty lines are keep-alives and are skipped. A Reader is not safe for
// concurrent use.
type Reader struct {
	r       *bufio.Reader
	legacy  bool
	delim   byte
	maxLine int
	breaker *gobreaker.CircuitBreaker[*proto.Command]
	logger  zerolog.Logger
	stats   readerStatsCollector
}

// NewReader creates a Reader on top of r.
func NewReader(r io.Reader, config ReaderConfig) *Reader {
	maxLine := config.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}

	delim := byte(proto.Terminator)
	if config.Legacy {
		delim = proto.LegacyTerminator
	}

	logger := log.With().Str("component", "adc_reader").Logger()
	if config.Logger != nil {
		logger = *config.Logger
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Reader{
		r:       br,
		legacy:  config.Legacy,
		delim:   delim,
		maxLine: maxLine,
		breaker: config.MalformedLineBreaker,
		logger:  logger,
	}
}

// Read returns the next command of the stream.
//
// Go errors returned:
//   - io.EOF: end of stream on a line boundary
//   - io.ErrUnexpectedEOF: end of stream in the middle of a line
//   - ErrLineTooLong: the line exceeds MaxLineLength
//   - *proto.ParseError: malformed line (no breaker configured)
//   - ErrTooManyMalformed: malformed line breaker is open
//   - Other I/O errors from the underlying reader
func (r *Reader) Read() (*proto.Command, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}

		if line == "" {
			r.stats.recordKeepAlive()
			continue
		}

		cmd, err := r.parse(line)
		if err == nil {
			r.stats.recordCommand()
			return cmd, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrTooManyMalformed, err)
		}

		r.stats.recordMalformed()
		if r.breaker == nil {
			return nil, err
		}

		r.logger.Warn().Err(err).Str("line", line).Msg("skipping malformed line")
	}
}

func (r *Reader) parse(line string) (*proto.Command, error) {
	if r.breaker == nil {
		return proto.Parse(line, r.legacy)
	}
	return r.breaker.Execute(func() (*proto.Command, error) {
		return proto.Parse(line, r.legacy)
	})
}

// readLine reads up to the next delimiter and returns the line without it.
func (r *Reader) readLine() (string, error) {
	// ReadSlice does not allocate, fall back to a copy for lines larger than the buffer.
	line, err := r.r.ReadSlice(r.delim)
	if err == bufio.ErrBufferFull {
		buf := append([]byte(nil), line...)
		for err == bufio.ErrBufferFull {
			if len(buf) > r.maxLine {
				return "", ErrLineTooLong
			}
			line, err = r.r.ReadSlice(r.delim)
			buf = append(buf, line...)
		}
		line = buf
	}

	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}

	if len(line)-1 > r.maxLine {
		return "", ErrLineTooLong
	}

	r.stats.recordLine(len(line))
	return string(line[:len(line)-1]), nil
}

// Stats returns a snapshot of the reader statistics.
func (r *Reader) Stats() ReaderStats {
	return r.stats.snapshot()
}
