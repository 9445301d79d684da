package adc

import (
	"io"
	"sync"

	"github.com/pior/adc/proto"
)

// Shared by all writers: a typical command line is well under 256 bytes.
var writeBuffers = newByteBufferPool(256)

// WriterConfig holds configuration for a Writer.
type WriterConfig struct {
	// Legacy renders commands as NMDC tunnelled "$ADC" lines ending with '|'.
	Legacy bool

	// From is the SID written as origin of broadcast, direct, echo and
	// feature commands. Zero means the From field of each command.
	From proto.SID
}

// Writer serializes commands to a stream.
//
// A Writer is safe for concurrent use: each command is written with a single
// call to the underlying writer, so lines are never interleaved.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	legacy bool
	from   proto.SID
	stats  writerStatsCollector
}

// NewWriter creates a Writer on top of w.
// If w has a Flush() error method (bufio.Writer), it is flushed after every command.
func NewWriter(w io.Writer, config WriterConfig) *Writer {
	return &Writer{
		w:      w,
		legacy: config.Legacy,
		from:   config.From,
	}
}

type flusher interface {
	Flush() error
}

// Write renders cmd and writes it, terminator included.
func (w *Writer) Write(cmd *proto.Command) error {
	from := w.from
	if from == 0 {
		from = cmd.From
	}

	buf := writeBuffers.Get()
	defer writeBuffers.Put(buf)

	buf.Write(cmd.AppendFormat(buf.AvailableBuffer(), from, w.legacy))

	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.w.Write(buf.Bytes())
	if err == nil {
		if f, ok := w.w.(flusher); ok {
			err = f.Flush()
		}
	}
	if err != nil {
		w.stats.recordError()
		return err
	}

	w.stats.recordWrite(n)
	return nil
}

// WriteAll writes the commands in order, stopping at the first error.
func (w *Writer) WriteAll(cmds []*proto.Command) error {
	for _, cmd := range cmds {
		if err := w.Write(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns a snapshot of the writer statistics.
func (w *Writer) Stats() WriterStats {
	return w.stats.snapshot()
}
