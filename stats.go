package adc

import (
	"sync/atomic"
)

// ReaderStats contains statistics about a Reader.
//
// For Prometheus integration, expose these as counters.
// Malformed / Lines gives the share of garbage sent by the peer.
type ReaderStats struct {
	Lines      uint64 // Lines framed, keep-alives included
	Commands   uint64 // Lines parsed into a command
	KeepAlives uint64 // Empty lines
	Malformed  uint64 // Lines rejected by the parser
	Bytes      uint64 // Bytes read, terminators included
}

// WriterStats contains statistics about a Writer.
type WriterStats struct {
	Commands uint64 // Commands written
	Bytes    uint64 // Bytes written, terminators included
	Errors   uint64 // Failed writes
}

// DispatcherStats contains statistics about a Dispatcher.
type DispatcherStats struct {
	Dispatched uint64 // Commands queued to a worker
	Handled    uint64 // Commands the handler returned from
	Rejected   uint64 // Dispatch calls that gave up (context done or closed)
}

// readerStatsCollector provides internal methods for updating reader stats.
type readerStatsCollector struct {
	stats ReaderStats
}

func (c *readerStatsCollector) recordLine(n int) {
	atomic.AddUint64(&c.stats.Lines, 1)
	atomic.AddUint64(&c.stats.Bytes, uint64(n))
}

func (c *readerStatsCollector) recordKeepAlive() {
	atomic.AddUint64(&c.stats.KeepAlives, 1)
}

func (c *readerStatsCollector) recordCommand() {
	atomic.AddUint64(&c.stats.Commands, 1)
}

func (c *readerStatsCollector) recordMalformed() {
	atomic.AddUint64(&c.stats.Malformed, 1)
}

func (c *readerStatsCollector) snapshot() ReaderStats {
	return ReaderStats{
		Lines:      atomic.LoadUint64(&c.stats.Lines),
		Commands:   atomic.LoadUint64(&c.stats.Commands),
		KeepAlives: atomic.LoadUint64(&c.stats.KeepAlives),
		Malformed:  atomic.LoadUint64(&c.stats.Malformed),
		Bytes:      atomic.LoadUint64(&c.stats.Bytes),
	}
}

// writerStatsCollector provides internal methods for updating writer stats.
type writerStatsCollector struct {
	stats WriterStats
}

func (c *writerStatsCollector) recordWrite(n int) {
	atomic.AddUint64(&c.stats.Commands, 1)
	atomic.AddUint64(&c.stats.Bytes, uint64(n))
}

func (c *writerStatsCollector) recordError() {
	atomic.AddUint64(&c.stats.Errors, 1)
}

func (c *writerStatsCollector) snapshot() WriterStats {
	return WriterStats{
		Commands: atomic.LoadUint64(&c.stats.Commands),
		Bytes:    atomic.LoadUint64(&c.stats.Bytes),
		Errors:   atomic.LoadUint64(&c.stats.Errors),
	}
}

// dispatcherStatsCollector provides internal methods for updating dispatcher stats.
type dispatcherStatsCollector struct {
	stats DispatcherStats
}

func (c *dispatcherStatsCollector) recordDispatch() {
	atomic.AddUint64(&c.stats.Dispatched, 1)
}

func (c *dispatcherStatsCollector) recordHandled() {
	atomic.AddUint64(&c.stats.Handled, 1)
}

func (c *dispatcherStatsCollector) recordRejected() {
	atomic.AddUint64(&c.stats.Rejected, 1)
}

func (c *dispatcherStatsCollector) snapshot() DispatcherStats {
	return DispatcherStats{
		Dispatched: atomic.LoadUint64(&c.stats.Dispatched),
		Handled:    atomic.LoadUint64(&c.stats.Handled),
		Rejected:   atomic.LoadUint64(&c.stats.Rejected),
	}
}
