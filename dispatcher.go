package adc

import (
	"context"
	"errors"
	"sync"

	"github.com/pior/adc/internal"
	"github.com/pior/adc/proto"
	"github.com/zeebo/xxh3"
)

// ErrDispatcherClosed is returned by Dispatch after Close.
var ErrDispatcherClosed = errors.New("adc: dispatcher closed")

// Handler processes one command. ctx is cancelled when the dispatcher is closed.
type Handler func(ctx context.Context, cmd *proto.Command)

// WorkerSelector picks the worker (0 <= i < workerCount) for an origin SID.
type WorkerSelector func(from proto.SID, workerCount int) int

// DefaultWorkerSelector uses Jump Hash over the xxh3 hash of the SID.
func DefaultWorkerSelector(from proto.SID, workerCount int) int {
	b := [4]byte{byte(from), byte(from >> 8), byte(from >> 16), byte(from >> 24)}
	return internal.JumpHash(xxh3.Hash(b[:]), workerCount)
}

// DispatcherConfig holds configuration for a Dispatcher.
type DispatcherConfig struct {
	// Workers is the number of handler goroutines. Must be > 0.
	Workers int

	// QueueSize is the number of commands buffered per worker.
	QueueSize int

	// SelectWorker picks the worker of a command from its origin.
	// If nil, uses DefaultWorkerSelector.
	SelectWorker WorkerSelector
}

// Dispatcher fans parsed commands out to a fixed set of workers.
//
// All commands with the same From SID go to the same worker, so they are
// handled in the order they were dispatched. Commands without an origin
// (client, hub and UDP types) share one worker.
type Dispatcher struct {
	queues       []chan *proto.Command
	handler      Handler
	selectWorker WorkerSelector

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once

	stats dispatcherStatsCollector
}

// NewDispatcher starts the workers. Call Close to stop them.
func NewDispatcher(config DispatcherConfig, handler Handler) (*Dispatcher, error) {
	if config.Workers <= 0 {
		return nil, errors.New("adc: dispatcher needs at least one worker")
	}
	if handler == nil {
		return nil, errors.New("adc: dispatcher needs a handler")
	}

	selectWorker := config.SelectWorker
	if selectWorker == nil {
		selectWorker = DefaultWorkerSelector
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		queues:       make([]chan *proto.Command, config.Workers),
		handler:      handler,
		selectWorker: selectWorker,
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := range d.queues {
		d.queues[i] = make(chan *proto.Command, config.QueueSize)
		d.wg.Add(1)
		go d.work(d.queues[i])
	}

	return d, nil
}

func (d *Dispatcher) work(queue <-chan *proto.Command) {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case cmd := <-queue:
			d.handler(d.ctx, cmd)
			d.stats.recordHandled()
		}
	}
}

// Dispatch queues cmd on the worker of its origin SID.
// It blocks while that worker's queue is full.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd *proto.Command) error {
	if d.ctx.Err() != nil {
		d.stats.recordRejected()
		return ErrDispatcherClosed
	}

	queue := d.queues[d.selectWorker(cmd.From, len(d.queues))]

	select {
	case queue <- cmd:
		d.stats.recordDispatch()
		return nil
	case <-ctx.Done():
		d.stats.recordRejected()
		return ctx.Err()
	case <-d.ctx.Done():
		d.stats.recordRejected()
		return ErrDispatcherClosed
	}
}

// Close stops the workers and waits for the running handlers to return.
// Commands still queued are dropped.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
}

// Stats returns a snapshot of the dispatcher statistics.
func (d *Dispatcher) Stats() DispatcherStats {
	return d.stats.snapshot()
}
