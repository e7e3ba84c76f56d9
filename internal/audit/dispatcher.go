package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher relays audit events to a sink on a dedicated goroutine so
// emission never runs sink code on the request path. A nil *Dispatcher is a
// valid no-op dispatcher; NewDispatcher returns nil when auditing is disabled.
type Dispatcher struct {
	sink       Sink
	dropIfFull bool
	queue      chan Event
	quit       chan struct{}
	drained    chan struct{}
	dropped    atomic.Uint64
	stopped    atomic.Bool
	stopOnce   sync.Once
}

func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		dropIfFull: cfg.DropIfFull,
		queue:      make(chan Event, cfg.BufferSize),
		quit:       make(chan struct{}),
		drained:    make(chan struct{}),
	}

	go d.deliverLoop()

	return d
}

// deliverLoop forwards queued events until Close, then drains what is
// already buffered so accepted events are never silently lost.
func (d *Dispatcher) deliverLoop() {
	defer close(d.drained)

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.quit:
			for {
				select {
				case event := <-d.queue:
					d.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit queues an event for delivery. With DropIfFull set a full buffer
// increments the dropped counter instead of blocking; otherwise Emit waits
// until the buffer has room, the context is cancelled, or the dispatcher
// shuts down.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.stopped.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		case <-d.quit:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops accepting events and waits for the delivery goroutine to
// finish draining. Safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.stopOnce.Do(func() {
		d.stopped.Store(true)
		close(d.quit)
		<-d.drained
	})
}

// Dropped reports how many events were discarded because the buffer was full.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
