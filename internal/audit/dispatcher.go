package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event struct {
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

const queueSize = 100

// Dispatcher records audit events off the request path. A full queue drops
// the event instead of blocking the caller.
type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event

	// mu guards closed; senders hold it shared so Close never races a send.
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed", "action", ev.Action, "error", err)
		}
		cancel()
	}
}

// Dispatch is safe on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue and waits for the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
