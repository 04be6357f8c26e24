package input

import (
	"context"
	"errors"
	"log/slog"

	"github.com/philipparndt/goruler/internal/measurement"
)

const defaultQueueSize = 256

// Dispatcher serialises events onto a single goroutine. Frontends call Post
// from their event callbacks; Run feeds the events to the router in order.
type Dispatcher struct {
	router *Router
	events chan Event
	calls  chan func()
	log    *slog.Logger

	// AfterEach is called on the dispatcher goroutine after every event
	AfterEach func(ev Event, err error)
}

// NewDispatcher creates a dispatcher for router
func NewDispatcher(router *Router, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		router: router,
		events: make(chan Event, defaultQueueSize),
		calls:  make(chan func(), 16),
		log:    logger,
	}
}

// Post queues ev without blocking the caller, which is usually a render
// loop. When the queue is full, for example while a calibration prompt
// holds the dispatcher, the event is dropped and Post reports false.
func (d *Dispatcher) Post(ev Event) bool {
	select {
	case d.events <- ev:
		return true
	default:
	}

	if ev.Kind == Drag {
		// the next drag supersedes it
		d.log.Debug("dropped drag event, queue full")
	} else {
		d.log.Warn("dropped event, queue full", "kind", ev.Kind, "key", ev.Key)
	}
	return false
}

// Invoke queues fn to run on the dispatcher goroutine, between events
func (d *Dispatcher) Invoke(fn func()) {
	d.calls <- fn
}

// Run dispatches events until ctx is done
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-d.calls:
			fn()
		case ev := <-d.events:
			err := d.router.Dispatch(ctx, ev)
			if err != nil {
				if errors.Is(err, measurement.ErrPrecondition) {
					d.log.Error("malformed gesture, event aborted", "kind", ev.Kind, "point", ev.Point, "error", err)
				} else {
					d.log.Error("event handler failed", "kind", ev.Kind, "key", ev.Key, "error", err)
				}
			}
			if d.AfterEach != nil {
				d.AfterEach(ev, err)
			}
		}
	}
}
