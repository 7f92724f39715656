package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	ActionAvailabilitySaved   = "availability_saved"
	ActionAvailabilityPartial = "availability_save_partial"
	ActionBookingCreated      = "booking_created"
	ActionBookingConflict     = "booking_conflict"
	ActionBookingStatus       = "booking_status_changed"
)

type Event struct {
	ProviderID string
	ActorID    string
	Action     string
	Entity     string
	EntityID   string
	Metadata   any
}

// Dispatcher persists events on a single background worker. A full queue
// drops the event; audit never fails a request.
type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log *slog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, size),
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
			d.log.Error("audit write failed",
				slog.String("action", ev.Action),
				slog.String("provider_id", ev.ProviderID),
				slog.Any("error", err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until the queue is drained or ctx
// expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
