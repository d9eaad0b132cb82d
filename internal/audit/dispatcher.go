package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	ActionUserRegistered         = "user_registered"
	ActionUserLoggedIn           = "user_logged_in"
	ActionTokenRefreshed         = "token_refreshed"
	ActionPasswordResetRequested = "password_reset_requested"
	ActionPasswordResetCompleted = "password_reset_completed"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	UserID    *string
	Action    string
	IP        string
	UserAgent string
	Metadata  any
}

// Dispatcher writes events off the request path. A full queue drops the
// event; auditing never fails a request.
type Dispatcher struct {
	sink   Sink
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}
	onDrop func()

	// mu guards closed; senders hold the read lock so the queue is never
	// closed under them.
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *zap.Logger, onDrop func()) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		log:    log.Named("audit"),
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
		onDrop: onDrop,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.sink.Write(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch queues ev. Events arriving after Close are dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop("audit dispatcher closed, dropping event", ev)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.drop("audit queue full, dropping event", ev)
	}
}

func (d *Dispatcher) drop(msg string, ev Event) {
	d.log.Warn(msg, zap.String("action", ev.Action))
	if d.onDrop != nil {
		d.onDrop()
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
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
