package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists audit events. Implementations are append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// ErrQueueFull is returned by a queued Publisher when its buffer is full.
var ErrQueueFull = errors.New("audit queue is full")

// ErrPublisherClosed is returned by Emit after Close.
var ErrPublisherClosed = errors.New("audit publisher is closed")

// Publisher stamps events and hands them to a store, either directly or
// through a buffered queue drained by a Worker.
type Publisher struct {
	store Store
	queue chan<- Event

	mu     sync.Mutex
	closed bool
}

// NewPublisher writes events to store synchronously.
func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// NewQueuedPublisher enqueues events without blocking. Pair it with a Worker
// reading from the same channel.
func NewQueuedPublisher(queue chan<- Event) *Publisher {
	return &Publisher{queue: queue}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.queue != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			return ErrPublisherClosed
		}
		select {
		case p.queue <- event:
			return nil
		default:
			return ErrQueueFull
		}
	}
	return p.store.Append(ctx, event)
}

// Close closes the queue so the Worker drains and exits. Later calls to Emit
// return ErrPublisherClosed. Close is a no-op for a synchronous Publisher and
// safe to call more than once.
func (p *Publisher) Close() {
	if p.queue == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
}
