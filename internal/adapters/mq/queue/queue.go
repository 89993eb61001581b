// Package queue carries track batches from the ingestion API to the
// worker pool. The service runs on a bounded in-memory queue; the
// Queue interface leaves room for a broker-backed implementation.
package queue

import (
	"context"
	"sync"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/pkg/metrics"
)

// DefaultCapacity bounds the queue when no option overrides it.
const DefaultCapacity = 10_000

// Queue is the batch transport between the ingestion API and the
// workers. Enqueue never blocks; consumers range over Dequeue until
// Close drains and closes it.
type Queue interface {
	Enqueue(ctx context.Context, b model.Batch) error
	Dequeue() <-chan model.Batch
	Len() int
	Cap() int
	Close() error
}

// Buffered is a channel-backed Queue with a fixed capacity.
type Buffered struct {
	ch chan model.Batch

	// mu serializes Close against in-flight sends so a send on the
	// closed channel cannot happen: Enqueue holds the read side for
	// the duration of its send attempt.
	mu     sync.RWMutex
	closed bool
}

// NewBuffered builds an empty queue.
func NewBuffered(opts ...Option) *Buffered {
	cfg := settings{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &Buffered{ch: make(chan model.Batch, cfg.capacity)}
	metrics.UpdateQueueDepth(0, cfg.capacity)
	return q
}

// Enqueue appends b without blocking. It returns ErrClosed after
// Close, ErrFull when the queue is at capacity, and the context error
// when ctx is already done.
func (q *Buffered) Enqueue(ctx context.Context, b model.Batch) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueReject("closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueReject("canceled")
		return err
	}

	select {
	case q.ch <- b:
		metrics.RecordEnqueue()
		metrics.UpdateQueueDepth(len(q.ch), cap(q.ch))
		return nil
	default:
		metrics.RecordQueueReject("full")
		return ErrFull
	}
}

// Dequeue exposes the receive side. The channel closes once Close has
// been called and every queued batch has been consumed.
func (q *Buffered) Dequeue() <-chan model.Batch {
	return q.ch
}

// Len reports the number of queued batches.
func (q *Buffered) Len() int {
	return len(q.ch)
}

// Cap reports the queue capacity.
func (q *Buffered) Cap() int {
	return cap(q.ch)
}

// Close stops intake. Batches already queued remain readable from
// Dequeue. Close is idempotent.
func (q *Buffered) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.ch)
	return nil
}

// Closed reports whether Close has been called.
func (q *Buffered) Closed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
