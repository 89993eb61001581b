// Package worker drains the ingestion queue into the dataset.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/okian/jamstats/pkg/metrics"
)

// throughputInterval paces the batches-per-second gauge.
const throughputInterval = 5 * time.Second

// Appender is the dataset side of ingestion. Append reports the
// dataset size after the write.
type Appender interface {
	Append(ctx context.Context, tracks []model.Track) int
}

// Queue is the receive side of the batch transport.
type Queue interface {
	Dequeue() <-chan model.Batch
	Len() int
	Cap() int
}

// Pool drains batches off the queue concurrently and appends them to
// the dataset. Start it once; stop it by closing the queue and then
// calling Stop.
type Pool struct {
	size  int
	queue Queue
	sink  Appender
	log   logger.Logger

	processed atomic.Int64
	started   atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewPool sizes a pool. A non-positive size defaults to twice the CPU
// count.
func NewPool(size int, q Queue, sink Appender) *Pool {
	if size < 1 {
		size = 2 * runtime.NumCPU()
	}
	return &Pool{
		size:  size,
		queue: q,
		sink:  sink,
		log:   logger.Get().Named("workers"),
		stop:  make(chan struct{}),
	}
}

// Size reports the number of drain goroutines the pool runs.
func (p *Pool) Size() int { return p.size }

// Processed reports how many batches landed since the last throughput
// sample.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Start launches the drain goroutines and the throughput sampler.
// Drainers run until ctx is canceled or the queue's channel closes;
// calling Start again is a no-op.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	metrics.UpdateWorkerCount(p.size)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.drain(ctx, i)
	}

	p.wg.Add(1)
	go p.sampleThroughput(ctx)
}

// Stop blocks until every goroutine has exited, or returns the context
// error on timeout. Close the queue before calling Stop so the
// drainers finish the backlog and observe the channel close.
func (p *Pool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker pool stop: %w", ctx.Err())
	}
}

func (p *Pool) drain(ctx context.Context, id int) {
	defer p.wg.Done()

	in := p.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-in:
			if !ok {
				return
			}
			metrics.RecordDequeue()
			metrics.UpdateQueueDepth(p.queue.Len(), p.queue.Cap())

			if err := p.ingest(ctx, b); err != nil {
				p.log.Error(ctx, "batch dropped",
					logger.Int("worker", id),
					logger.String("batchID", b.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// ingest appends one batch and observes its wall time.
func (p *Pool) ingest(ctx context.Context, b model.Batch) error {
	if len(b.Tracks) == 0 {
		metrics.RecordWorkerError("empty_batch")
		return fmt.Errorf("batch %s: %w", b.ID, ErrEmptyBatch)
	}

	start := time.Now()
	total := p.sink.Append(ctx, b.Tracks)
	p.processed.Add(1)

	metrics.RecordBatchIngested()
	metrics.RecordBatchProcessLatency(float64(time.Since(start).Microseconds()) / 1000)

	p.log.Debug(ctx, "batch appended",
		logger.String("batchID", b.ID),
		logger.Int("tracks", len(b.Tracks)),
		logger.Int("datasetTotal", total),
	)
	return nil
}

// sampleThroughput publishes the pool-wide ingestion rate until Stop
// or ctx ends it.
func (p *Pool) sampleThroughput(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(throughputInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case now := <-ticker.C:
			if window := now.Sub(last).Seconds(); window > 0 {
				metrics.UpdateWorkerThroughput(float64(p.processed.Swap(0)) / window)
			}
			last = now
		}
	}
}
