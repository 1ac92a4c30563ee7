package service

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueFull is returned when the generation backlog is at capacity.
var ErrQueueFull = errors.New("generation queue is full")

// ErrQueueClosed is returned for jobs submitted after shutdown.
var ErrQueueClosed = errors.New("generation queue is closed")

type job struct {
	id   string
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// Queue serializes generations process-wide: at most one runs at a time,
// later requests wait FIFO. A queued or in-flight job can be aborted by ID,
// which a superseding auto-generation request uses to cancel a stale one.
type Queue struct {
	mu        sync.Mutex
	jobs      chan *job
	closed    bool
	currentID string
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewQueue creates a queue with the given backlog depth and starts its
// worker.
func NewQueue(depth int) *Queue {
	if depth <= 0 {
		depth = 1
	}
	q := &Queue{jobs: make(chan *job, depth)}
	q.wg.Add(1)
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer q.wg.Done()
	for j := range q.jobs {
		if j.ctx.Err() != nil {
			// Abandoned while waiting its turn.
			j.done <- j.ctx.Err()
			continue
		}

		jctx, cancel := context.WithCancel(j.ctx)
		q.mu.Lock()
		q.currentID = j.id
		q.cancel = cancel
		q.mu.Unlock()

		err := j.fn(jctx)

		q.mu.Lock()
		q.currentID = ""
		q.cancel = nil
		q.mu.Unlock()
		cancel()

		j.done <- err
	}
}

// Do runs fn on the queue worker and waits for its result. The worker
// derives fn's context from ctx, so caller cancellation propagates.
func (q *Queue) Do(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.mu.Unlock()

	j := &job{id: id, ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case q.jobs <- j:
	default:
		return ErrQueueFull
	}
	return <-j.done
}

// Abort cancels the in-flight job with the given ID. Returns false when no
// such job is running.
func (q *Queue) Abort(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.currentID != id || q.cancel == nil {
		return false
	}
	q.cancel()
	return true
}

// Close stops accepting jobs and waits for the worker to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
