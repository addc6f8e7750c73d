package services

import (
	"context"
	"sync"
	"time"

	"gitdeck/internal/domain"
	"gitdeck/internal/logging"
)

const defaultQueueSize = 32

// task is one queued mutation. The context is the caller's: cancellation
// reaches the operation when it runs, and the caller always gets a result on
// done.
type task struct {
	ctx  context.Context
	done chan error
	fn   func(context.Context) error
	name string
}

// Serializer is the single-writer gate for a session. Mutations execute
// strictly in submission order on one worker goroutine; when the bounded
// queue is full the request is rejected immediately rather than blocking
// the caller.
type Serializer struct {
	closing chan struct{}
	once    sync.Once
	stopped chan struct{}
	tasks   chan *task
}

func NewSerializer(queueSize int) *Serializer {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	s := &Serializer{
		closing: make(chan struct{}),
		stopped: make(chan struct{}),
		tasks:   make(chan *task, queueSize),
	}
	go s.worker()
	return s
}

// Do enqueues fn and waits for its result. Returns ErrOperationQueueFull
// when the queue is at capacity and ErrSessionClosed when the serializer
// has shut down before or while the task was queued.
func (s *Serializer) Do(ctx context.Context, name string, fn func(context.Context) error) error {
	select {
	case <-s.closing:
		return domain.ErrSessionClosed
	default:
	}

	t := &task{
		ctx:  ctx,
		done: make(chan error, 1),
		fn:   fn,
		name: name,
	}

	select {
	case s.tasks <- t:
	case <-s.closing:
		return domain.ErrSessionClosed
	default:
		logging.Logger.Warn("operation queue full", "operation", name)
		return domain.ErrOperationQueueFull
	}

	select {
	case err := <-t.done:
		return err
	case <-s.stopped:
		// The worker may have finished this task just before exiting
		select {
		case err := <-t.done:
			return err
		default:
			return domain.ErrSessionClosed
		}
	}
}

func (s *Serializer) worker() {
	defer close(s.stopped)

	for {
		select {
		case t := <-s.tasks:
			t.done <- s.run(t)
		case <-s.closing:
			// Reject whatever is still queued
			for {
				select {
				case t := <-s.tasks:
					t.done <- domain.ErrSessionClosed
				default:
					return
				}
			}
		}
	}
}

func (s *Serializer) run(t *task) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := t.fn(t.ctx)
	logging.Logger.Debug("operation completed",
		"operation", t.name,
		"duration", time.Since(start),
		"error", err,
	)
	return err
}

// Close stops the worker. Queued tasks fail with ErrSessionClosed; the task
// currently executing finishes first.
func (s *Serializer) Close() {
	s.once.Do(func() {
		close(s.closing)
	})
	<-s.stopped
}
