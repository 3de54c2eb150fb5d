package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// DefaultQueueSize is the event loop's buffered queue length.
const DefaultQueueSize = 64

// Loop is the single goroutine that owns all UI-facing work: display
// callbacks, engine commands and flash steps. Other goroutines hand work
// to it with Post, Do or After; it runs posted functions strictly in FIFO
// order.
type Loop struct {
	clock ports.Clock
	queue chan func()

	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop creates an event loop. Call Run to start draining it.
func NewLoop(clock ports.Clock, size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		clock: clock,
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Run executes posted functions until ctx is cancelled. Work still queued
// when Run returns is dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.closeOnce.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues fn for execution on the loop. It blocks while the queue is
// full and returns domain.ErrLoopClosed once the loop stopped.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return domain.ErrLoopClosed
	default:
	}

	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return domain.ErrLoopClosed
	}
}

// Do runs fn on the loop and waits for its result. It must not be called
// from the loop goroutine itself.
func (l *Loop) Do(fn func() error) error {
	result := make(chan error, 1)
	if err := l.Post(func() { result <- fn() }); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		select {
		case err := <-result:
			return err
		default:
			return domain.ErrLoopClosed
		}
	}
}

// After posts fn to the loop once d has elapsed on the loop's clock.
func (l *Loop) After(d time.Duration, fn func()) ports.Timer {
	return l.clock.AfterFunc(d, func() {
		_ = l.Post(fn)
	})
}
