package app

import (
	"sync"
	"time"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// ShutdownTimeout is the maximum time to wait for tick goroutines on Close.
const ShutdownTimeout = 5 * time.Second

// Lifecycle manages the countdown state machine:
//
//	Idle -> Running
//	Running -> Idle (stopped), Finished (elapsed)
//	Finished -> Idle (reset after acknowledgment)
type Lifecycle struct {
	mu           sync.RWMutex
	state        domain.CountdownState
	wg           sync.WaitGroup
	logger       ports.Logger
	eventEmitter EventEmitter
}

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current domain.CountdownState, reason string)
}

// NewLifecycle creates a lifecycle in StateIdle.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:        domain.StateIdle,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current countdown state.
func (l *Lifecycle) State() domain.CountdownState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (l *Lifecycle) TransitionTo(newState domain.CountdownState, reason string) error {
	l.mu.Lock()
	oldState := l.state

	if err := checkTransition(oldState, newState); err != nil {
		l.mu.Unlock()
		return err
	}

	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)

	return nil
}

func checkTransition(from, to domain.CountdownState) error {
	switch from {
	case domain.StateIdle:
		if to != domain.StateRunning {
			return domain.ErrNotRunning
		}
	case domain.StateRunning:
		if to == domain.StateRunning {
			return domain.ErrAlreadyRunning
		}
		if to != domain.StateIdle && to != domain.StateFinished {
			return domain.ErrInvalidTransition
		}
	case domain.StateFinished:
		if to != domain.StateIdle {
			return domain.ErrInvalidTransition
		}
	default:
		return domain.ErrInvalidTransition
	}
	return nil
}

// CanStart returns true if a countdown may start.
func (l *Lifecycle) CanStart() bool {
	return l.State() == domain.StateIdle
}

// CanStop returns true if a countdown may be stopped.
func (l *Lifecycle) CanStop() bool {
	return l.State() == domain.StateRunning
}

// AddWorker increments the worker count.
func (l *Lifecycle) AddWorker() {
	l.wg.Add(1)
}

// WorkerDone decrements the worker count.
func (l *Lifecycle) WorkerDone() {
	l.wg.Done()
}

// WaitWithTimeout waits for all workers to finish with a timeout.
// Returns ErrShutdownTimeout if the timeout expires.
func (l *Lifecycle) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		l.logger.Warn("shutdown timeout, tick goroutine still running",
			ports.Duration("timeout", timeout),
		)
		return domain.ErrShutdownTimeout
	}
}
