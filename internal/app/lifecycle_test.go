package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous domain.CountdownState
	current  domain.CountdownState
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current domain.CountdownState, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func TestNewLifecycle(t *testing.T) {
	l := NewLifecycle(&mockLogger{}, nil)

	if l == nil {
		t.Fatal("NewLifecycle returned nil")
	}
	if l.State() != domain.StateIdle {
		t.Errorf("initial state = %v, want StateIdle", l.State())
	}
}

func TestLifecycle_TransitionTo_ValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []domain.CountdownState
	}{
		{"start", []domain.CountdownState{domain.StateRunning}},
		{"start then stop", []domain.CountdownState{domain.StateRunning, domain.StateIdle}},
		{"run to completion", []domain.CountdownState{domain.StateRunning, domain.StateFinished}},
		{"reset after finish", []domain.CountdownState{domain.StateRunning, domain.StateFinished, domain.StateIdle}},
		{"restart after stop", []domain.CountdownState{domain.StateRunning, domain.StateIdle, domain.StateRunning}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(&mockLogger{}, nil)
			for _, to := range tt.path {
				if err := l.TransitionTo(to, "test"); err != nil {
					t.Fatalf("TransitionTo(%v) error = %v", to, err)
				}
			}
			if got, want := l.State(), tt.path[len(tt.path)-1]; got != want {
				t.Errorf("state = %v, want %v", got, want)
			}
		})
	}
}

func TestLifecycle_TransitionTo_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		setup   []domain.CountdownState
		to      domain.CountdownState
		wantErr error
	}{
		{"idle to idle", nil, domain.StateIdle, domain.ErrNotRunning},
		{"idle to finished", nil, domain.StateFinished, domain.ErrNotRunning},
		{"running to running", []domain.CountdownState{domain.StateRunning}, domain.StateRunning, domain.ErrAlreadyRunning},
		{"finished to running", []domain.CountdownState{domain.StateRunning, domain.StateFinished}, domain.StateRunning, domain.ErrInvalidTransition},
		{"finished to finished", []domain.CountdownState{domain.StateRunning, domain.StateFinished}, domain.StateFinished, domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(&mockLogger{}, nil)
			for _, s := range tt.setup {
				if err := l.TransitionTo(s, "setup"); err != nil {
					t.Fatalf("setup TransitionTo(%v) error = %v", s, err)
				}
			}
			before := l.State()

			err := l.TransitionTo(tt.to, "test")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TransitionTo(%v) error = %v, want %v", tt.to, err, tt.wantErr)
			}
			if l.State() != before {
				t.Errorf("state changed to %v after rejected transition", l.State())
			}
		})
	}
}

func TestLifecycle_EventEmission(t *testing.T) {
	emitter := &mockEmitter{}
	l := NewLifecycle(&mockLogger{}, emitter)

	_ = l.TransitionTo(domain.StateRunning, "start requested")
	_ = l.TransitionTo(domain.StateFinished, "countdown elapsed")
	_ = l.TransitionTo(domain.StateRunning, "rejected")

	events := emitter.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].previous != domain.StateIdle || events[0].current != domain.StateRunning {
		t.Errorf("event[0] = %+v", events[0])
	}
	if events[1].reason != "countdown elapsed" {
		t.Errorf("event[1].reason = %q, want %q", events[1].reason, "countdown elapsed")
	}
}

func TestLifecycle_CanStartCanStop(t *testing.T) {
	l := NewLifecycle(&mockLogger{}, nil)

	if !l.CanStart() || l.CanStop() {
		t.Error("idle lifecycle should allow start only")
	}

	_ = l.TransitionTo(domain.StateRunning, "test")
	if l.CanStart() || !l.CanStop() {
		t.Error("running lifecycle should allow stop only")
	}

	_ = l.TransitionTo(domain.StateFinished, "test")
	if l.CanStart() || l.CanStop() {
		t.Error("finished lifecycle should allow neither")
	}
}

func TestLifecycle_WaitWithTimeout(t *testing.T) {
	t.Run("workers finish", func(t *testing.T) {
		l := NewLifecycle(&mockLogger{}, nil)
		l.AddWorker()
		go func() {
			time.Sleep(10 * time.Millisecond)
			l.WorkerDone()
		}()

		if err := l.WaitWithTimeout(time.Second); err != nil {
			t.Errorf("WaitWithTimeout() error = %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		l := NewLifecycle(&mockLogger{}, nil)
		l.AddWorker()
		defer l.WorkerDone()

		err := l.WaitWithTimeout(10 * time.Millisecond)
		if !errors.Is(err, domain.ErrShutdownTimeout) {
			t.Errorf("WaitWithTimeout() error = %v, want ErrShutdownTimeout", err)
		}
	})
}
