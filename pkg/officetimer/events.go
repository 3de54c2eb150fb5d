package officetimer

import "github.com/bft-labs/officetimer/internal/domain"

// State is the state of the countdown.
type State = domain.CountdownState

const (
	StateIdle     = domain.StateIdle
	StateRunning  = domain.StateRunning
	StateFinished = domain.StateFinished
)

// EventHandler receives timer events. Methods are called on the event
// loop goroutine and must return quickly; they must not call StartRequested,
// StopRequested or CloseRequested.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnNotification(event NotificationEvent)
}

// StateChangeEvent is emitted on every countdown state transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// NotificationEvent is emitted when a completed countdown raised its
// notification.
type NotificationEvent struct {
	// Count is the number of notifications raised since New.
	Count int64

	// SoundPath is the resolved sound file, empty if none was available.
	SoundPath string
}

// BaseEventHandler implements EventHandler with no-op methods.
// Embed it to handle only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)   {}
func (BaseEventHandler) OnNotification(NotificationEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current domain.CountdownState, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}
