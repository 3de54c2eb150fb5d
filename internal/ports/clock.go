package ports

import "time"

// Timer represents a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Clock provides time-related operations.
// This interface enables dependency injection for testing timer behavior.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
