package domain

import "fmt"

// Seconds is a countdown duration in whole seconds.
type Seconds int64

// MaxSeconds bounds any countdown so hours*3600 never overflows.
const MaxSeconds Seconds = 1<<62 - 1

// Clock formats s as HH:MM:SS. Minutes and seconds are two digits;
// hours are at least two digits and otherwise unbounded.
func (s Seconds) Clock() string {
	if s < 0 {
		s = 0
	}
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// ZeroClock is the display shown when no countdown is running.
const ZeroClock = "00:00:00"

// CountdownState is the state of the countdown engine.
type CountdownState int

const (
	StateIdle CountdownState = iota
	StateRunning
	StateFinished
)

// String returns a human-readable representation of the state.
func (s CountdownState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// FlashSteps is the number of color changes in a flash sequence.
const FlashSteps = 6

// FlashCycle counts the steps of one flash sequence.
// Even steps show the alert color, odd steps the neutral color.
type FlashCycle struct {
	step int
}

// Done reports whether all FlashSteps changes were performed.
func (c FlashCycle) Done() bool { return c.step >= FlashSteps }

// Step returns the number of changes performed so far.
func (c FlashCycle) Step() int { return c.step }

// Alert reports whether the next change shows the alert color.
func (c FlashCycle) Alert() bool { return c.step%2 == 0 }

// Next returns the cycle advanced by one change. It never exceeds FlashSteps.
func (c FlashCycle) Next() FlashCycle {
	if c.Done() {
		return c
	}
	return FlashCycle{step: c.step + 1}
}
