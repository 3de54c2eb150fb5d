package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the officetimer domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called while a countdown runs.
	ErrAlreadyRunning = errors.New("officetimer: countdown already running")

	// ErrNotRunning is returned when Stop() is called without a running countdown.
	ErrNotRunning = errors.New("officetimer: countdown not running")

	// ErrInvalidTransition is returned for any other rejected state change,
	// for example Start() on a finished countdown that was not reset.
	ErrInvalidTransition = errors.New("officetimer: invalid state transition")

	// ErrShutdownTimeout is returned when a tick goroutine outlives Close.
	ErrShutdownTimeout = errors.New("officetimer: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("officetimer: invalid configuration")

	// ErrLoopClosed is returned when work is posted to a stopped event loop.
	ErrLoopClosed = errors.New("officetimer: event loop closed")

	// ErrSoundUnavailable is wrapped by ResourceError when no sound file is configured
	// or the file does not exist.
	ErrSoundUnavailable = errors.New("officetimer: sound unavailable")
)

// Validation kinds. A *ValidationError matches its kind with errors.Is.
var (
	ErrNotNumeric   = errors.New("not numeric")
	ErrNegative     = errors.New("negative")
	ErrOutOfRange   = errors.New("out of range")
	ErrZeroDuration = errors.New("zero duration")
)

// ValidationKind classifies rejected timer input.
type ValidationKind int

const (
	NotNumeric ValidationKind = iota + 1
	Negative
	OutOfRange
	ZeroDuration
)

// String returns a human-readable representation of the kind.
func (k ValidationKind) String() string {
	switch k {
	case NotNumeric:
		return "NotNumeric"
	case Negative:
		return "Negative"
	case OutOfRange:
		return "OutOfRange"
	case ZeroDuration:
		return "ZeroDuration"
	default:
		return "Unknown"
	}
}

func (k ValidationKind) sentinel() error {
	switch k {
	case NotNumeric:
		return ErrNotNumeric
	case Negative:
		return ErrNegative
	case OutOfRange:
		return ErrOutOfRange
	case ZeroDuration:
		return ErrZeroDuration
	default:
		return nil
	}
}

// ValidationError describes why the hours/minutes/seconds input was rejected.
// Field is empty for errors about the combined duration.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
}

// Error returns the message shown to the user.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case NotNumeric:
		return "Please enter valid numbers"
	case Negative:
		return "Time cannot be negative"
	case OutOfRange:
		switch e.Field {
		case "minutes":
			return "Minutes must be less than 60"
		case "seconds":
			return "Seconds must be less than 60"
		default:
			return fmt.Sprintf("%s value %q is too large", e.Field, e.Value)
		}
	case ZeroDuration:
		return "Please set a time greater than 0"
	default:
		return "invalid input"
	}
}

// Unwrap returns the kind sentinel so errors.Is(err, ErrOutOfRange) works.
func (e *ValidationError) Unwrap() error {
	return e.Kind.sentinel()
}

// ResourceError reports a failure to load or play the notification sound.
// It is recovered locally with a fallback beep and never surfaced as fatal.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("sound %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sound %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
