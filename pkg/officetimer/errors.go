package officetimer

import "github.com/bft-labs/officetimer/internal/domain"

// Errors returned by Timer. Check them with errors.Is.
var (
	ErrAlreadyRunning    = domain.ErrAlreadyRunning
	ErrNotRunning        = domain.ErrNotRunning
	ErrInvalidTransition = domain.ErrInvalidTransition
	ErrInvalidConfig     = domain.ErrInvalidConfig
	ErrSoundUnavailable  = domain.ErrSoundUnavailable

	ErrNotNumeric   = domain.ErrNotNumeric
	ErrNegative     = domain.ErrNegative
	ErrOutOfRange   = domain.ErrOutOfRange
	ErrZeroDuration = domain.ErrZeroDuration
)

// ValidationError describes rejected hours/minutes/seconds input. Its
// Error method returns a message suitable for the user.
type ValidationError = domain.ValidationError

// ResourceError reports a sound that could not be played.
type ResourceError = domain.ResourceError

// Seconds is a countdown duration in whole seconds.
type Seconds = domain.Seconds
