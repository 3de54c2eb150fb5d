package ports

import "context"

// SoundPlayer loops a sound file until Stop is called.
type SoundPlayer interface {
	// Loop loads path and starts playing it repeatedly. It returns once
	// playback started, or with an error if the file cannot be decoded
	// or the audio device is unavailable.
	Loop(path string) error

	// Stop halts playback started by Loop. It is safe to call when
	// nothing is playing.
	Stop()
}

// Beeper emits a single audible system alert.
type Beeper interface {
	Beep() error
}

// Color names understood by Surface implementations.
const (
	ColorRed    = "red"
	ColorWhite  = "white"
	ColorYellow = "yellow"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorBlack  = "black"
)

// Surface is the background the flash sequence paints.
// Methods are invoked on the event loop goroutine only.
type Surface interface {
	SetBackground(color string)
	RestoreBackground()
}

// Acknowledger presents the completion message to the user. Acknowledge may
// block until the user dismissed it; it never runs on the event loop.
type Acknowledger interface {
	Acknowledge(ctx context.Context, title, message string) error
}

// KnownColor reports whether name is one of the Color constants.
func KnownColor(name string) bool {
	switch name {
	case ColorRed, ColorWhite, ColorYellow, ColorBlue, ColorGreen, ColorBlack:
		return true
	default:
		return false
	}
}

// DesktopNotifier raises a notification outside the terminal.
type DesktopNotifier interface {
	Notify(title, message string) error
}
