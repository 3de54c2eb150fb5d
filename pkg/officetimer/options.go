package officetimer

import (
	"github.com/bft-labs/officetimer/internal/ports"
	"github.com/bft-labs/officetimer/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// Interfaces of the collaborators a Timer drives. Each has a terminal or
// system implementation used when the matching option is not given.
type (
	// Clock provides the current time and scheduled callbacks.
	Clock = ports.Clock

	// Display renders the remaining time. Called on the event loop.
	Display = ports.Display

	// DisplayFuncs adapts plain functions to Display.
	DisplayFuncs = ports.DisplayFuncs

	// SoundPlayer loops the completion sound.
	SoundPlayer = ports.SoundPlayer

	// Beeper emits the fallback beep.
	Beeper = ports.Beeper

	// Surface is painted by the flash sequence. Called on the event loop.
	Surface = ports.Surface

	// Acknowledger presents the completion message.
	Acknowledger = ports.Acknowledger

	// DesktopNotifier raises desktop notifications.
	DesktopNotifier = ports.DesktopNotifier
)

// Option configures optional behavior of Timer.
type Option func(*options)

// options holds the optional configuration for a Timer instance.
type options struct {
	logger       Logger
	clock        Clock
	display      Display
	player       SoundPlayer
	beeper       Beeper
	surface      Surface
	acknowledger Acknowledger
	desktop      DesktopNotifier
	eventHandler EventHandler
	plugins      []Plugin
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces the system clock. Tests use it to control time.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithDisplay sets where ticks are rendered.
// If not provided, ticks are discarded.
func WithDisplay(display Display) Option {
	return func(o *options) {
		o.display = display
	}
}

// WithSoundPlayer replaces the speaker-backed player.
func WithSoundPlayer(player SoundPlayer) Option {
	return func(o *options) {
		o.player = player
	}
}

// WithBeeper replaces the system beep used when the sound cannot play.
func WithBeeper(beeper Beeper) Option {
	return func(o *options) {
		o.beeper = beeper
	}
}

// WithSurface sets the surface painted by the flash sequence.
// If not provided, the flash sequence runs without painting.
func WithSurface(surface Surface) Option {
	return func(o *options) {
		o.surface = surface
	}
}

// WithAcknowledger sets how the completion message is presented.
// If not provided, completions are acknowledged immediately.
func WithAcknowledger(ack Acknowledger) Option {
	return func(o *options) {
		o.acknowledger = ack
	}
}

// WithDesktopNotifier replaces the desktop notifier used when
// Config.DesktopNotify is set.
func WithDesktopNotifier(desktop DesktopNotifier) Option {
	return func(o *options) {
		o.desktop = desktop
	}
}

// WithEventHandler sets a handler for timer events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when Run starts.
// Plugins are initialized in registration order and shutdown in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
