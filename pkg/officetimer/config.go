package officetimer

import (
	"fmt"
	"time"

	"github.com/bft-labs/officetimer/internal/adapters/fs"
	"github.com/bft-labs/officetimer/internal/app"
	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// Config holds the settings of a Timer.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// AssetDir is the directory the sound file is resolved against.
	// Default: the directory of the running executable.
	AssetDir string

	// SoundFile is the sound looped on completion, relative to AssetDir.
	// Default: "timer.mp3"
	SoundFile string

	// TickInterval is the wall-clock length of one countdown second.
	// Default: 1 second
	TickInterval time.Duration

	// AudioCeiling bounds how long the sound loops after completion.
	// Default: 30 seconds
	AudioCeiling time.Duration

	// FlashInterval is the delay between flash steps.
	// Default: 300 milliseconds
	FlashInterval time.Duration

	// AlertColor and NeutralColor are the flash colors.
	// Default: "red" and "white"
	AlertColor   string
	NeutralColor string

	// DesktopNotify raises a desktop notification on completion.
	DesktopNotify bool

	// QueueSize is the event loop's queue length.
	// Default: 64
	QueueSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero fields with their default values.
func (c *Config) SetDefaults() {
	if c.SoundFile == "" {
		c.SoundFile = fs.DefaultSoundFile
	}
	if c.TickInterval <= 0 {
		c.TickInterval = app.DefaultTickInterval
	}
	if c.AudioCeiling <= 0 {
		c.AudioCeiling = app.DefaultAudioCeiling
	}
	if c.FlashInterval <= 0 {
		c.FlashInterval = app.DefaultFlashInterval
	}
	if c.AlertColor == "" {
		c.AlertColor = ports.ColorRed
	}
	if c.NeutralColor == "" {
		c.NeutralColor = ports.ColorWhite
	}
	if c.QueueSize <= 0 {
		c.QueueSize = app.DefaultQueueSize
	}
}

// Validate checks the configuration. Call SetDefaults first.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", domain.ErrInvalidConfig)
	}
	if c.AudioCeiling <= 0 {
		return fmt.Errorf("%w: audio ceiling must be positive", domain.ErrInvalidConfig)
	}
	if c.FlashInterval <= 0 {
		return fmt.Errorf("%w: flash interval must be positive", domain.ErrInvalidConfig)
	}
	if !ports.KnownColor(c.AlertColor) {
		return fmt.Errorf("%w: unknown alert color %q", domain.ErrInvalidConfig, c.AlertColor)
	}
	if !ports.KnownColor(c.NeutralColor) {
		return fmt.Errorf("%w: unknown neutral color %q", domain.ErrInvalidConfig, c.NeutralColor)
	}
	if c.AlertColor == c.NeutralColor {
		return fmt.Errorf("%w: alert and neutral colors must differ", domain.ErrInvalidConfig)
	}
	return nil
}
