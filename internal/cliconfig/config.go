package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/officetimer/internal/ports"
	"github.com/bft-labs/officetimer/internal/validate"
	"github.com/bft-labs/officetimer/pkg/officetimer"
)

// Config holds CLI configuration for officetimer.
type Config struct {
	// Hours, Minutes and Seconds are kept as entered; they are validated
	// like interactive input when a countdown starts.
	Hours   string
	Minutes string
	Seconds string
	Start   bool

	AssetDir  string
	SoundFile string

	TickInterval  time.Duration
	AudioCeiling  time.Duration
	FlashInterval time.Duration

	AlertColor    string
	NeutralColor  string
	DesktopNotify bool
	WatchConfig   bool

	LogLevel string
}

// DefaultConfig returns a Config with default values: a 25 minute
// countdown with the sound next to the executable.
func DefaultConfig() Config {
	return Config{
		Hours:         "0",
		Minutes:       "25",
		Seconds:       "0",
		SoundFile:     "timer.mp3",
		TickInterval:  time.Second,
		AudioCeiling:  30 * time.Second,
		FlashInterval: 300 * time.Millisecond,
		AlertColor:    ports.ColorRed,
		NeutralColor:  ports.ColorWhite,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	if c.AudioCeiling <= 0 {
		return fmt.Errorf("audio ceiling must be positive")
	}
	if c.FlashInterval <= 0 {
		return fmt.Errorf("flash interval must be positive")
	}
	if !ports.KnownColor(c.AlertColor) {
		return fmt.Errorf("unknown alert color %q", c.AlertColor)
	}
	if !ports.KnownColor(c.NeutralColor) {
		return fmt.Errorf("unknown neutral color %q", c.NeutralColor)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Start {
		if _, err := validate.Duration(c.Hours, c.Minutes, c.Seconds); err != nil {
			return fmt.Errorf("duration: %w", err)
		}
	}
	return nil
}

// TimerConfig converts c into the library configuration.
func (c Config) TimerConfig() officetimer.Config {
	return officetimer.Config{
		AssetDir:      c.AssetDir,
		SoundFile:     c.SoundFile,
		TickInterval:  c.TickInterval,
		AudioCeiling:  c.AudioCeiling,
		FlashInterval: c.FlashInterval,
		AlertColor:    c.AlertColor,
		NeutralColor:  c.NeutralColor,
		DesktopNotify: c.DesktopNotify,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntText formats an int from a config file into a text field.
// Zero is a meaningful value, so only a missing key is skipped.
func (s *configSetter) setIntText(flag string, value *int64, dst *string) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = strconv.FormatInt(*value, 10)
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
