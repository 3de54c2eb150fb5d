package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// and YAML friendly. Pointer fields distinguish a missing key from zero.
type FileConfig struct {
	Hours         *int64 `toml:"hours" yaml:"hours"`
	Minutes       *int64 `toml:"minutes" yaml:"minutes"`
	Seconds       *int64 `toml:"seconds" yaml:"seconds"`
	Start         *bool  `toml:"start" yaml:"start"`
	AssetDir      string `toml:"asset_dir" yaml:"asset_dir"`
	SoundFile     string `toml:"sound_file" yaml:"sound_file"`
	TickInterval  string `toml:"tick_interval" yaml:"tick_interval"`
	AudioCeiling  string `toml:"audio_ceiling" yaml:"audio_ceiling"`
	FlashInterval string `toml:"flash_interval" yaml:"flash_interval"`
	AlertColor    string `toml:"alert_color" yaml:"alert_color"`
	NeutralColor  string `toml:"neutral_color" yaml:"neutral_color"`
	DesktopNotify *bool  `toml:"desktop_notify" yaml:"desktop_notify"`
	WatchConfig   *bool  `toml:"watch_config" yaml:"watch_config"`
	LogLevel      string `toml:"log_level" yaml:"log_level"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.officetimer/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".officetimer", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setIntText("hours", fc.Hours, &cfg.Hours)
	s.setIntText("minutes", fc.Minutes, &cfg.Minutes)
	s.setIntText("seconds", fc.Seconds, &cfg.Seconds)

	s.setString("asset-dir", fc.AssetDir, &cfg.AssetDir)
	s.setString("sound-file", fc.SoundFile, &cfg.SoundFile)
	s.setString("alert-color", fc.AlertColor, &cfg.AlertColor)
	s.setString("neutral-color", fc.NeutralColor, &cfg.NeutralColor)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("tick-interval", fc.TickInterval, &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("audio-ceiling", fc.AudioCeiling, &cfg.AudioCeiling); err != nil {
		return err
	}
	if err := s.setDuration("flash-interval", fc.FlashInterval, &cfg.FlashInterval); err != nil {
		return err
	}

	s.setBool("start", fc.Start, &cfg.Start)
	s.setBool("desktop-notify", fc.DesktopNotify, &cfg.DesktopNotify)
	s.setBool("watch-config", fc.WatchConfig, &cfg.WatchConfig)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
