package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (OFFICETIMER_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("hours", os.Getenv("OFFICETIMER_HOURS"), &cfg.Hours)
	s.setString("minutes", os.Getenv("OFFICETIMER_MINUTES"), &cfg.Minutes)
	s.setString("seconds", os.Getenv("OFFICETIMER_SECONDS"), &cfg.Seconds)
	s.setString("asset-dir", os.Getenv("OFFICETIMER_ASSET_DIR"), &cfg.AssetDir)
	s.setString("sound-file", os.Getenv("OFFICETIMER_SOUND_FILE"), &cfg.SoundFile)
	s.setString("alert-color", os.Getenv("OFFICETIMER_ALERT_COLOR"), &cfg.AlertColor)
	s.setString("neutral-color", os.Getenv("OFFICETIMER_NEUTRAL_COLOR"), &cfg.NeutralColor)
	s.setString("log-level", os.Getenv("OFFICETIMER_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("tick-interval", os.Getenv("OFFICETIMER_TICK_INTERVAL"), &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("audio-ceiling", os.Getenv("OFFICETIMER_AUDIO_CEILING"), &cfg.AudioCeiling); err != nil {
		return err
	}
	if err := s.setDuration("flash-interval", os.Getenv("OFFICETIMER_FLASH_INTERVAL"), &cfg.FlashInterval); err != nil {
		return err
	}

	s.setBoolFromString("start", os.Getenv("OFFICETIMER_START"), &cfg.Start)
	s.setBoolFromString("desktop-notify", os.Getenv("OFFICETIMER_DESKTOP_NOTIFY"), &cfg.DesktopNotify)
	s.setBoolFromString("watch-config", os.Getenv("OFFICETIMER_WATCH_CONFIG"), &cfg.WatchConfig)

	return nil
}
