package configwatcher

import "github.com/bft-labs/officetimer/pkg/officetimer"

// WithConfigWatcher returns an officetimer Option that enables config file
// watching. When the file changes, its notification settings are applied
// to the running timer.
//
// Usage:
//
//	t, err := officetimer.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:          path,
//	        Load:          load,
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) officetimer.Option {
	plugin := New(cfg)
	return officetimer.WithPlugin(plugin)
}
