package officetimer

import "context"

// Plugin extends a Timer. Plugins are initialized in registration order
// when Run starts and shut down in reverse order when it returns.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string

	// Initialize starts the plugin. ctx is cancelled when Run returns.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its goroutines.
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on initialization.
type PluginConfig struct {
	Logger Logger
	Timer  *Timer
}
