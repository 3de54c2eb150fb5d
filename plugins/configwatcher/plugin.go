// Package configwatcher reloads officetimer notification settings when
// the configuration file changes on disk.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/officetimer/pkg/log"
	"github.com/bft-labs/officetimer/pkg/officetimer"
)

// LoadFunc reads the configuration file at path.
type LoadFunc func(path string) (officetimer.Config, error)

// Plugin implements config watching functionality.
// It watches the directory of the config file, since editors often
// replace the file instead of writing it in place.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	path          string
	load          LoadFunc
	retryInterval time.Duration
	maxRetry      time.Duration
	debounceDelay time.Duration

	// Runtime state
	logger   officetimer.Logger
	timer    *officetimer.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  atomic.Int64
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the configuration file to watch.
	Path string

	// Load parses the file. The resulting Config is applied with
	// Timer.UpdateConfig.
	Load LoadFunc

	// RetryInterval is the first delay between attempts to watch a
	// directory that does not exist yet. It doubles up to MaxRetryInterval.
	// Default: 5 seconds
	RetryInterval time.Duration

	// MaxRetryInterval caps the retry delay.
	// Default: 1 minute
	MaxRetryInterval time.Duration

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults. Path and Load
// must still be set.
func DefaultConfig() Config {
	return Config{
		RetryInterval:    5 * time.Second,
		MaxRetryInterval: time.Minute,
		DebounceDelay:    100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Second
	}
	if cfg.MaxRetryInterval <= 0 {
		cfg.MaxRetryInterval = time.Minute
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}

	return &Plugin{
		path:          cfg.Path,
		load:          cfg.Load,
		retryInterval: cfg.RetryInterval,
		maxRetry:      cfg.MaxRetryInterval,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Reloads returns how many times the configuration was applied.
func (p *Plugin) Reloads() int64 {
	return p.reloads.Load()
}

// Initialize sets up the plugin and starts the config watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg officetimer.PluginConfig) error {
	p.mu.Lock()
	p.logger = cfg.Logger
	p.timer = cfg.Timer
	p.mu.Unlock()

	if p.path == "" || p.load == nil || p.timer == nil {
		p.logger.Warn("config watcher disabled: no config file or loader")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher plugin initialized", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

// watchLoop watches for config file changes.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("config watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(p.path)
	name := filepath.Base(p.path)

	retry := newBackoff(p.retryInterval, p.maxRetry)
	for {
		err := watcher.Add(dir)
		if err == nil {
			break
		}
		p.logger.Warn("config watcher: failed to watch directory, retrying",
			log.String("dir", dir),
			log.Duration("retry_in", retry.current),
			log.Err(err))

		if !retry.wait(ctx) {
			return
		}
	}
	retry.reset()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

func (p *Plugin) reload() {
	cfg, err := p.load(p.path)
	if err != nil {
		p.logger.Error("config watcher: reload failed", log.String("path", p.path), log.Err(err))
		return
	}
	if err := p.timer.UpdateConfig(cfg); err != nil {
		p.logger.Error("config watcher: rejected configuration", log.String("path", p.path), log.Err(err))
		return
	}
	p.reloads.Add(1)
	p.logger.Info("config watcher: configuration reloaded", log.String("path", p.path))
}

// Ensure Plugin implements officetimer.Plugin.
var _ officetimer.Plugin = (*Plugin)(nil)
