package officetimer

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/officetimer/internal/adapters/audio"
	"github.com/bft-labs/officetimer/internal/adapters/clock"
	"github.com/bft-labs/officetimer/internal/adapters/fs"
	"github.com/bft-labs/officetimer/internal/adapters/term"
	"github.com/bft-labs/officetimer/internal/app"
	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
	"github.com/bft-labs/officetimer/internal/validate"
	"github.com/bft-labs/officetimer/pkg/log"
)

// Timer is a countdown timer with completion notifications.
// Use New() to create an instance, then Run() to process commands.
type Timer struct {
	opts      options
	logger    ports.Logger
	loop      *app.Loop
	lifecycle *app.Lifecycle
	engine    *app.Engine
	notifier  *app.Notifier
	emitter   *eventEmitterWrapper
	plugins   []Plugin

	mu     sync.RWMutex
	config Config
	ctx    context.Context

	running atomic.Bool
}

// New creates a new Timer with the given configuration.
// The timer starts in StateIdle; call Run to start its event loop.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Timer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var logger ports.Logger = log.NewNoopLogger()
	if o.logger != nil {
		logger = o.logger
	}
	if o.clock == nil {
		o.clock = clock.System
	}
	if o.display == nil {
		o.display = DisplayFuncs{}
	}
	if o.player == nil {
		o.player = audio.NewPlayer(logger, 0)
	}
	if o.beeper == nil {
		o.beeper = audio.NewBeeper(os.Stderr)
	}
	if o.desktop == nil {
		o.desktop = term.NewDesktop()
	}

	t := &Timer{
		opts:    o,
		logger:  logger,
		plugins: o.plugins,
		config:  cfg,
		ctx:     context.Background(),
		emitter: &eventEmitterWrapper{handler: o.eventHandler},
	}

	t.loop = app.NewLoop(o.clock, cfg.QueueSize)
	t.lifecycle = app.NewLifecycle(logger, t.emitter)
	t.notifier = app.NewNotifier(app.NotifierDeps{
		Player:         o.player,
		Beeper:         o.beeper,
		Surface:        o.surface,
		Acknowledger:   o.acknowledger,
		Desktop:        o.desktop,
		Loop:           t.loop,
		Clock:          o.clock,
		Logger:         logger,
		OnAcknowledged: t.acknowledged,
	}, t.notifySettings(cfg))
	t.engine = app.NewEngine(
		app.EngineConfig{TickInterval: cfg.TickInterval},
		t.lifecycle, t.loop, o.clock, o.display,
		completionNotifier{timer: t},
		logger,
	)

	return t, nil
}

// Run processes timer commands until ctx is cancelled. Plugins are
// initialized before the first command runs and shut down in reverse
// order on return. A countdown still running when ctx is cancelled is
// abandoned without notification.
func (t *Timer) Run(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return domain.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	t.ctx = runCtx
	t.mu.Unlock()

	pluginCfg := PluginConfig{Logger: t.logger, Timer: t}
	for i, p := range t.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			t.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			t.shutdownPlugins(t.plugins[:i])
			return err
		}
		t.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	err := t.loop.Run(runCtx)

	closeErr := t.engine.Close()
	t.shutdownPlugins(t.plugins)

	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, closeErr)
}

func (t *Timer) shutdownPlugins(plugins []Plugin) {
	shutdownCtx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			t.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		} else {
			t.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}
}

// StartRequested validates the hours, minutes and seconds fields and
// starts a countdown of their total. Invalid input returns a
// *ValidationError; starting while a countdown runs returns
// ErrAlreadyRunning. It blocks until the event loop processed the command.
func (t *Timer) StartRequested(hours, minutes, seconds string) (Seconds, error) {
	secs, err := validate.Duration(hours, minutes, seconds)
	if err != nil {
		t.logger.Debug("input rejected", ports.Err(err))
		return 0, err
	}

	ctx := t.runContext()
	if err := t.loop.Do(func() error { return t.engine.Start(ctx, secs) }); err != nil {
		return 0, err
	}
	return secs, nil
}

// StopRequested stops the running countdown. No tick or notification of
// that countdown is delivered afterwards.
func (t *Timer) StopRequested() error {
	return t.loop.Do(t.engine.Stop)
}

// CloseRequested reports whether the application may close. While a
// countdown runs, confirm is asked first; on confirmation the countdown
// is stopped.
func (t *Timer) CloseRequested(confirm func() bool) bool {
	if t.engine.State() != domain.StateRunning {
		return true
	}
	if confirm == nil || !confirm() {
		return false
	}
	if err := t.StopRequested(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
		t.logger.Warn("stop on close failed", ports.Err(err))
	}
	return true
}

// State returns the current countdown state.
// Safe to call concurrently from any goroutine.
func (t *Timer) State() State {
	return t.engine.State()
}

// Remaining returns the seconds left in the running countdown, or zero.
func (t *Timer) Remaining() Seconds {
	return t.engine.Remaining()
}

// Config returns the active configuration.
func (t *Timer) Config() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.config
}

// UpdateConfig applies new notification settings: sound, colors, flash
// interval, audio ceiling and desktop notifications. TickInterval and
// QueueSize only take effect on a new Timer.
func (t *Timer) UpdateConfig(cfg Config) error {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	if cfg.TickInterval != t.config.TickInterval {
		t.logger.Warn("tick interval change ignored until restart",
			ports.Duration("current", t.config.TickInterval),
			ports.Duration("requested", cfg.TickInterval))
	}
	cfg.TickInterval = t.config.TickInterval
	cfg.QueueSize = t.config.QueueSize
	t.config = cfg
	t.mu.Unlock()

	t.notifier.UpdateSettings(t.notifySettings(cfg))
	t.logger.Info("notification settings updated",
		ports.String("sound_file", cfg.SoundFile),
		ports.Duration("audio_ceiling", cfg.AudioCeiling))
	return nil
}

// WaitNotified blocks until the sound and flash of every notification
// raised so far finished, or ctx is done.
func (t *Timer) WaitNotified(ctx context.Context) error {
	return t.notifier.Wait(ctx)
}

// Notifications returns how many completed countdowns were notified.
func (t *Timer) Notifications() int64 {
	return t.notifier.Triggered()
}

func (t *Timer) runContext() context.Context {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ctx
}

func (t *Timer) notifySettings(cfg Config) app.NotifySettings {
	resolver := fs.NewAssetResolver(cfg.AssetDir)
	path, err := resolver.Resolve(cfg.SoundFile)
	if err != nil {
		t.logger.Warn("sound file unavailable, fallback beep will be used",
			ports.String("sound_file", cfg.SoundFile),
			ports.String("asset_dir", resolver.Dir()),
			ports.Err(err))
		path = ""
	}

	return app.NotifySettings{
		SoundPath:     path,
		AudioCeiling:  cfg.AudioCeiling,
		FlashInterval: cfg.FlashInterval,
		AlertColor:    cfg.AlertColor,
		NeutralColor:  cfg.NeutralColor,
		DesktopNotify: cfg.DesktopNotify,
	}
}

func (t *Timer) acknowledged() {
	if err := t.engine.Reset(); err != nil {
		t.logger.Debug("acknowledgment ignored", ports.Err(err))
	}
}

// completionNotifier raises the notification and reports it to the
// event handler.
type completionNotifier struct {
	timer *Timer
}

func (c completionNotifier) Notify(ctx context.Context) {
	n := c.timer.notifier
	n.Notify(ctx)

	if h := c.timer.opts.eventHandler; h != nil {
		h.OnNotification(NotificationEvent{
			Count:     n.Triggered(),
			SoundPath: n.Settings().SoundPath,
		})
	}
}
