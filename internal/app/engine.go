package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// DefaultTickInterval is the wall-clock length of one tick.
const DefaultTickInterval = time.Second

// CompletionNotifier is invoked on the loop when a countdown elapses.
type CompletionNotifier interface {
	Notify(ctx context.Context)
}

// EngineConfig holds the tunables of the countdown engine.
type EngineConfig struct {
	TickInterval time.Duration
}

// Engine is the countdown state machine. Start, Stop and Reset must be
// called on the loop goroutine; State and Remaining are safe anywhere.
//
// Each run owns one tick goroutine. The goroutine alone decrements the
// remaining seconds; it hands every display update to the loop, where
// it is dropped if the run was stopped in the meantime.
type Engine struct {
	cfg       EngineConfig
	lifecycle *Lifecycle
	loop      *Loop
	clock     ports.Clock
	display   ports.Display
	notifier  CompletionNotifier
	logger    ports.Logger

	current atomic.Pointer[run]
}

type run struct {
	id        uuid.UUID
	total     domain.Seconds
	parent    context.Context
	cancel    context.CancelFunc
	startedAt time.Time

	running   atomic.Bool
	remaining atomic.Int64
}

func (r *run) fields() []ports.Field {
	return []ports.Field{
		ports.String("run_id", r.id.String()),
		ports.Int64("seconds", int64(r.total)),
	}
}

// NewEngine creates an idle engine.
func NewEngine(cfg EngineConfig, lifecycle *Lifecycle, loop *Loop, clock ports.Clock,
	display ports.Display, notifier CompletionNotifier, logger ports.Logger) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Engine{
		cfg:       cfg,
		lifecycle: lifecycle,
		loop:      loop,
		clock:     clock,
		display:   display,
		notifier:  notifier,
		logger:    logger,
	}
}

// State returns the current countdown state.
func (e *Engine) State() domain.CountdownState {
	return e.lifecycle.State()
}

// Remaining returns the remaining seconds of the current run, or zero.
func (e *Engine) Remaining() domain.Seconds {
	r := e.current.Load()
	if r == nil || !r.running.Load() {
		return 0
	}
	return domain.Seconds(r.remaining.Load())
}

// Start begins counting down seconds. It is only valid from StateIdle;
// any other state is a caller bug and is reported as an error.
func (e *Engine) Start(ctx context.Context, seconds domain.Seconds) error {
	if seconds <= 0 {
		return &domain.ValidationError{Kind: domain.ZeroDuration}
	}

	if !e.lifecycle.CanStart() {
		err := domain.ErrInvalidTransition
		if e.lifecycle.State() == domain.StateRunning {
			err = domain.ErrAlreadyRunning
		}
		e.logger.Error("start rejected",
			ports.String("state", e.lifecycle.State().String()),
			ports.Err(err),
		)
		return err
	}
	if err := e.lifecycle.TransitionTo(domain.StateRunning, "start requested"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{
		id:        uuid.New(),
		total:     seconds,
		parent:    ctx,
		cancel:    cancel,
		startedAt: e.clock.Now(),
	}
	r.running.Store(true)
	r.remaining.Store(int64(seconds))
	e.current.Store(r)

	e.logger.Info("countdown started", append(r.fields(), ports.Duration("tick", e.cfg.TickInterval))...)

	e.lifecycle.AddWorker()
	go e.tick(runCtx, r)
	return nil
}

// Stop cancels the running countdown. No display update or notification
// of that run is delivered after Stop returns.
func (e *Engine) Stop() error {
	r := e.current.Load()
	if r == nil || !e.lifecycle.CanStop() {
		e.logger.Error("stop rejected", ports.String("state", e.lifecycle.State().String()))
		return domain.ErrNotRunning
	}

	r.running.Store(false)
	r.cancel()

	if err := e.lifecycle.TransitionTo(domain.StateIdle, "stop requested"); err != nil {
		return err
	}
	e.logger.Info("countdown stopped", append(r.fields(),
		ports.Int64("remaining", r.remaining.Load()),
		ports.Duration("elapsed", e.clock.Now().Sub(r.startedAt)),
	)...)
	return nil
}

// Reset returns a finished engine to StateIdle.
func (e *Engine) Reset() error {
	if e.lifecycle.State() != domain.StateFinished {
		return domain.ErrInvalidTransition
	}
	return e.lifecycle.TransitionTo(domain.StateIdle, "acknowledged")
}

// Close cancels any running countdown without touching the display and
// waits for its tick goroutine. It may be called from any goroutine.
func (e *Engine) Close() error {
	if r := e.current.Load(); r != nil {
		r.running.Store(false)
		r.cancel()
	}
	return e.lifecycle.WaitWithTimeout(ShutdownTimeout)
}

// tick is the background unit of a run. The running flag is checked
// before and after every sleep.
func (e *Engine) tick(ctx context.Context, r *run) {
	defer e.lifecycle.WorkerDone()

	remaining := r.total
	for r.running.Load() && remaining > 0 {
		text := remaining.Clock()
		if err := e.loop.Post(func() { e.deliverTick(r, text) }); err != nil {
			return
		}

		if !e.sleep(ctx) || !r.running.Load() {
			return
		}

		remaining--
		r.remaining.Store(int64(remaining))
	}

	if r.running.Load() {
		_ = e.loop.Post(func() { e.finish(r) })
	}
}

func (e *Engine) sleep(ctx context.Context) bool {
	wake := make(chan struct{})
	t := e.clock.AfterFunc(e.cfg.TickInterval, func() { close(wake) })

	select {
	case <-ctx.Done():
		t.Stop()
		return false
	case <-wake:
		return true
	}
}

func (e *Engine) live(r *run) bool {
	return e.current.Load() == r && r.running.Load()
}

func (e *Engine) deliverTick(r *run, text string) {
	if !e.live(r) {
		return
	}
	e.display.OnTick(text)
}

func (e *Engine) finish(r *run) {
	if !e.live(r) {
		return
	}
	r.running.Store(false)
	r.cancel()

	if err := e.lifecycle.TransitionTo(domain.StateFinished, "countdown elapsed"); err != nil {
		e.logger.Error("finish rejected", ports.Err(err))
		return
	}
	e.logger.Info("countdown finished", append(r.fields(),
		ports.Duration("elapsed", e.clock.Now().Sub(r.startedAt)),
	)...)

	if e.notifier != nil {
		e.notifier.Notify(r.parent)
	}
	e.display.OnTick(domain.ZeroClock)
	e.display.OnFinished()
}
