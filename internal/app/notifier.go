package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// Notification defaults.
const (
	DefaultAudioCeiling  = 30 * time.Second
	DefaultFlashInterval = 300 * time.Millisecond
	DefaultTitle         = "Timer Complete"
	DefaultMessage       = "Time's up!"
)

// NotifySettings configures what happens when a countdown elapses.
// A zero field falls back to its default.
type NotifySettings struct {
	// SoundPath is the resolved sound file. Empty means no sound is
	// available and the fallback beep is used.
	SoundPath string

	AudioCeiling  time.Duration
	FlashInterval time.Duration
	AlertColor    string
	NeutralColor  string
	Title         string
	Message       string
	DesktopNotify bool
}

// DefaultNotifySettings returns the settings used when none are configured.
func DefaultNotifySettings() NotifySettings {
	return NotifySettings{
		AudioCeiling:  DefaultAudioCeiling,
		FlashInterval: DefaultFlashInterval,
		AlertColor:    ports.ColorRed,
		NeutralColor:  ports.ColorWhite,
		Title:         DefaultTitle,
		Message:       DefaultMessage,
	}
}

func (s NotifySettings) withDefaults() NotifySettings {
	d := DefaultNotifySettings()
	if s.AudioCeiling <= 0 {
		s.AudioCeiling = d.AudioCeiling
	}
	if s.FlashInterval <= 0 {
		s.FlashInterval = d.FlashInterval
	}
	if s.AlertColor == "" {
		s.AlertColor = d.AlertColor
	}
	if s.NeutralColor == "" {
		s.NeutralColor = d.NeutralColor
	}
	if s.Title == "" {
		s.Title = d.Title
	}
	if s.Message == "" {
		s.Message = d.Message
	}
	return s
}

// NotifierDeps are the collaborators of a Notifier. Player, Beeper and
// Desktop may be nil.
type NotifierDeps struct {
	Player       ports.SoundPlayer
	Beeper       ports.Beeper
	Surface      ports.Surface
	Acknowledger ports.Acknowledger
	Desktop      ports.DesktopNotifier
	Loop         *Loop
	Clock        ports.Clock
	Logger       ports.Logger

	// OnAcknowledged is posted to the loop once the user acknowledged
	// the completion message.
	OnAcknowledged func()
}

// Notifier alerts the user that a countdown elapsed: looped sound bounded
// by a ceiling, a flash sequence and an acknowledgment message.
type Notifier struct {
	deps     NotifierDeps
	settings atomic.Pointer[NotifySettings]

	triggered atomic.Int64
	active    activity
}

// NewNotifier creates a notifier with the given settings.
func NewNotifier(deps NotifierDeps, settings NotifySettings) *Notifier {
	n := &Notifier{deps: deps}
	n.UpdateSettings(settings)
	return n
}

// Settings returns the settings the next notification will use.
func (n *Notifier) Settings() NotifySettings {
	return *n.settings.Load()
}

// UpdateSettings replaces the notification settings. A notification in
// progress keeps the settings it started with.
func (n *Notifier) UpdateSettings(s NotifySettings) {
	s = s.withDefaults()
	n.settings.Store(&s)
}

// Triggered returns how many notifications were raised.
func (n *Notifier) Triggered() int64 {
	return n.triggered.Load()
}

// Notify raises one notification. It must be called on the loop
// goroutine and returns without waiting for sound, flash or
// acknowledgment.
func (n *Notifier) Notify(ctx context.Context) {
	s := n.Settings()
	count := n.triggered.Add(1)

	n.deps.Logger.Info("notification triggered",
		ports.Int64("count", count),
		ports.String("sound", s.SoundPath),
		ports.Duration("audio_ceiling", s.AudioCeiling),
	)

	n.startAudio(s)
	n.startFlash(s)
	n.acknowledge(ctx, s)
}

// Wait blocks until every audio ceiling and flash sequence started so far
// completed, or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	return n.active.wait(ctx)
}

// startAudio schedules the ceiling first, then starts playback off the
// loop. The ceiling counts from the trigger and is never cancelled by a
// later countdown.
func (n *Notifier) startAudio(s NotifySettings) {
	var (
		expired atomic.Bool
		once    sync.Once
	)
	n.active.add()
	done := func() { once.Do(n.active.done) }

	ceiling := n.deps.Clock.AfterFunc(s.AudioCeiling, func() {
		expired.Store(true)
		if n.deps.Player != nil {
			n.deps.Player.Stop()
		}
		n.deps.Logger.Debug("audio ceiling reached", ports.Duration("ceiling", s.AudioCeiling))
		done()
	})

	go func() {
		if err := n.play(s.SoundPath); err != nil {
			n.deps.Logger.Warn("sound playback failed, using fallback beep", ports.Err(err))
			n.beep()
			if ceiling.Stop() {
				done()
			}
			return
		}
		if expired.Load() {
			n.deps.Player.Stop()
		}
	}()
}

func (n *Notifier) play(path string) error {
	if path == "" || n.deps.Player == nil {
		return &domain.ResourceError{Op: "resolve", Path: path, Err: domain.ErrSoundUnavailable}
	}
	if err := n.deps.Player.Loop(path); err != nil {
		return &domain.ResourceError{Op: "play", Path: path, Err: err}
	}
	return nil
}

func (n *Notifier) beep() {
	if n.deps.Beeper == nil {
		return
	}
	if err := n.deps.Beeper.Beep(); err != nil {
		n.deps.Logger.Warn("fallback beep failed", ports.Err(err))
	}
}

func (n *Notifier) startFlash(s NotifySettings) {
	n.active.add()
	newFlash(n.deps.Surface, n.deps.Loop, s, n.active.done).start()
}

func (n *Notifier) acknowledge(ctx context.Context, s NotifySettings) {
	if s.DesktopNotify && n.deps.Desktop != nil {
		go func() {
			if err := n.deps.Desktop.Notify(s.Title, s.Message); err != nil {
				n.deps.Logger.Warn("desktop notification failed", ports.Err(err))
			}
		}()
	}

	if n.deps.Acknowledger == nil {
		if n.deps.OnAcknowledged != nil {
			go func() { _ = n.deps.Loop.Post(n.deps.OnAcknowledged) }()
		}
		return
	}
	go func() {
		if err := n.deps.Acknowledger.Acknowledge(ctx, s.Title, s.Message); err != nil {
			n.deps.Logger.Debug("acknowledgment not received", ports.Err(err))
			return
		}
		if n.deps.OnAcknowledged != nil {
			_ = n.deps.Loop.Post(n.deps.OnAcknowledged)
		}
	}()
}

// activity counts notification work in flight. Unlike sync.WaitGroup it
// allows add while another goroutine waits.
type activity struct {
	mu   sync.Mutex
	n    int
	idle chan struct{}
}

func (a *activity) add() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.n == 0 {
		a.idle = make(chan struct{})
	}
	a.n++
}

func (a *activity) done() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n--
	if a.n == 0 {
		close(a.idle)
	}
}

func (a *activity) wait(ctx context.Context) error {
	a.mu.Lock()
	if a.n == 0 {
		a.mu.Unlock()
		return nil
	}
	idle := a.idle
	a.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
