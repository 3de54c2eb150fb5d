package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/officetimer/internal/adapters/clock"
	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

const restoreEvent = "<restore>"

type recordingSurface struct {
	mu     sync.Mutex
	events []string
}

func (s *recordingSurface) SetBackground(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, color)
}

func (s *recordingSurface) RestoreBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, restoreEvent)
}

func (s *recordingSurface) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.events...)
}

type fakePlayer struct {
	err     error
	started chan string
	stops   atomic.Int32
}

func newFakePlayer(err error) *fakePlayer {
	return &fakePlayer{err: err, started: make(chan string, 4)}
}

func (p *fakePlayer) Loop(path string) error {
	p.started <- path
	return p.err
}

func (p *fakePlayer) Stop() { p.stops.Add(1) }

type fakeBeeper struct {
	beeped chan struct{}
}

func (b *fakeBeeper) Beep() error {
	b.beeped <- struct{}{}
	return nil
}

type fakeAcknowledger struct {
	mu       sync.Mutex
	messages []string
}

func (a *fakeAcknowledger) Acknowledge(_ context.Context, title, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, title+": "+message)
	return nil
}

type notifierHarness struct {
	clock        *clock.Fake
	loop         *Loop
	surface      *recordingSurface
	player       *fakePlayer
	beeper       *fakeBeeper
	ack          *fakeAcknowledger
	acknowledged atomic.Int32
	notifier     *Notifier
	stopLoop     context.CancelFunc
}

func newNotifierHarness(t *testing.T, playErr error, soundPath string) *notifierHarness {
	t.Helper()

	h := &notifierHarness{
		clock:   clock.NewFake(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
		surface: &recordingSurface{},
		player:  newFakePlayer(playErr),
		beeper:  &fakeBeeper{beeped: make(chan struct{}, 4)},
		ack:     &fakeAcknowledger{},
	}
	h.loop = NewLoop(h.clock, 0)
	h.notifier = NewNotifier(NotifierDeps{
		Player:         h.player,
		Beeper:         h.beeper,
		Surface:        h.surface,
		Acknowledger:   h.ack,
		Loop:           h.loop,
		Clock:          h.clock,
		Logger:         mockLogger{},
		OnAcknowledged: func() { h.acknowledged.Add(1) },
	}, NotifySettings{SoundPath: soundPath})

	ctx, cancel := context.WithCancel(context.Background())
	h.stopLoop = cancel
	go func() { _ = h.loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-h.loop.Done()
	})
	return h
}

func (h *notifierHarness) notify(t *testing.T) {
	t.Helper()
	require.NoError(t, h.loop.Do(func() error {
		h.notifier.Notify(context.Background())
		return nil
	}))
}

// runFlash advances through the whole flash sequence. pending is the
// number of timers expected besides the next flash step.
func (h *notifierHarness) runFlash(pending int) {
	for i := 0; i < domain.FlashSteps; i++ {
		h.clock.BlockUntil(pending + 1)
		h.clock.Advance(DefaultFlashInterval)
	}
}

func wantFlash() []string {
	return []string{
		ports.ColorRed, ports.ColorWhite,
		ports.ColorRed, ports.ColorWhite,
		ports.ColorRed, ports.ColorWhite,
		restoreEvent,
	}
}

func TestNotifier_FlashWithSound(t *testing.T) {
	h := newNotifierHarness(t, nil, "/assets/timer.mp3")

	h.notify(t)
	assert.Equal(t, "/assets/timer.mp3", <-h.player.started)
	assert.Equal(t, []string{ports.ColorRed}, h.surface.Events())

	h.runFlash(1)

	assert.Eventually(t, func() bool {
		return len(h.surface.Events()) == len(wantFlash())
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, wantFlash(), h.surface.Events())
	assert.Equal(t, int64(1), h.notifier.Triggered())
}

func TestNotifier_FlashWithFailedSound(t *testing.T) {
	tests := []struct {
		name      string
		playErr   error
		soundPath string
		wantOp    string
	}{
		{"missing resource", nil, "", "resolve"},
		{"playback failure", errors.New("no audio device"), "/assets/timer.mp3", "play"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNotifierHarness(t, tt.playErr, tt.soundPath)

			h.notify(t)
			select {
			case <-h.beeper.beeped:
			case <-time.After(2 * time.Second):
				t.Fatal("fallback beep not emitted")
			}
			err := h.notifier.play(tt.soundPath)
			var resErr *domain.ResourceError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, tt.wantOp, resErr.Op)

			// The failed playback releases the ceiling timer.
			assert.Eventually(t, func() bool { return h.clock.Pending() == 1 }, time.Second, 5*time.Millisecond)
			h.runFlash(0)

			assert.Eventually(t, func() bool {
				return len(h.surface.Events()) == len(wantFlash())
			}, time.Second, 5*time.Millisecond)
			assert.Equal(t, wantFlash(), h.surface.Events())
			assert.NoError(t, h.notifier.Wait(context.Background()))
		})
	}
}

func TestNotifier_AudioCeiling(t *testing.T) {
	h := newNotifierHarness(t, nil, "/assets/timer.mp3")

	h.notify(t)
	<-h.player.started

	h.clock.Advance(DefaultAudioCeiling - time.Second)
	assert.Equal(t, int32(0), h.player.stops.Load())

	h.clock.Advance(time.Second)
	assert.GreaterOrEqual(t, h.player.stops.Load(), int32(1))
}

func TestNotifier_CustomCeilingAndColors(t *testing.T) {
	h := newNotifierHarness(t, nil, "/assets/timer.mp3")
	h.notifier.UpdateSettings(NotifySettings{
		SoundPath:    "/assets/other.wav",
		AudioCeiling: 5 * time.Second,
		AlertColor:   ports.ColorYellow,
		NeutralColor: ports.ColorBlack,
	})

	h.notify(t)
	assert.Equal(t, "/assets/other.wav", <-h.player.started)
	assert.Equal(t, []string{ports.ColorYellow}, h.surface.Events())

	h.clock.Advance(5 * time.Second)
	assert.GreaterOrEqual(t, h.player.stops.Load(), int32(1))

	s := h.notifier.Settings()
	assert.Equal(t, DefaultFlashInterval, s.FlashInterval)
	assert.Equal(t, DefaultMessage, s.Message)
}

func TestNotifier_WaitAndAcknowledge(t *testing.T) {
	h := newNotifierHarness(t, nil, "/assets/timer.mp3")

	assert.NoError(t, h.notifier.Wait(context.Background()))

	h.notify(t)
	<-h.player.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.notifier.Wait(ctx), context.DeadlineExceeded)

	h.runFlash(1)
	h.clock.BlockUntil(1)
	h.clock.Advance(DefaultAudioCeiling)
	assert.NoError(t, h.notifier.Wait(context.Background()))

	assert.Eventually(t, func() bool { return h.acknowledged.Load() == 1 }, time.Second, 5*time.Millisecond)
	h.ack.mu.Lock()
	defer h.ack.mu.Unlock()
	assert.Equal(t, []string{"Timer Complete: Time's up!"}, h.ack.messages)
}

func TestNotifier_WaitAfterLoopStopped(t *testing.T) {
	h := newNotifierHarness(t, nil, "/assets/timer.mp3")

	h.notify(t)
	<-h.player.started
	assert.Equal(t, []string{ports.ColorRed}, h.surface.Events())

	// The loop stops with five flash steps still to run.
	h.stopLoop()
	<-h.loop.Done()

	h.clock.BlockUntil(2)
	h.clock.Advance(DefaultAudioCeiling)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.notifier.Wait(ctx))
	assert.Equal(t, []string{ports.ColorRed}, h.surface.Events())
}
