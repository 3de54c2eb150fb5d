package app

import (
	"sync"
	"time"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

// flash alternates the surface between the alert and neutral colors,
// domain.FlashSteps times, then restores the original background.
// Every step runs on the loop; the next one is scheduled with Loop.After.
type flash struct {
	surface  ports.Surface
	loop     *Loop
	interval time.Duration
	alert    string
	neutral  string
	done     func()

	cycle    domain.FlashCycle
	once     sync.Once
	finished chan struct{}
}

func newFlash(surface ports.Surface, loop *Loop, s NotifySettings, done func()) *flash {
	return &flash{
		surface:  surface,
		loop:     loop,
		interval: s.FlashInterval,
		alert:    s.AlertColor,
		neutral:  s.NeutralColor,
		done:     done,
		finished: make(chan struct{}),
	}
}

// start runs the first step. If the loop stops before the sequence
// completes, the remaining steps are dropped and the flash counts as done.
func (f *flash) start() {
	go func() {
		select {
		case <-f.finished:
		case <-f.loop.Done():
			f.finish()
		}
	}()
	f.step()
}

func (f *flash) finish() {
	f.once.Do(func() {
		close(f.finished)
		f.done()
	})
}

func (f *flash) step() {
	if f.cycle.Done() {
		if f.surface != nil {
			f.surface.RestoreBackground()
		}
		f.finish()
		return
	}

	if f.surface != nil {
		if f.cycle.Alert() {
			f.surface.SetBackground(f.alert)
		} else {
			f.surface.SetBackground(f.neutral)
		}
	}
	f.cycle = f.cycle.Next()
	f.loop.After(f.interval, f.step)
}
