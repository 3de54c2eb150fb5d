package configwatcher

import (
	"context"
	"testing"
	"time"
)

func TestBackoff_Next(t *testing.T) {
	b := newBackoff(100*time.Millisecond, 300*time.Millisecond)

	want := []time.Duration{100, 200, 300, 300}
	for i, w := range want {
		w *= time.Millisecond
		d := b.next()
		lo := time.Duration(float64(w) * 0.8)
		hi := time.Duration(float64(w) * 1.2)
		if d < lo || d > hi {
			t.Errorf("attempt %d: delay = %v, want within [%v, %v]", i, d, lo, hi)
		}
	}

	b.reset()
	if b.current != 100*time.Millisecond {
		t.Errorf("after reset current = %v, want 100ms", b.current)
	}
}

func TestBackoff_MaxBelowInitial(t *testing.T) {
	b := newBackoff(time.Second, time.Millisecond)
	if b.max != time.Second {
		t.Errorf("max = %v, want 1s", b.max)
	}
}

func TestBackoff_WaitCancelled(t *testing.T) {
	b := newBackoff(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if b.wait(ctx) {
		t.Error("wait() = true, want false for cancelled context")
	}
}

func TestBackoff_Wait(t *testing.T) {
	b := newBackoff(time.Millisecond, time.Millisecond)
	if !b.wait(context.Background()) {
		t.Error("wait() = false, want true")
	}
}
