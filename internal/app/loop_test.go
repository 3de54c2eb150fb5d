package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/officetimer/internal/adapters/clock"
	"github.com/bft-labs/officetimer/internal/domain"
)

func startLoop(t *testing.T, l *Loop) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return cancel
}

func TestLoop_PostRunsInOrder(t *testing.T) {
	l := NewLoop(clock.System, 4)
	startLoop(t, l)

	var got []int
	for i := 0; i < 20; i++ {
		i := i
		if err := l.Post(func() { got = append(got, i) }); err != nil {
			t.Fatalf("Post() error = %v", err)
		}
	}
	// Do runs after everything posted before it.
	if err := l.Do(func() error { return nil }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if len(got) != 20 {
		t.Fatalf("ran %d functions, want 20", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestLoop_DoReturnsError(t *testing.T) {
	l := NewLoop(clock.System, 0)
	startLoop(t, l)

	want := errors.New("boom")
	if err := l.Do(func() error { return want }); !errors.Is(err, want) {
		t.Errorf("Do() error = %v, want %v", err, want)
	}
}

func TestLoop_Closed(t *testing.T) {
	l := NewLoop(clock.System, 0)
	cancel := startLoop(t, l)
	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	if err := l.Post(func() {}); !errors.Is(err, domain.ErrLoopClosed) {
		t.Errorf("Post() error = %v, want ErrLoopClosed", err)
	}
	if err := l.Do(func() error { return nil }); !errors.Is(err, domain.ErrLoopClosed) {
		t.Errorf("Do() error = %v, want ErrLoopClosed", err)
	}
}

func TestLoop_After(t *testing.T) {
	fake := clock.NewFake(time.Time{})
	l := NewLoop(fake, 0)
	startLoop(t, l)

	fired := make(chan struct{})
	timer := l.After(300*time.Millisecond, func() { close(fired) })
	cancelled := l.After(300*time.Millisecond, func() { t.Error("stopped timer fired") })
	if !cancelled.Stop() {
		t.Fatal("Stop() = false for pending timer")
	}

	fake.Advance(299 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("fired early")
	default:
	}

	fake.Advance(time.Millisecond)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("After callback not run on loop")
	}
	if timer.Stop() {
		t.Error("Stop() = true after firing")
	}
}
