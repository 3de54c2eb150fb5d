package officetimer_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/officetimer/pkg/officetimer"
)

// ExampleTimer_StartRequested shows how invalid input is reported.
func ExampleTimer_StartRequested() {
	timer, err := officetimer.New(officetimer.DefaultConfig(),
		officetimer.WithSoundPlayer(silentPlayer{}),
	)
	if err != nil {
		fmt.Printf("failed to create timer: %v\n", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = timer.Run(ctx) }()

	for _, input := range [][3]string{{"0", "60", "0"}, {"", "", ""}, {"1", "x", "0"}} {
		_, err := timer.StartRequested(input[0], input[1], input[2])
		var verr *officetimer.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(verr.Error())
		}
	}

	secs, err := timer.StartRequested("0", "25", "0")
	fmt.Println(secs.Clock(), err, timer.State())

	_ = timer.StopRequested()
	fmt.Println(timer.State())

	// Output:
	// Minutes must be less than 60
	// Please set a time greater than 0
	// Please enter valid numbers
	// 00:25:00 <nil> Running
	// Idle
}

// Example_withEventHandler demonstrates how to receive timer events.
func Example_withEventHandler() {
	handler := &myEventHandler{}

	timer, err := officetimer.New(officetimer.DefaultConfig(),
		officetimer.WithEventHandler(handler),
	)
	if err != nil {
		fmt.Printf("failed to create timer: %v\n", err)
		return
	}

	_ = timer // Use timer instance...
}

// myEventHandler implements officetimer.EventHandler.
type myEventHandler struct {
	officetimer.BaseEventHandler // Embed for no-op defaults
}

func (h *myEventHandler) OnStateChange(event officetimer.StateChangeEvent) {
	fmt.Printf("State changed: %s -> %s (reason: %s)\n",
		event.Previous, event.Current, event.Reason)
}

type silentPlayer struct{}

func (silentPlayer) Loop(string) error { return nil }
func (silentPlayer) Stop()             {}
