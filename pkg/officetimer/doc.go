// Package officetimer provides an embeddable countdown timer with
// completion notifications.
//
// A Timer counts down a duration entered as hours, minutes and seconds,
// renders the remaining time once per second and, when the countdown
// elapses, loops a sound for a bounded time, flashes a surface and asks
// the user to acknowledge.
//
// # Basic Usage
//
//	timer, err := officetimer.New(officetimer.DefaultConfig(),
//	    officetimer.WithDisplay(officetimer.DisplayFuncs{
//	        Tick: func(remaining string) { fmt.Println(remaining) },
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	go timer.Run(ctx)
//
//	if _, err := timer.StartRequested("0", "25", "0"); err != nil {
//	    log.Print(err) // e.g. "Minutes must be less than 60"
//	}
//
// # Threading
//
// Run owns a single event loop goroutine. Display and Surface methods,
// event handler callbacks and state transitions all run on it, strictly
// in order. Each countdown has one additional goroutine that sleeps
// between ticks and posts the formatted time to the loop.
//
// StartRequested, StopRequested and CloseRequested hand their work to the
// loop and wait for it, so they must not be called from a Display,
// Surface or EventHandler method.
//
// # Lifecycle States
//
// A countdown is in one of three states: [StateIdle], [StateRunning] or
// [StateFinished]. A finished countdown returns to idle once the
// completion message is acknowledged; until then StartRequested returns
// [ErrInvalidTransition].
//
// # Plugins
//
//	import "github.com/bft-labs/officetimer/plugins/configwatcher"
//
//	timer, err := officetimer.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path: "/home/me/.officetimer/config.toml",
//	        Load: loadConfig,
//	    }),
//	)
package officetimer
