package ports

// Display is the UI shell side of the countdown.
// Both methods are invoked on the event loop goroutine only.
type Display interface {
	// OnTick receives the remaining time formatted as HH:MM:SS.
	OnTick(formatted string)

	// OnFinished is called once after the final "00:00:00" tick of a
	// countdown that ran to completion.
	OnFinished()
}

// DisplayFuncs adapts plain functions to Display. Nil funcs are skipped.
type DisplayFuncs struct {
	Tick     func(formatted string)
	Finished func()
}

func (d DisplayFuncs) OnTick(formatted string) {
	if d.Tick != nil {
		d.Tick(formatted)
	}
}

func (d DisplayFuncs) OnFinished() {
	if d.Finished != nil {
		d.Finished()
	}
}
