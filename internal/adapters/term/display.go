package term

import (
	"context"
	"fmt"
	"io"

	"github.com/gen2brain/beeep"
)

// LineDisplay prints every tick to out. In place mode rewrites the
// current line instead of appending one line per tick.
type LineDisplay struct {
	out     io.Writer
	inPlace bool
}

// NewLineDisplay creates a display for non-interactive runs.
func NewLineDisplay(out io.Writer, inPlace bool) *LineDisplay {
	return &LineDisplay{out: out, inPlace: inPlace}
}

func (d *LineDisplay) OnTick(formatted string) {
	if d.inPlace {
		fmt.Fprintf(d.out, "\r%s", formatted)
		return
	}
	fmt.Fprintln(d.out, formatted)
}

func (d *LineDisplay) OnFinished() {
	if d.inPlace {
		fmt.Fprintln(d.out)
	}
}

// PrintAcknowledger prints the completion message and treats it as
// acknowledged immediately.
type PrintAcknowledger struct {
	out io.Writer
}

// NewPrintAcknowledger creates an acknowledger writing to out.
func NewPrintAcknowledger(out io.Writer) *PrintAcknowledger {
	return &PrintAcknowledger{out: out}
}

func (a *PrintAcknowledger) Acknowledge(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "%s: %s\n", title, message)
	return err
}

// Desktop raises a desktop notification through the platform's
// notification service.
type Desktop struct {
	notify func(title, message string) error
}

// NewDesktop creates a desktop notifier.
func NewDesktop() *Desktop {
	return &Desktop{notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

func (d *Desktop) Notify(title, message string) error {
	return d.notify(title, message)
}
