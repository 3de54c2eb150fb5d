package audio

import (
	"errors"
	"io"

	"github.com/gen2brain/beeep"
)

// Beeper emits a system beep, falling back to the terminal bell when no
// beep device is available.
type Beeper struct {
	bell io.Writer
	beep func(freq float64, duration int) error
}

// NewBeeper creates a beeper that rings bell when the system beep fails.
func NewBeeper(bell io.Writer) *Beeper {
	return &Beeper{bell: bell, beep: func(freq float64, duration int) error {
		return beeep.Beep(freq, duration)
	}}
}

func (b *Beeper) Beep() error {
	err := b.beep(beeep.DefaultFreq, beeep.DefaultDuration)
	if err == nil || b.bell == nil {
		return err
	}
	if _, werr := io.WriteString(b.bell, "\a"); werr != nil {
		return errors.Join(err, werr)
	}
	return nil
}
