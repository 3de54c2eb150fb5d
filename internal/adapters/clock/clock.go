// Package clock provides the system clock and a manually advanced fake.
package clock

import (
	"time"

	"github.com/bft-labs/officetimer/internal/ports"
)

// System is the ports.Clock backed by the time package.
var System ports.Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
