// Package term implements the terminal side of officetimer: the
// interactive shell, the countdown display, the flash surface and the
// acknowledgment prompt.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/bft-labs/officetimer/internal/ports"
)

const ansiReset = "\x1b[0m"

var backgroundCodes = map[string]string{
	ports.ColorBlack:  "\x1b[40m",
	ports.ColorRed:    "\x1b[41m",
	ports.ColorGreen:  "\x1b[42m",
	ports.ColorYellow: "\x1b[43m",
	ports.ColorBlue:   "\x1b[44m",
	ports.ColorWhite:  "\x1b[47m",
}

// Stdout returns os.Stdout wrapped so ANSI sequences also work on
// Windows consoles.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Surface paints a banner line in the requested background color.
// Without color support the color name is printed instead.
type Surface struct {
	out   io.Writer
	color bool
	label string
	width int

	mu      sync.Mutex
	current string
}

// NewSurface creates a surface writing to out.
func NewSurface(out io.Writer, color bool, label string) *Surface {
	return &Surface{out: out, color: color, label: label, width: 40}
}

func (s *Surface) SetBackground(color string) {
	s.mu.Lock()
	s.current = color
	s.mu.Unlock()

	code, ok := backgroundCodes[color]
	if !s.color || !ok {
		fmt.Fprintf(s.out, "[%s] %s\n", strings.ToUpper(color), s.label)
		return
	}
	fmt.Fprintf(s.out, "%s%s%s\n", code, center(s.label, s.width), ansiReset)
}

func (s *Surface) RestoreBackground() {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()

	if s.color {
		fmt.Fprint(s.out, ansiReset)
	}
}

// Current returns the color last set, or "" once restored.
func (s *Surface) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-len(text)-left)
}
