package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/bft-labs/officetimer/internal/domain"
	"github.com/bft-labs/officetimer/internal/ports"
)

const (
	promptName      = "officetimer"
	confirmQuestion = "Timer is running. Do you want to quit? [y/N] "
)

// Commander is the timer as seen by the shell.
type Commander interface {
	StartRequested(hours, minutes, seconds string) (domain.Seconds, error)
	StopRequested() error
	CloseRequested(confirm func() bool) bool
	State() domain.CountdownState
	Remaining() domain.Seconds
}

// LineReader is the subset of *readline.Instance used by the shell.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Refresh()
	Stdout() io.Writer
	Close() error
}

// NewReadline creates the readline instance backing the shell.
func NewReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(domain.ZeroClock),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

func prompt(clock string) string {
	return fmt.Sprintf("%s [%s]> ", promptName, clock)
}

// Shell is the interactive command loop. It is also the countdown's
// display and acknowledger: ticks are rendered in the prompt and the
// next input line after a completion acknowledges it.
type Shell struct {
	rl     LineReader
	out    io.Writer
	logger ports.Logger
	cmd    Commander

	mu         sync.Mutex
	fields     [3]string
	display    string
	confirming bool
	ack        chan struct{}
}

// NewShell creates a shell. hours, minutes and seconds are the values
// used by a bare "start".
func NewShell(rl LineReader, logger ports.Logger, hours, minutes, seconds string) *Shell {
	return &Shell{
		rl:      rl,
		out:     rl.Stdout(),
		logger:  logger,
		fields:  [3]string{hours, minutes, seconds},
		display: domain.ZeroClock,
	}
}

// Attach sets the timer the shell drives. It must be called before Run.
func (s *Shell) Attach(cmd Commander) {
	s.cmd = cmd
}

// Run reads commands until the user quits, input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	s.printHelp()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.rl.Readline()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				if s.quit() {
					return nil
				}
				continue
			}
			return err
		}

		if s.acknowledge() {
			fmt.Fprintln(s.out, "Acknowledged.")
			continue
		}
		if s.Execute(line) {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	s.logger.Debug("shell command", ports.String("command", cmd), ports.Int("args", len(args)))

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "start", "s":
		s.cmdStart(args)
	case "set":
		s.cmdSet(args)
	case "stop", "x":
		s.cmdStop()
	case "status", "st":
		s.cmdStatus()
	case "quit", "exit", "q":
		return s.quit()
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) cmdStart(args []string) {
	switch len(args) {
	case 0:
	case 3:
		s.setFields(args)
	default:
		fmt.Fprintln(s.out, "Usage: start [hours minutes seconds]")
		return
	}

	f := s.Fields()
	secs, err := s.cmd.StartRequested(f[0], f[1], f[2])
	if err != nil {
		s.printStartError(err)
		return
	}
	fmt.Fprintf(s.out, "Countdown started: %s\n", secs.Clock())
}

func (s *Shell) printStartError(err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(s.out, "Error: %s\n", verr.Error())
	case errors.Is(err, domain.ErrAlreadyRunning):
		fmt.Fprintln(s.out, "A countdown is already running. Type 'stop' first.")
	case errors.Is(err, domain.ErrInvalidTransition):
		fmt.Fprintln(s.out, "The last countdown has not been acknowledged yet. Press Enter first.")
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdSet(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "Usage: set hours minutes seconds")
		return
	}
	s.setFields(args)
	fmt.Fprintf(s.out, "Duration set to %sh %sm %ss\n", args[0], args[1], args[2])
}

func (s *Shell) cmdStop() {
	if err := s.cmd.StopRequested(); err != nil {
		if errors.Is(err, domain.ErrNotRunning) {
			fmt.Fprintln(s.out, "No countdown is running.")
			return
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.render(domain.ZeroClock)
	fmt.Fprintln(s.out, "Countdown stopped.")
}

func (s *Shell) cmdStatus() {
	f := s.Fields()
	fmt.Fprintf(s.out, "State:     %s\n", s.cmd.State())
	fmt.Fprintf(s.out, "Remaining: %s\n", s.cmd.Remaining().Clock())
	fmt.Fprintf(s.out, "Duration:  %sh %sm %ss\n", orZero(f[0]), orZero(f[1]), orZero(f[2]))
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  start [h m s]   start a countdown (default: last duration)
  set h m s       change the duration used by start
  stop            stop the running countdown
  status          show state and remaining time
  help            show this help
  quit            exit`)
}

func (s *Shell) quit() bool {
	if !s.cmd.CloseRequested(s.confirm) {
		return false
	}
	fmt.Fprintln(s.out, "Exiting...")
	return true
}

// confirm asks whether to quit while a countdown runs. Anything but an
// explicit yes keeps the shell open, except end of input: with nothing
// left to read the question cannot be answered, so the shell quits.
func (s *Shell) confirm() bool {
	s.mu.Lock()
	s.confirming = true
	s.mu.Unlock()
	s.rl.SetPrompt(confirmQuestion)

	line, err := s.rl.Readline()

	s.mu.Lock()
	s.confirming = false
	display := s.display
	s.mu.Unlock()
	s.rl.SetPrompt(prompt(display))

	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "Input closed, stopping the countdown.")
			return true
		}
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Fields returns the hours, minutes and seconds used by a bare start.
func (s *Shell) Fields() [3]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

func (s *Shell) setFields(args []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.fields[:], args)
}

// Display returns the time currently shown in the prompt.
func (s *Shell) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

func (s *Shell) render(clock string) {
	s.mu.Lock()
	s.display = clock
	confirming := s.confirming
	s.mu.Unlock()

	if confirming {
		return
	}
	s.rl.SetPrompt(prompt(clock))
	s.rl.Refresh()
}

func (s *Shell) OnTick(formatted string) {
	s.render(formatted)
}

func (s *Shell) OnFinished() {
	s.render(domain.ZeroClock)
}

// Acknowledge prints the completion message and waits for the next
// input line.
func (s *Shell) Acknowledge(ctx context.Context, title, message string) error {
	ch := make(chan struct{})
	s.mu.Lock()
	s.ack = ch
	s.mu.Unlock()

	fmt.Fprintf(s.out, "%s: %s (press Enter to acknowledge)\n", title, message)
	s.rl.Refresh()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		if s.ack == ch {
			s.ack = nil
		}
		s.mu.Unlock()
		return ctx.Err()
	}
}

func (s *Shell) acknowledge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ack == nil {
		return false
	}
	close(s.ack)
	s.ack = nil
	return true
}

func orZero(v string) string {
	if strings.TrimSpace(v) == "" {
		return "0"
	}
	return v
}
