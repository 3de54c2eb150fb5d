package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/officetimer/internal/adapters/term"
	"github.com/bft-labs/officetimer/internal/cliconfig"
	"github.com/bft-labs/officetimer/pkg/log"
	"github.com/bft-labs/officetimer/pkg/officetimer"
	"github.com/bft-labs/officetimer/plugins/configwatcher"
)

const flashLabel = "TIME'S UP"

const helpDescription = `
A countdown timer for the office.

Counts down from the given hours, minutes and seconds, then plays a looping
sound for up to 30 seconds, flashes the terminal and waits for you to
acknowledge. If the sound file cannot be found next to the executable, the
terminal bell is used instead.

Without --start an interactive shell is opened; type 'help' for commands.
Settings can come from a TOML or YAML file, OFFICETIMER_* environment
variables or flags, in increasing order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  officetimer
  officetimer --minutes 5 --start
  officetimer --config $HOME/.officetimer/config.yaml --watch-config
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	bootLog, _ := cliconfig.NewLogger(os.Stderr, "info")

	root := &cobra.Command{
		Use:           "officetimer",
		Short:         "Countdown timer with sound and flash notifications",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// base holds defaults and flags; file and env are layered on
			// top of it again on every reload.
			base := cfg
			resolved, err := cliconfig.Resolve(base, cfgFile, changed)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			app := &application{
				cfg:     resolved,
				cfgFile: cfgFile,
				reload: func(path string) (officetimer.Config, error) {
					c, err := cliconfig.Resolve(base, path, changed)
					return c.TimerConfig(), err
				},
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if resolved.Start {
				return app.runOnce(ctx)
			}
			return app.runInteractive(ctx)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.officetimer/config.toml)")
	f.StringVarP(&cfg.Hours, "hours", "H", cfg.Hours, "countdown hours")
	f.StringVarP(&cfg.Minutes, "minutes", "m", cfg.Minutes, "countdown minutes (0-59)")
	f.StringVarP(&cfg.Seconds, "seconds", "s", cfg.Seconds, "countdown seconds (0-59)")
	f.BoolVar(&cfg.Start, "start", cfg.Start, "start the countdown immediately and exit once notified")

	f.StringVar(&cfg.AssetDir, "asset-dir", cfg.AssetDir, "directory holding the sound file (default: executable directory)")
	f.StringVar(&cfg.SoundFile, "sound-file", cfg.SoundFile, "sound played when the countdown elapses")
	f.DurationVar(&cfg.AudioCeiling, "audio-ceiling", cfg.AudioCeiling, "maximum time the sound loops")
	f.DurationVar(&cfg.FlashInterval, "flash-interval", cfg.FlashInterval, "interval between flash steps")
	f.StringVar(&cfg.AlertColor, "alert-color", cfg.AlertColor, "flash alert color")
	f.StringVar(&cfg.NeutralColor, "neutral-color", cfg.NeutralColor, "flash neutral color")
	f.BoolVar(&cfg.DesktopNotify, "desktop-notify", cfg.DesktopNotify, "also raise a desktop notification")
	f.BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload notification settings when the config file changes")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	f.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "countdown tick interval (testing)")
	if err := f.MarkHidden("tick-interval"); err != nil {
		bootLog.Info().Err(err).Msg("failed to hide tick-interval flag")
	}

	if err := root.Execute(); err != nil {
		bootLog.Error().Err(err).Msg("officetimer")
		os.Exit(1)
	}
}

type application struct {
	cfg     cliconfig.Config
	cfgFile string
	reload  configwatcher.LoadFunc
}

func (a *application) logger(w io.Writer) (zerolog.Logger, error) {
	zl, err := cliconfig.NewLogger(w, a.cfg.LogLevel)
	if err != nil {
		return zl, err
	}
	zl.Debug().Interface("config", a.cfg).Msg("configuration")
	return zl, nil
}

func (a *application) options(zl zerolog.Logger) []officetimer.Option {
	opts := []officetimer.Option{
		officetimer.WithLogger(log.NewZerologAdapterWithLogger(zl).With(log.String("component", "timer"))),
	}
	if a.cfg.WatchConfig && a.cfgFile != "" {
		wc := configwatcher.DefaultConfig()
		wc.Path = a.cfgFile
		wc.Load = a.reload
		opts = append(opts, configwatcher.WithConfigWatcher(wc))
	}
	return opts
}

// runInteractive drives the timer from the readline shell until the
// user quits or a signal arrives.
func (a *application) runInteractive(ctx context.Context) error {
	rl, err := term.NewReadline()
	if err != nil {
		return err
	}

	zl, err := a.logger(rl.Stderr())
	if err != nil {
		rl.Close()
		return err
	}

	shell := term.NewShell(rl, log.NewZerologAdapterWithLogger(zl).With(log.String("component", "shell")), a.cfg.Hours, a.cfg.Minutes, a.cfg.Seconds)
	surface := term.NewSurface(rl.Stdout(), term.IsTerminal(os.Stdout), flashLabel)

	opts := append(a.options(zl),
		officetimer.WithDisplay(shell),
		officetimer.WithAcknowledger(shell),
		officetimer.WithSurface(surface),
	)
	t, err := officetimer.New(a.cfg.TimerConfig(), opts...)
	if err != nil {
		rl.Close()
		return fmt.Errorf("create timer: %w", err)
	}
	shell.Attach(t)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- t.Run(ctx) }()

	// Readline blocks until a line arrives; closing it unblocks the shell
	// on a signal.
	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	shellErr := shell.Run(ctx)
	cancel()
	return errors.Join(shellErr, <-runErr)
}

// runOnce counts down the configured duration, waits for the
// notification to finish and returns.
func (a *application) runOnce(ctx context.Context) error {
	zl, err := a.logger(os.Stderr)
	if err != nil {
		return err
	}

	stdout := term.Stdout()
	tty := term.IsTerminal(os.Stdout)
	done := &finishedHandler{finished: make(chan struct{})}

	opts := append(a.options(zl),
		officetimer.WithDisplay(term.NewLineDisplay(stdout, tty)),
		officetimer.WithAcknowledger(term.NewPrintAcknowledger(stdout)),
		officetimer.WithSurface(term.NewSurface(stdout, tty, flashLabel)),
		officetimer.WithEventHandler(done),
	)
	t, err := officetimer.New(a.cfg.TimerConfig(), opts...)
	if err != nil {
		return fmt.Errorf("create timer: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- t.Run(ctx) }()

	secs, err := t.StartRequested(a.cfg.Hours, a.cfg.Minutes, a.cfg.Seconds)
	if err != nil {
		cancel()
		return errors.Join(fmt.Errorf("start countdown: %w", err), <-runErr)
	}
	zl.Info().Str("duration", secs.Clock()).Msg("countdown started")

	select {
	case <-done.finished:
		if err := t.WaitNotified(ctx); err != nil {
			zl.Warn().Err(err).Msg("notification interrupted")
		}
	case <-ctx.Done():
		zl.Info().Msg("received signal, stopping...")
	}

	cancel()
	return <-runErr
}

// finishedHandler signals the first completed countdown once its
// notification was raised.
type finishedHandler struct {
	officetimer.BaseEventHandler
	finished chan struct{}
	once     sync.Once
}

func (h *finishedHandler) OnNotification(officetimer.NotificationEvent) {
	h.once.Do(func() { close(h.finished) })
}
