// ABOUTME: CLI entry point for tchart: draws a chart on the alternate screen until the quit key
// ABOUTME: Exit codes: 0 clean quit, 1 runtime failure, 2 setup failure

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mauromedda/tchart/internal/chart"
	"github.com/mauromedda/tchart/internal/config"
	"github.com/mauromedda/tchart/internal/eventbus"
	"github.com/mauromedda/tchart/internal/log"
	"github.com/mauromedda/tchart/internal/runner"
	"github.com/mauromedda/tchart/internal/termfix"
	"github.com/mauromedda/tchart/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitSetup   = 2
)

func main() {
	args, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitSetup)
	}

	if args.version {
		fmt.Printf("tchart %s (%s) built %s\n", version, commit, date)
		os.Exit(exitOK)
	}

	os.Exit(run(args))
}

// run loads configuration, runs the session, and maps the outcome to an
// exit code. Log output is kept off the terminal while it is in raw mode.
func run(args cliArgs) int {
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	opts, err := loadOptions(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitSetup
	}
	log.SetLevel(opts.LogLevel)

	sink, closeSink, err := openLogSink(args.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitSetup
	}
	restoreLog := log.SetOutput(sink)

	err = session(opts)

	restoreLog()
	closeSink()

	code := exitCode(err)
	switch {
	case code == exitOK:
	case runner.IsInterrupted(err):
		fmt.Fprintln(os.Stderr, "interrupted")
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	var pe *terminal.PanicError
	if errors.As(err, &pe) {
		fmt.Fprintf(os.Stderr, "\n%s\n", pe.Stack)
	}
	return code
}

func loadOptions(args cliArgs) (*config.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	settings, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(settings, args); err != nil {
		return nil, err
	}
	return settings.Resolve()
}

func session(opts *config.Options) error {
	termfix.PinBackground(os.Getenv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	pt := terminal.NewProcessTerminal()
	defer pt.Stop()

	transitions := eventbus.New[runner.Transition]()
	defer transitions.Close()
	transitions.Subscribe(func(t runner.Transition) {
		log.Debug("session: %s", t)
	})

	log.Info("drawing chart %q; press %s to quit", opts.ChartName, opts.Quit)
	return runner.Run(ctx, runner.Deps[chart.Spec]{
		Terminal:      pt,
		Options:       terminal.Options{Mouse: opts.Mouse, BracketedPaste: true},
		Render:        chart.Render,
		Spec:          opts.Chart,
		Quit:          opts.Quit,
		FrameInterval: opts.FrameInterval,
		PollInterval:  opts.PollInterval,
		Transitions:   transitions,
	})
}

// openLogSink returns where log output goes while the alternate screen is
// active. Without a log file, output is buffered and replayed to stderr
// by the returned close func.
func openLogSink(path string) (io.Writer, func(), error) {
	if path == "" {
		var buf bytes.Buffer
		return &buf, func() { _, _ = os.Stderr.Write(buf.Bytes()) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// exitCode maps a session outcome to the process exit status.
func exitCode(err error) int {
	var se *terminal.SessionError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &se) && se.Op == "enter":
		return exitSetup
	default:
		return exitRuntime
	}
}
