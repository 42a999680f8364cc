// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -quit, -fps, -chart, -no-mouse, -log-file, -verbose, -version

package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/mauromedda/tchart/internal/config"
)

type cliArgs struct {
	quit    string
	fps     int
	chart   string
	noMouse bool
	logFile string
	verbose bool
	version bool
}

func parseFlags(fs *flag.FlagSet, argv []string) (cliArgs, error) {
	var args cliArgs

	fs.StringVar(&args.quit, "quit", "", `Key that ends the session (e.g. "q", "esc", "ctrl+x")`)
	fs.IntVar(&args.fps, "fps", 0, "Frames per second (default about 60)")
	fs.StringVar(&args.chart, "chart", "", "Name of the configured chart to draw")
	fs.BoolVar(&args.noMouse, "no-mouse", false, "Do not enable mouse reporting")
	fs.StringVar(&args.logFile, "log-file", "", "Append log output to this file instead of replaying it on exit")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	if fs.NArg() > 0 {
		return cliArgs{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return args, nil
}

// applyFlags overrides config settings with explicitly set flags.
func applyFlags(s *config.Settings, args cliArgs) error {
	if args.quit != "" {
		s.QuitKey = args.quit
	}
	if args.chart != "" {
		s.Chart = args.chart
	}
	if args.noMouse {
		off := false
		s.Mouse = &off
	}
	if args.verbose {
		s.LogLevel = "debug"
	}
	switch {
	case args.fps < 0:
		return fmt.Errorf("-fps must be positive, got %d", args.fps)
	case args.fps > 0:
		s.FrameInterval = config.Duration(time.Second / time.Duration(args.fps))
	}
	return nil
}
