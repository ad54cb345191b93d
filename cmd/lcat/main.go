package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/five82/lcat/internal/app"
	"github.com/five82/lcat/internal/logging"
	"github.com/five82/lcat/internal/record"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lcat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: lcat [flags] [file ...]")
		fs.PrintDefaults()
	}

	errorsOnly := fs.Bool("e", false, "show ERROR and above")
	warnUp := fs.Bool("w", false, "show WARN and above")
	infoUp := fs.Bool("i", false, "show INFO and above")
	skipStack := fs.Bool("s", false, "skip stack traces")
	dropInvalid := fs.Bool("d", false, "drop lines that are not log records")
	tail := fs.Int("n", 0, "only the last N lines of each file")
	follow := fs.Bool("f", false, "follow the file for appended lines")
	color := fs.String("color", "", "colour output: auto, always or never (defaults to config)")
	theme := fs.String("theme", "", "colour theme: Terminal, Nightfox or Slate (defaults to prefs)")
	view := fs.Bool("view", false, "open the interactive viewer")
	workers := fs.Int("workers", 0, "lines rendered in parallel (defaults to config)")
	stats := fs.Bool("stats", false, "log outcome counters when done")
	configPath := fs.String("config", "", "override config path (optional)")
	debug := fs.Bool("debug", false, "log debug diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	minLevel, err := levelFlag(*errorsOnly, *warnUp, *infoUp)
	if err != nil {
		fmt.Fprintf(stderr, "lcat: %v\n", err)
		fs.Usage()
		return 2
	}
	if *view && !isTerminal(stdout) {
		fmt.Fprintln(stderr, "lcat: -view needs a terminal on stdout")
		return 2
	}

	log := logging.New(logging.Config{
		Debug:   *debug,
		Output:  stderr,
		NoColor: !isTerminal(stderr),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	// Restore default handling after the first signal so a second one
	// terminates even if shutdown hangs.
	go func() {
		<-ctx.Done()
		cancel()
	}()

	opts := app.Options{
		ConfigPath:      *configPath,
		Files:           fs.Args(),
		MinLevel:        minLevel,
		SkipStackTraces: *skipStack,
		DropInvalid:     *dropInvalid,
		Color:           *color,
		Theme:           *theme,
		Workers:         *workers,
		Tail:            *tail,
		Follow:          *follow,
		View:            *view,
		Stats:           *stats,
		Stdin:           stdin,
		Stdout:          stdout,
		Logger:          &log,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(stderr, "lcat: %v\n", err)
		if errors.Is(err, app.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// levelFlag maps the mutually exclusive -e, -w and -i flags to a minimum
// level. nil leaves the choice to the config file.
func levelFlag(errorsOnly, warnUp, infoUp bool) (*record.Severity, error) {
	var chosen []record.Severity
	if errorsOnly {
		chosen = append(chosen, record.Error)
	}
	if warnUp {
		chosen = append(chosen, record.Warn)
	}
	if infoUp {
		chosen = append(chosen, record.Info)
	}
	switch len(chosen) {
	case 0:
		return nil, nil
	case 1:
		return &chosen[0], nil
	default:
		return nil, errors.New("-e, -w and -i are mutually exclusive")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
