package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/five82/lcat/internal/config"
	"github.com/five82/lcat/internal/pipeline"
	"github.com/five82/lcat/internal/prefs"
	"github.com/five82/lcat/internal/record"
	"github.com/five82/lcat/internal/render"
	"github.com/five82/lcat/internal/state"
	"github.com/five82/lcat/internal/ui"
)

// StdinPath names standard input in Options.Files.
const StdinPath = "-"

// ErrUsage marks option combinations that cannot run. The caller reports
// these as usage errors.
var ErrUsage = errors.New("usage")

// Options configure one lcat run. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lcat/prefs.toml
	Files      []string

	MinLevel        *record.Severity // nil uses config min_level
	SkipStackTraces bool
	DropInvalid     bool
	Color           string // auto, always, never; empty uses config
	Theme           string // empty uses prefs
	Workers         int    // zero uses config

	Tail   int  // last N lines of each file; zero means all
	Follow bool // keep reading appended lines (single file)
	View   bool // interactive viewer
	Stats  bool // log outcome counters when done

	Stdin  io.Reader
	Stdout io.Writer
	Logger *zerolog.Logger
}

// Run processes every input until it is exhausted or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if len(opts.Files) == 0 {
		opts.Files = []string{StdinPath}
	}

	settings, err := resolve(opts)
	if err != nil {
		return err
	}
	log.Debug().
		Str("min_level", settings.policy.MinLevel.String()).
		Bool("skip_stack_traces", settings.policy.StackTrace == pipeline.StackTraceSkip).
		Bool("drop_invalid", settings.policy.Fallback == pipeline.DropLine).
		Str("color", string(settings.color)).
		Str("theme", settings.theme).
		Int("workers", settings.workers).
		Strs("files", opts.Files).
		Msg("starting")

	stats := &state.Store{}
	src := sources{files: opts.Files, stdin: opts.Stdin, tail: opts.Tail, follow: opts.Follow}

	if opts.View {
		return runViewer(ctx, opts, settings, src, stats)
	}

	colorizer := render.NewColorizer(opts.Stdout, settings.color, render.GetTheme(settings.theme))
	flushEach := opts.Follow || src.readsStdin()
	proc := newProcessor(pipeline.New(settings.policy, colorizer), opts.Stdout, settings.workers, flushEach, stats, log)
	err = src.each(ctx, proc.line, proc.flush)
	if flushErr := proc.flush(); err == nil {
		err = flushErr
	}
	if opts.Stats {
		logStats(log, stats.Snapshot())
	}
	return err
}

// settings is Options merged over the config file.
type settings struct {
	policy  pipeline.Policy
	color   render.ColorMode
	theme   string
	workers int
}

func resolve(opts Options) (settings, error) {
	if opts.Follow {
		if len(opts.Files) != 1 || opts.Files[0] == StdinPath {
			return settings{}, fmt.Errorf("%w: follow needs exactly one file", ErrUsage)
		}
	}
	if opts.Tail < 0 {
		return settings{}, fmt.Errorf("%w: line count must not be negative", ErrUsage)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	s := settings{policy: cfg.Policy(), color: cfg.Color, workers: cfg.Workers}
	if opts.MinLevel != nil {
		s.policy.MinLevel = *opts.MinLevel
	}
	if opts.SkipStackTraces {
		s.policy.StackTrace = pipeline.StackTraceSkip
	}
	if opts.DropInvalid {
		s.policy.Fallback = pipeline.DropLine
	}
	if opts.Color != "" {
		if s.color, err = render.ParseColorMode(opts.Color); err != nil {
			return settings{}, fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}
	if opts.Workers > 0 {
		s.workers = opts.Workers
	}

	s.theme = opts.Theme
	if s.theme == "" {
		s.theme = prefs.Load(opts.PrefsPath).Theme
	}
	return s, nil
}

func runViewer(ctx context.Context, opts Options, s settings, src sources, stats *state.Store) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, 1024)
	go func() {
		defer close(lines)
		send := func(line string) error {
			select {
			case lines <- line:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := src.each(ctx, send, nil); err != nil && !errors.Is(err, context.Canceled) {
			stats.Fail(err)
		}
	}()

	return ui.Run(ui.Options{
		Context:   ctx,
		Lines:     lines,
		Store:     stats,
		Policy:    s.policy,
		ThemeName: s.theme,
		Color:     s.color,
		PrefsPath: opts.PrefsPath,
		Output:    opts.Stdout,
		InputTTY:  src.readsStdin(),
	})
}

func logStats(log zerolog.Logger, snap state.Snapshot) {
	log.Info().
		Int("lines", snap.Lines).
		Int("emitted", snap.Emitted).
		Int("suppressed", snap.Suppressed).
		Int("passed_through", snap.PassedOn).
		Int("dropped", snap.Dropped).
		Dur("elapsed", snap.LastUpdated.Sub(snap.Started)).
		Msg("done")
}
