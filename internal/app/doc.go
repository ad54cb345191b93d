// Package app wires configuration, inputs, the line pipeline and the
// output sink into one lcat run.
//
// # Overview
//
// Run is the composition root:
//
//  1. Load ~/.config/lcat/config.toml (or the given path) for defaults
//  2. Apply command-line overrides to build the pipeline.Policy
//  3. Pick the theme (flag, then prefs.toml) and the colour mode
//  4. Read every input in order and write each outcome to stdout,
//     or hand the lines to the interactive viewer
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Resolve settings
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Defaults from the config file
//	       ├─────> prefs.Load()         Remembered theme
//	       ├─────> render.NewColorizer  Theme + colour mode for stdout
//	       └─────> sources.each()       stdin / files / tail / follow
//	                  │
//	                  └─> processor.line()
//	                        ├─> pipeline.Process()
//	                        ├─> state.Store.Record()
//	                        └─> bufio.Writer (stdout)
//
// # Parallel Processing
//
// Each line is processed independently, so with Workers > 1 lines are
// collected into batches of 256 per worker and split across goroutines
// with errgroup. Outcomes are written in input order, so the output is
// byte-for-byte the same as a sequential run. Streams someone is
// watching (stdin, follow mode) are processed one line at a time and
// flushed after every line.
//
// # Error Handling
//
// Lines that are not log records are never errors; the policy decides
// whether they are echoed or dropped. Run returns errors for:
//   - invalid option combinations (wrapping ErrUsage)
//   - config file problems
//   - inputs that cannot be opened or read, and output write failures
package app
