// Package config loads lcat's optional TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lcat/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	min_level = "warn"      # trace, debug, info, warn, error, fatal
//	stack_traces = "skip"   # full, skip
//	invalid_lines = "drop"  # pass, drop
//	color = "auto"          # auto, always, never
//	workers = 4
//
// Every field is optional. Values are matched case-insensitively; an
// unrecognised value is an error so typos are not silently ignored.
// workers is clamped to 1..64.
//
// # Defaults
//
// Everything is shown, stack traces are rendered, lines that are not log
// records are passed through, colour is detected from the terminal, and
// lines are processed on one goroutine.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors (except
// os.ErrNotExist, which triggers defaults), TOML parse errors and invalid
// values. Missing config files are NOT an error.
package config
