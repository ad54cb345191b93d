package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/lcat/internal/pipeline"
	"github.com/five82/lcat/internal/record"
	"github.com/five82/lcat/internal/render"
)

// Config holds the defaults lcat reads from its config file. Command-line
// flags override these.
type Config struct {
	MinLevel   record.Severity
	StackTrace pipeline.StackTracePolicy
	Fallback   pipeline.FallbackPolicy
	Color      render.ColorMode
	Workers    int
}

const (
	defaultConfigPath = "~/.config/lcat/config.toml"
	defaultWorkers    = 1
	maxWorkers        = 64
)

// Default returns the configuration used when no file exists.
func Default() Config {
	policy := pipeline.DefaultPolicy()
	return Config{
		MinLevel:   policy.MinLevel,
		StackTrace: policy.StackTrace,
		Fallback:   policy.Fallback,
		Color:      render.ColorAuto,
		Workers:    defaultWorkers,
	}
}

// Load locates and parses the lcat config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		MinLevel     string `toml:"min_level"`
		StackTraces  string `toml:"stack_traces"`
		InvalidLines string `toml:"invalid_lines"`
		Color        string `toml:"color"`
		Workers      int    `toml:"workers"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if level := strings.TrimSpace(raw.MinLevel); level != "" {
		if cfg.MinLevel, err = record.ParseSeverity(level); err != nil {
			return Config{}, fmt.Errorf("config min_level: %w", err)
		}
	}
	if cfg.StackTrace, err = pipeline.ParseStackTracePolicy(raw.StackTraces); err != nil {
		return Config{}, fmt.Errorf("config stack_traces: %w", err)
	}
	if cfg.Fallback, err = pipeline.ParseFallbackPolicy(raw.InvalidLines); err != nil {
		return Config{}, fmt.Errorf("config invalid_lines: %w", err)
	}
	if cfg.Color, err = render.ParseColorMode(raw.Color); err != nil {
		return Config{}, fmt.Errorf("config color: %w", err)
	}
	cfg.Workers = clampWorkers(raw.Workers)

	return cfg, nil
}

// Policy returns the filter policy described by c.
func (c Config) Policy() pipeline.Policy {
	return pipeline.Policy{
		MinLevel:   c.MinLevel,
		StackTrace: c.StackTrace,
		Fallback:   c.Fallback,
	}
}

func clampWorkers(n int) int {
	switch {
	case n <= 0:
		return defaultWorkers
	case n > maxWorkers:
		return maxWorkers
	default:
		return n
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
