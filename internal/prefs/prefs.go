// Package prefs persists lcat viewer preferences.
// Preferences are stored in ~/.config/lcat/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/lcat/internal/render"
)

// Prefs holds preferences the viewer remembers between runs.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/lcat/prefs.toml"
	defaultTheme     = render.DefaultThemeName
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. Missing, unreadable or invalid
// files yield the defaults; preferences never stop lcat from starting.
func Load(path string) Prefs {
	defaults := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return defaults
	}

	var loaded Prefs
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return defaults
	}
	loaded.Theme = strings.TrimSpace(loaded.Theme)
	if !knownTheme(loaded.Theme) {
		loaded.Theme = defaultTheme
	}
	return loaded
}

// SaveTheme records theme as the preferred theme, keeping other preferences.
func SaveTheme(path, theme string) error {
	p := Load(path)
	p.Theme = theme
	return Save(path, p)
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func knownTheme(name string) bool {
	for _, known := range render.ThemeNames() {
		if name == known {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
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
