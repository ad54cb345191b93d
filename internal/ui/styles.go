package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lcat/internal/render"
)

// chrome holds the styles for everything around the log lines.
type chrome struct {
	Header lipgloss.Style
	Logo   lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Danger lipgloss.Style
	Footer lipgloss.Style
}

func newChrome(r *lipgloss.Renderer, t render.Theme) chrome {
	return chrome{
		Header: colored(r.NewStyle(), t.Text, t.Surface).Padding(0, 1),
		Logo:   colored(r.NewStyle(), t.Warning, t.Surface).Bold(true),
		Muted:  colored(r.NewStyle(), t.Muted, t.Surface),
		Accent: colored(r.NewStyle(), t.Accent, t.Surface),
		Danger: colored(r.NewStyle(), t.Danger, t.Surface).Bold(true),
		Footer: colored(r.NewStyle(), t.Muted, "").Padding(0, 1),
	}
}

// colored applies fg and bg, skipping empty values so the terminal
// default shows through.
func colored(s lipgloss.Style, fg, bg string) lipgloss.Style {
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	return s
}
