package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colours for each class plus the viewer chrome.
// Colour values are lipgloss colour strings: "#rrggbb" or an ANSI index.
// An empty value keeps the terminal's default.
type Theme struct {
	Name string

	// Class colours
	Text      string // Neutral
	Faint     string // Dim
	Danger    string // Alert
	Warning   string // Caution
	Secondary string // Secondary

	// Viewer chrome
	Background string
	Surface    string
	Border     string
	Accent     string
	Muted      string
}

// ClassColor returns the colour bound to class.
func (t Theme) ClassColor(class Class) string {
	switch class {
	case Dim:
		return t.Faint
	case Alert:
		return t.Danger
	case Caution:
		return t.Warning
	case Secondary:
		return t.Secondary
	default:
		return t.Text
	}
}

// Colorizer returns a Colorizer rendering through r. A nil renderer uses the
// lipgloss default renderer (stdout detection).
func (t Theme) Colorizer(r *lipgloss.Renderer) Colorizer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[Class]lipgloss.Style, 5)
	for _, class := range []Class{Neutral, Dim, Alert, Caution, Secondary} {
		style := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if color := t.ClassColor(class); color != "" {
			style = style.Foreground(lipgloss.Color(color))
		}
		styles[class] = style
	}
	return styleColorizer{styles: styles}
}

// Theme definitions

const DefaultThemeName = "Terminal"

var themes = map[string]Theme{
	"Terminal": terminalTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Terminal", "Nightfox", "Slate"}

// GetTheme returns a theme by name, falling back to Terminal.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return terminalTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func terminalTheme() Theme {
	// Base 16-colour palette so output follows the terminal scheme.
	return Theme{
		Name: "Terminal",

		Text:      "",
		Faint:     "8", // bright black
		Danger:    "1", // red
		Warning:   "3", // yellow
		Secondary: "2", // green

		Background: "",
		Surface:    "0",
		Border:     "8",
		Accent:     "4",
		Muted:      "8",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Text:      "#cdcecf", // fg1
		Faint:     "#738091", // comment
		Danger:    "#c94f6d", // red
		Warning:   "#dbc074", // yellow
		Secondary: "#81b29a", // green

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		Border:     "#39506d", // bg4
		Accent:     "#719cd6", // blue
		Muted:      "#71839b", // fg3
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Text:      "#f1f5f9", // slate-100
		Faint:     "#64748b", // slate-500
		Danger:    "#ef4444", // red-500
		Warning:   "#f59e0b", // amber-500
		Secondary: "#22c55e", // green-500

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		Border:     "#334155", // slate-700
		Accent:     "#38bdf8", // sky-400
		Muted:      "#94a3b8", // slate-400
	}
}
