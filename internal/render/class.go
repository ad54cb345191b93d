package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Class is an abstract rendering category.
type Class int

const (
	Neutral Class = iota
	Dim
	Alert
	Caution
	Secondary
)

func (c Class) String() string {
	switch c {
	case Neutral:
		return "neutral"
	case Dim:
		return "dim"
	case Alert:
		return "alert"
	case Caution:
		return "caution"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Colorizer renders text in the colour bound to class.
type Colorizer interface {
	Colorize(text string, class Class) string
}

// Plain is a Colorizer that leaves text untouched.
type Plain struct{}

// Colorize returns text unchanged.
func (Plain) Colorize(text string, _ Class) string {
	return text
}

// styleColorizer renders through prebuilt lipgloss styles.
type styleColorizer struct {
	styles map[Class]lipgloss.Style
}

// Colorize styles each line of text separately. Rendering a multi-line
// block in one call would pad every line to the width of the longest.
func (s styleColorizer) Colorize(text string, class Class) string {
	if text == "" {
		return ""
	}
	style, ok := s.styles[class]
	if !ok {
		style = s.styles[Neutral]
	}
	if !strings.Contains(text, "\n") {
		return style.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
