package ui

import (
	"strings"
)

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"j/k", "Scroll down/up"},
				{"ctrl+d/u", "Half page down/up"},
				{"g/G", "Go to top/bottom"},
				{"space/f", "Toggle follow"},
			},
		},
		{
			title: "Filters",
			items: []helpItem{
				{"l", "Raise minimum level (wraps to TRACE)"},
				{"s", "Show/hide stack traces"},
				{"d", "Show/drop non-record lines"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(m.chrome.Logo.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := m.chrome.Accent.Width(12)
	for i, section := range sections {
		b.WriteString(m.chrome.Logo.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(item.desc)
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.chrome.Footer.Render("Press any key to close"))
	return b.String()
}
