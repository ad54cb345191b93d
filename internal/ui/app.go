package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lcat/internal/pipeline"
	"github.com/five82/lcat/internal/prefs"
	"github.com/five82/lcat/internal/render"
	"github.com/five82/lcat/internal/state"
)

const (
	bufferLimit    = 10000 // raw lines kept for re-filtering
	lineBatchLimit = 512   // lines taken from the source per update
)

// Options configures the viewer.
type Options struct {
	Context   context.Context
	Lines     <-chan string // closed when the source is exhausted
	Store     *state.Store
	Policy    pipeline.Policy
	ThemeName string
	Color     render.ColorMode
	PrefsPath string
	Output    io.Writer
	InputTTY  bool // read keys from /dev/tty because stdin is the log source
}

// Model is the viewer state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	lines     <-chan string
	store     *state.Store
	prefsPath string
	output    io.Writer
	color     render.ColorMode
	keys      keyMap

	// Rendering
	policy    pipeline.Policy
	themeName string
	renderer  *lipgloss.Renderer
	colorizer render.Colorizer
	chrome    chrome

	// Data
	raw      []string
	outcomes []pipeline.Outcome

	// UI state
	viewport   viewport.Model
	help       help.Model
	width      int
	height     int
	ready      bool
	follow     bool
	showHelp   bool
	sourceDone bool
	sourceErr  error
	prefsErr   error
}

// New creates the viewer model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	m := Model{
		ctx:        ctx,
		lines:      opts.Lines,
		store:      store,
		prefsPath:  opts.PrefsPath,
		output:     output,
		color:      opts.Color,
		keys:       DefaultKeyMap(),
		policy:     opts.Policy,
		help:       help.New(),
		follow:     true,
		sourceDone: opts.Lines == nil,
	}
	m.setTheme(opts.ThemeName)
	return m
}

func (m *Model) setTheme(name string) {
	theme := render.GetTheme(name)
	m.themeName = theme.Name
	m.renderer = render.NewRenderer(m.output, m.color)
	if m.color == render.ColorNever {
		m.colorizer = render.Plain{}
	} else {
		m.colorizer = theme.Colorizer(m.renderer)
	}
	m.chrome = newChrome(m.renderer, theme)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.lines == nil {
		return nil
	}
	return waitForLines(m.lines)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, m.viewportHeight())
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = m.viewportHeight()
		}
		m.help.Width = m.width
		m.refreshContent()
		return m, nil

	case linesMsg:
		m.appendLines(msg)
		return m, waitForLines(m.lines)

	case sourceDoneMsg:
		m.sourceDone = true
		m.sourceErr = m.store.Snapshot().LastError
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleLevel):
		m.policy.MinLevel = m.policy.MinLevel.Next()
		m.reprocess()
		return m, nil
	case key.Matches(msg, m.keys.ToggleStack):
		if m.policy.StackTrace == pipeline.StackTraceFull {
			m.policy.StackTrace = pipeline.StackTraceSkip
		} else {
			m.policy.StackTrace = pipeline.StackTraceFull
		}
		m.reprocess()
		return m, nil
	case key.Matches(msg, m.keys.ToggleInvalid):
		if m.policy.Fallback == pipeline.PassThroughOriginalLine {
			m.policy.Fallback = pipeline.DropLine
		} else {
			m.policy.Fallback = pipeline.PassThroughOriginalLine
		}
		m.reprocess()
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(render.NextTheme(m.themeName))
		m.prefsErr = prefs.SaveTheme(m.prefsPath, m.themeName)
		m.reprocess()
		return m, nil
	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.follow = false
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.follow = true
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if !m.viewport.AtBottom() {
		m.follow = false
	}
	return m, cmd
}

// appendLines processes new source lines, dropping the oldest once the
// buffer is full.
func (m *Model) appendLines(lines []string) {
	pipe := pipeline.New(m.policy, m.colorizer)
	for _, line := range lines {
		outcome := pipe.Process(line)
		m.store.Record(outcome.Kind)
		m.raw = append(m.raw, line)
		m.outcomes = append(m.outcomes, outcome)
	}
	if over := len(m.raw) - bufferLimit; over > 0 {
		m.raw = append(m.raw[:0:0], m.raw[over:]...)
		m.outcomes = append(m.outcomes[:0:0], m.outcomes[over:]...)
	}
	m.refreshContent()
}

// reprocess renders every buffered line again under the current policy
// and theme.
func (m *Model) reprocess() {
	m.store.Reset()
	pipe := pipeline.New(m.policy, m.colorizer)
	for i, line := range m.raw {
		m.outcomes[i] = pipe.Process(line)
		m.store.Record(m.outcomes[i].Kind)
	}
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) content() string {
	var b strings.Builder
	first := true
	for _, outcome := range m.outcomes {
		if !outcome.Writes() {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		b.WriteString(outcome.Text)
		first = false
	}
	return b.String()
}

// viewportHeight leaves room for the header and footer lines.
func (m Model) viewportHeight() int {
	return max(m.height-2, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	snap := m.store.Snapshot()
	sep := m.chrome.Muted.Render("  ")

	source := "reading"
	switch {
	case m.sourceErr != nil:
		source = "error: " + m.sourceErr.Error()
	case m.sourceDone:
		source = "end of input"
	}
	follow := "paused"
	if m.follow {
		follow = "following"
	}
	stack := "full"
	if m.policy.StackTrace == pipeline.StackTraceSkip {
		stack = "skip"
	}
	invalid := "pass"
	if m.policy.Fallback == pipeline.DropLine {
		invalid = "drop"
	}

	parts := []string{
		m.chrome.Logo.Render("lcat"),
		m.chrome.Accent.Render("min " + m.policy.MinLevel.String()),
		m.chrome.Muted.Render("stack " + stack),
		m.chrome.Muted.Render("invalid " + invalid),
		m.chrome.Muted.Render(fmt.Sprintf("shown %d/%d", snap.Emitted+snap.PassedOn, snap.Lines)),
		m.chrome.Muted.Render(follow),
	}
	if m.sourceErr != nil {
		parts = append(parts, m.chrome.Danger.Render(source))
	} else {
		parts = append(parts, m.chrome.Muted.Render(source))
	}
	if m.prefsErr != nil {
		parts = append(parts, m.chrome.Danger.Render("prefs: "+m.prefsErr.Error()))
	}
	return m.chrome.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) renderFooter() string {
	return m.chrome.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// Messages

type linesMsg []string

type sourceDoneMsg struct{}

// Commands

// waitForLines blocks for the next line, then takes whatever else is
// already queued so a fast source does not cost one update per line.
func waitForLines(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return sourceDoneMsg{}
		}
		batch := []string{line}
		for len(batch) < lineBatchLimit {
			select {
			case next, ok := <-ch:
				if !ok {
					return linesMsg(batch)
				}
				batch = append(batch, next)
			default:
				return linesMsg(batch)
			}
		}
		return linesMsg(batch)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	model := New(opts)

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(model.ctx),
		tea.WithOutput(model.output),
	}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		if model.ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
