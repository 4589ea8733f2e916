// Package pager is a scrollable full-screen view of a parsed guide with
// jumps between week sections.
package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/render"
	"github.com/medijourney/recovery-guide/internal/ui"
)

// chrome is the number of lines used by the header and footer.
const chrome = 2

// Model is the guide pager model
type Model struct {
	width  int
	height int

	title string
	doc   guide.Document
	plain bool

	// weekLines holds the first content line of every week section.
	weekLines []int

	viewport viewport.Model
	help     help.Model
	styles   *ui.Styles
	keyMap   KeyMap
	ready    bool
}

// New creates a pager for doc. Width and height may be zero until the
// first WindowSizeMsg arrives.
func New(title string, doc guide.Document, width, height int, styles *ui.Styles, plain bool) *Model {
	if styles == nil {
		styles = ui.DefaultStyles()
	}
	m := &Model{
		title:    title,
		doc:      doc,
		plain:    plain,
		styles:   styles,
		keyMap:   DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
	}
	if width > 0 && height > 0 {
		m.resize(width, height)
	}
	return m
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-chrome)
	m.renderContent()
	m.ready = true
}

// renderContent renders the document one top-level block at a time so
// week offsets are known.
func (m *Model) renderContent() {
	r := render.NewTerminal(render.Options{Width: m.width, Plain: m.plain})

	var parts []string
	m.weekLines = m.weekLines[:0]
	line := 0
	for _, b := range m.doc {
		out, err := r.RenderString(guide.Document{b})
		if err != nil {
			out = m.styles.Error.Render(err.Error())
		}
		if _, ok := b.(*guide.WeekSection); ok {
			m.weekLines = append(m.weekLines, line)
		}
		parts = append(parts, out)
		// blocks are separated by a blank line
		line += strings.Count(out, "\n") + 2
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		offset := m.viewport.YOffset
		m.resize(msg.Width, msg.Height)
		m.viewport.SetYOffset(offset)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.NextWeek):
			m.jumpWeek(1)
			return m, nil
		case key.Matches(msg, m.keyMap.PrevWeek):
			m.jumpWeek(-1)
			return m, nil
		case key.Matches(msg, m.keyMap.GoToTop):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keyMap.GoToBottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// jumpWeek scrolls to the next (dir > 0) or previous week section
// relative to the current offset.
func (m *Model) jumpWeek(dir int) {
	current := m.viewport.YOffset
	target := -1
	if dir > 0 {
		for _, line := range m.weekLines {
			if line > current {
				target = line
				break
			}
		}
	} else {
		for i := len(m.weekLines) - 1; i >= 0; i-- {
			if m.weekLines[i] < current {
				target = m.weekLines[i]
				break
			}
		}
	}
	if target >= 0 {
		m.viewport.SetYOffset(target)
	}
}

// View renders the model
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	theme := m.styles.Theme()

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(m.width).
		Render(ui.Truncate(m.title, max(1, m.width-2)))

	scrollInfo := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	helpView := m.help.ShortHelpView(m.keyMap.ShortHelp())
	padding := max(1, m.width-lipgloss.Width(scrollInfo)-lipgloss.Width(helpView))
	footer := lipgloss.NewStyle().Foreground(theme.Muted).
		Render(scrollInfo + strings.Repeat(" ", padding) + helpView)

	return header + "\n" + m.viewport.View() + "\n" + footer
}

// Run starts the pager full-screen and blocks until the user quits.
func Run(title string, doc guide.Document, styles *ui.Styles, plain bool) error {
	p := tea.NewProgram(New(title, doc, 0, 0, styles, plain), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
