package pager

import (
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/ui"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func longGuide() guide.Document {
	var doc guide.Document
	for w := 1; w <= 3; w++ {
		items := make([]guide.ListItem, 20)
		for i := range items {
			items[i] = guide.ListItem{guide.Text(fmt.Sprintf("step %d", i+1))}
		}
		doc = append(doc, &guide.WeekSection{
			Title: fmt.Sprintf("🕐 Week %d", w),
			Body:  []guide.Block{&guide.List{Items: items}},
		})
	}
	return doc
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return New("Rhinoplasty", longGuide(), 60, 10, ui.NewPlainStyles(io.Discard), true)
}

func TestWeekOffsets(t *testing.T) {
	m := newTestModel(t)
	if len(m.weekLines) != 3 {
		t.Fatalf("weekLines = %v, want 3 entries", m.weekLines)
	}
	if m.weekLines[0] != 0 {
		t.Fatalf("first week at line %d, want 0", m.weekLines[0])
	}
	for i := 1; i < len(m.weekLines); i++ {
		if m.weekLines[i] <= m.weekLines[i-1] {
			t.Fatalf("week offsets not increasing: %v", m.weekLines)
		}
	}

	lines := strings.Split(m.viewport.View(), "\n")
	if !strings.Contains(lines[0], "Week 1") {
		t.Fatalf("first visible line = %q", lines[0])
	}
}

func TestJumpBetweenWeeks(t *testing.T) {
	m := newTestModel(t)

	m.Update(runeKey("n"))
	if m.viewport.YOffset != m.weekLines[1] {
		t.Fatalf("after n: offset = %d, want %d", m.viewport.YOffset, m.weekLines[1])
	}
	if !strings.Contains(m.viewport.View(), "Week 2") {
		t.Fatalf("week 2 not visible:\n%s", m.viewport.View())
	}

	m.Update(runeKey("n"))
	m.Update(runeKey("n"))
	if m.viewport.YOffset != m.weekLines[2] {
		t.Fatalf("n past last week moved offset to %d", m.viewport.YOffset)
	}

	m.Update(runeKey("p"))
	if m.viewport.YOffset != m.weekLines[1] {
		t.Fatalf("after p: offset = %d, want %d", m.viewport.YOffset, m.weekLines[1])
	}

	m.Update(runeKey("g"))
	if m.viewport.YOffset != 0 {
		t.Fatalf("after g: offset = %d", m.viewport.YOffset)
	}
	m.Update(runeKey("G"))
	if !m.viewport.AtBottom() {
		t.Fatal("G did not reach the bottom")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q command = %T, want tea.QuitMsg", cmd())
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := New("x", longGuide(), 0, 0, ui.NewPlainStyles(io.Discard), true)
	if got := m.View(); got != "loading..." {
		t.Fatalf("View() = %q", got)
	}
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 12})
	view := m.View()
	if !strings.Contains(view, "x") || !strings.Contains(view, "Week 1") {
		t.Fatalf("View() after resize:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got != 12 {
		t.Fatalf("view height = %d lines, want 12", got)
	}
}
