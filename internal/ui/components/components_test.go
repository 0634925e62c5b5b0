package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/session"
)

func TestMultiChoice_CursorBounds(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.Cursor)
	}
	for range 5 {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 at bottom", m.Cursor)
	}
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice([]string{"TCP", "UDP", "IP"})

	view := m.View([]int{1}, nil, false)
	if !strings.Contains(view, "[x] B) UDP") || !strings.Contains(view, "[ ] A) TCP") {
		t.Errorf("unexpected selection rendering:\n%s", view)
	}
	if strings.Contains(view, "✓") {
		t.Error("answers must stay hidden before reveal")
	}

	view = m.View([]int{1, 2}, []int{0, 1}, true)
	if strings.Count(view, "✓") != 2 || strings.Count(view, "✗") != 1 {
		t.Errorf("unexpected reveal rendering:\n%s", view)
	}
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{3, "D"},
		{25, "Z"},
		{26, "27"},
	}
	for _, tt := range tests {
		if got := OptionLabel(tt.in); got != tt.want {
			t.Errorf("OptionLabel(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		current, total int
		want           float64
	}{
		{0, 0, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar(tt.current, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.current, tt.total, got, tt.want)
		}
	}
	if view := NewProgressBar(3, 10, 40).View(); !strings.Contains(view, "Question 3/10") {
		t.Errorf("missing label in %q", view)
	}
}

func TestNavGrid_Wraps(t *testing.T) {
	marks := make([]session.ResultMark, 12)
	for i := range marks {
		marks[i] = session.MarkUnanswered
	}
	marks[0] = session.MarkCorrect
	marks[1] = session.MarkIncorrect

	grid := NavGrid(marks, 0, 15)
	if lipgloss.Height(grid) != 3 {
		t.Errorf("expected 3 rows for 12 cells of width 3 in 15 columns, got %d:\n%s", lipgloss.Height(grid), grid)
	}
	if !strings.Contains(grid, "12") {
		t.Errorf("missing last cell:\n%s", grid)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: pick("one")},
		{Label: "gone", Disabled: true},
		{Label: "two", Action: pick("two")},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("selected = %d, want 3", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "two" {
		t.Errorf("chosen = %q, want two", chosen)
	}
}

func TestTextInput_NumericOnly(t *testing.T) {
	ti := NewTextInput("#", true, 4)
	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	ti, _ = ti.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	ti, _ = ti.Update(tea.KeyPressMsg{Code: '2', Text: "2"})

	n, err := ti.NumericValue()
	if err != nil || n != 42 {
		t.Errorf("NumericValue = %d, %v; want 42", n, err)
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("expected empty after reset, got %q", ti.Value())
	}
}
