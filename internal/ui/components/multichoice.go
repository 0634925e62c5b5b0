package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MultiChoice renders a checkbox list of options with a cursor. The
// selection itself is owned by the caller; MultiChoice only tracks the
// cursor.
type MultiChoice struct {
	Options []string
	Cursor  int
}

func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor with the arrow keys (or j/k).
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}
	return m, nil
}

// OptionLabel returns "A", "B", ... for option i.
func OptionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}

// View renders the options. When revealed, correct options are marked in
// green and wrongly selected ones in red.
func (m MultiChoice) View(selected, correct []int, revealed bool) string {
	var b strings.Builder
	for i, opt := range m.Options {
		isSel := slices.Contains(selected, i)
		box := "[ ]"
		if isSel {
			box = "[x]"
		}
		cursor := "  "
		if i == m.Cursor && !revealed {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %s) %s", cursor, box, OptionLabel(i), opt)

		style := theme.Unselected
		switch {
		case revealed && slices.Contains(correct, i):
			style = theme.Correct
			line += "  ✓"
		case revealed && isSel:
			style = theme.Incorrect
			line += "  ✗"
		case revealed:
			style = theme.Unanswered
		case i == m.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
