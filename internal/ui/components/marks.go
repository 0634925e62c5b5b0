package components

import (
	"fmt"
	"strings"


	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// NavGrid renders one numbered cell per question colored by its last
// result, wrapping to width. The current question is underlined.
func NavGrid(marks []session.ResultMark, current, width int) string {
	cellWidth := len(fmt.Sprint(len(marks))) + 1
	perLine := max(width/cellWidth, 1)

	var b strings.Builder
	for i, m := range marks {
		if i > 0 && i%perLine == 0 {
			b.WriteString("\n")
		}
		style := theme.Unanswered
		switch m {
		case session.MarkCorrect:
			style = theme.Correct
		case session.MarkIncorrect:
			style = theme.Incorrect
		}
		if i == current {
			style = style.Underline(true).Bold(true)
		}
		cell := fmt.Sprintf("%*d", cellWidth-1, i+1)
		b.WriteString(style.Render(cell))
		if (i+1)%perLine != 0 {
			b.WriteString(" ")
		}
	}
	return b.String()
}
