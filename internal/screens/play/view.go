package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/screens/summary"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.state == nil:
		return renderLoading(width)
	case s.state.Completed:
		return s.renderCompleted(width)
	}
	return s.renderQuestion(width)
}

func (s *PlayScreen) renderQuestion(width int) string {
	state := s.state
	q := session.CurrentQuestion(state)
	if q == nil {
		return renderLoading(width)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.NewProgressBar(state.CurrentIndex+1, len(state.Questions), cw).View())
	b.WriteString("\n\n")

	if q.Chapter != "" {
		b.WriteString(theme.Chapter.Render(q.Chapter))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(s.choice.View(session.SelectedOptions(state), q.CorrectIndices, state.Answered))

	if state.Answered {
		b.WriteString("\n")
		if state.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Incorrect"))
		}
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString(theme.Explanation.Width(cw).Render(q.Explanation))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(components.NavGrid(session.Marks(state), state.CurrentIndex, cw))
	b.WriteString("\n")

	if s.jumping {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("Jump to (1-%d): ", len(state.Questions))) + s.jump.View())
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.notice))
	}

	return components.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}

func (s *PlayScreen) renderCompleted(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(summary.Render(session.BuildSummary(s.state), width))
	b.WriteString("\n\n")
	cw := components.ContentWidth(width)
	b.WriteString(components.Center(components.NavGrid(session.Marks(s.state), -1, cw), width))
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(components.Center(theme.Hint.Render(s.notice), width))
	}
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading quiz...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
