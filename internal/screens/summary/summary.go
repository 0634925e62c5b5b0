// Package summary renders the end-of-quiz score card.
package summary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Render draws the score card for sum centered in width.
func Render(sum *session.SessionSummary, width int) string {
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Quiz complete!"))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if !sum.Perfect {
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	b.WriteString(lipgloss.PlaceHorizontal(cw-6, lipgloss.Center,
		scoreStyle.Render(fmt.Sprintf("%d / %d   (%d%%)", sum.Score, sum.Total, sum.Percent))))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw - 6).Render(sum.Message()))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answered %d of %d   Submissions %d   Time %s",
		sum.Attempted, sum.Total, sum.Submissions, FormatDuration(sum.Duration.Seconds()))
	b.WriteString(lipgloss.PlaceHorizontal(cw-6, lipgloss.Center, theme.Hint.Render(stats)))

	return components.Center(components.Card(b.String(), cw), width)
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(secs float64) string {
	s := max(int(secs), 0)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
