// Package layout draws the frame around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 20
)

const hintSeparator = "   "

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the app name, the screen title centered, and status
// (for example the running score) on the right.
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  quizdeck")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	nameW, centerW, rightW := lipgloss.Width(name), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-centerW)/2-nameW, 1)
	rightGap := max(inner-nameW-leftGap-centerW-rightW, 1)

	return bar(name+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// FitHints returns the longest prefix of hints whose rendered line fits
// in width columns.
func FitHints(hints []KeyHint, width int) []KeyHint {
	used := 2
	for i, h := range hints {
		w := lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Description)
		if i > 0 {
			w += len(hintSeparator)
		}
		if used+w > width {
			return hints[:i]
		}
		used += w
	}
	return hints
}

// RenderFooter renders the key hints that fit on one line.
func RenderFooter(hints []KeyHint, width int) string {
	fitted := FitHints(hints, max(width-4, 0))
	parts := make([]string, len(fitted))
	for i, h := range fitted {
		parts[i] = h.render()
	}
	return bar("  "+strings.Join(parts, hintSeparator), width)
}

// RenderFrame stacks header, content padded to the remaining height, and
// footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
