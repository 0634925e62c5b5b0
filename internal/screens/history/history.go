// Package history lists past attempts on one quiz.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/summary"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

// HistoryScreen displays the user's attempts on a quiz, newest first.
type HistoryScreen struct {
	repo      store.AttemptRepo
	quizID    string
	quizTitle string
	userID    string

	attempts []store.Attempt
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(repo store.AttemptRepo, quizID, quizTitle, userID string) *HistoryScreen {
	return &HistoryScreen{repo: repo, quizID: quizID, quizTitle: quizTitle, userID: userID}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, quizID, userID := s.repo, s.quizID, s.userID
	return func() tea.Msg {
		attempts, err := repo.ListAttempts(context.Background(), quizID, userID, pageSize)
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History: " + s.quizTitle
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Finish a run to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	best := 0
	for _, a := range s.attempts {
		best = max(best, percent(a))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(fmt.Sprintf("%d attempts, best %d%%", len(s.attempts), best))))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %3d / %-3d  %3d%%  %s  %d submissions",
			prefix,
			a.CompletedAt.Local().Format("Jan 02, 2006 15:04"),
			a.Score, a.Total, percent(a),
			summary.FormatDuration(a.Duration.Seconds()),
			a.Submissions)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if a.Total > 0 && a.Score >= a.Total {
			style = style.Foreground(theme.Success)
		}
		if i == s.selected {
			style = style.Bold(true).Foreground(theme.Primary)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func percent(a store.Attempt) int {
	if a.Total <= 0 {
		return 0
	}
	return a.Score * 100 / a.Total
}
