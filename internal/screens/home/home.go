// Package home is the quiz picker shown at startup.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/screens/play"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const banner = `┌─┐ ┬ ┬ ┬ ┌─┐ ┌┬┐ ┌─┐ ┌─┐ ┬┌─
│─┼┐│ │ │ ┌─┘  ││ ├┤  │   ├┴┐
└─┘└└─┘ ┴ └─┘ ─┴┘ └─┘ └─┘ ┴ ┴`

type quizzesLoadedMsg struct {
	Quizzes []quiz.Summary
	Err     error
}

// HomeScreen lists the sample quiz and the user's own quizzes.
type HomeScreen struct {
	deps    play.Deps
	quizzes []quiz.Summary
	menu    components.Menu
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

func New(deps play.Deps) *HomeScreen {
	return &HomeScreen{deps: deps}
}

func (h *HomeScreen) Init() tea.Cmd {
	return loadQuizzes(h.deps)
}

// loadQuizzes reads the sample plus the user's quizzes, newest first.
func loadQuizzes(deps play.Deps) tea.Cmd {
	return func() tea.Msg {
		sample, err := quiz.Builtin()
		if err != nil {
			return quizzesLoadedMsg{Err: err}
		}
		list := []quiz.Summary{sample.Summarize()}
		if deps.Quizzes != nil {
			own, err := deps.Quizzes.ListByOwner(context.Background(), deps.UserID)
			if err != nil {
				return quizzesLoadedMsg{Quizzes: list, Err: err}
			}
			list = append(list, own...)
		}
		return quizzesLoadedMsg{Quizzes: list}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "H", Description: "History"},
		{Key: "Ctrl+R", Description: "Reload"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		h.loaded = true
		h.errMsg = ""
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		}
		h.setQuizzes(msg.Quizzes)
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "ctrl+r":
			return h, loadQuizzes(h.deps)
		case "h":
			if q, ok := h.selected(); ok && h.deps.Attempts != nil {
				scr := history.New(h.deps.Attempts, q.ID, q.Title, h.deps.UserID)
				return h, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) setQuizzes(list []quiz.Summary) {
	h.quizzes = list
	items := make([]components.MenuItem, len(list))
	for i, q := range list {
		id := q.ID
		items[i] = components.MenuItem{
			Label:  q.Title,
			Detail: questionCount(q.QuestionCount),
			Action: func() tea.Cmd {
				scr := play.New(h.deps, id)
				return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
			},
		}
	}
	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) selected() (quiz.Summary, bool) {
	if h.menu.Selected < 0 || h.menu.Selected >= len(h.quizzes) {
		return quiz.Summary{}, false
	}
	return h.quizzes[h.menu.Selected], true
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if height >= 20 {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner))
	}
	sections = append(sections, theme.Subtitle.Render("Practice quizzes generated from your documents"))

	var body string
	switch {
	case !h.loaded:
		body = theme.Hint.Render("Loading quizzes...")
	case len(h.quizzes) == 0:
		body = theme.Hint.Render("No quizzes yet.")
	default:
		body = h.menu.View()
		if len(h.quizzes) == 1 {
			body += "\n" + theme.Hint.Render("Generate one with: quizdeck generate <file.pdf>")
		}
	}
	sections = append(sections, components.Card(strings.TrimRight(body, "\n"), cw))

	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+h.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func questionCount(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}
