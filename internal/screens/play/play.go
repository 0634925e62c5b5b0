// Package play is the screen that runs one quiz session.
package play

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// ErrQuizNotFound is shown when the requested quiz does not exist or
// belongs to someone else.
var ErrQuizNotFound = errors.New("quiz not found")

// Deps are shared by the home and play screens.
type Deps struct {
	Quizzes  store.QuizRepo
	Attempts store.AttemptRepo
	UserID   string

	// Clipboard writes text to the system clipboard. Nil uses
	// atotto/clipboard.
	Clipboard func(string) error

	// NewRand returns the RNG for shuffling a new session. Nil uses the
	// global source.
	NewRand func() *rand.Rand
}

func (d Deps) writeClipboard(text string) error {
	if d.Clipboard != nil {
		return d.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}

// PlayScreen loads a quiz, shuffles it and plays it through.
type PlayScreen struct {
	deps   Deps
	quizID string
	title  string

	state    *session.SessionState
	choice   components.MultiChoice
	recorded bool

	jumping bool
	jump    components.TextInput

	notice string
	errMsg string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

func New(deps Deps, quizID string) *PlayScreen {
	return &PlayScreen{
		deps:   deps,
		quizID: quizID,
		jump:   components.NewTextInput("question #", true, 4),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	deps, id := s.deps, s.quizID
	return func() tea.Msg {
		rec, err := store.LoadQuiz(context.Background(), deps.Quizzes, id, deps.UserID)
		if err == nil && rec == nil {
			err = ErrQuizNotFound
		}
		return quizLoadedMsg{Record: rec, Err: err}
	}
}

func (s *PlayScreen) Title() string {
	if s.title == "" {
		return "Quiz"
	}
	return s.title
}

func (s *PlayScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return fmt.Sprintf("Score %d", s.state.Score)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.state == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.jumping:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.state.Completed:
		return []layout.KeyHint{
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Home"},
		}
	case s.state.Answered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "C", Description: "Copy"},
			{Key: "G", Description: "Jump"},
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Submit"},
		{Key: "G", Description: "Jump"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleLoaded(msg)

	case attemptSavedMsg:
		if msg.Err != nil {
			s.notice = "Could not save attempt: " + msg.Err.Error()
		}
		return s, nil

	case copiedMsg:
		if msg.Err != nil {
			s.notice = "Copy failed: " + msg.Err.Error()
		} else {
			s.notice = "Answer copied to clipboard"
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	var rng *rand.Rand
	if s.deps.NewRand != nil {
		rng = s.deps.NewRand()
	}
	state, err := session.NewSessionState(uuid.NewString(), msg.Record.ID, quiz.Normalize(msg.Record.Questions, rng))
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.title = msg.Record.Title
	s.state = state
	s.resetChoice()
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
	if s.jumping {
		return s.handleJumpKey(msg)
	}

	s.notice = ""

	switch key {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r":
		session.Restart(s.state)
		s.recorded = false
		s.resetChoice()
		return s, nil
	}

	if s.state.Completed {
		if key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "up", "k", "down", "j":
		s.choice, _ = s.choice.Update(msg)
	case "space", " ", "x":
		session.ToggleOption(s.state, s.choice.Cursor)
	case "enter":
		if s.state.Answered {
			return s, s.next()
		}
		session.Submit(s.state)
	case "g":
		s.jumping = true
		s.jump.Reset()
		return s, s.jump.Init()
	case "c":
		return s, s.copyAnswer()
	}
	return s, nil
}

func (s *PlayScreen) handleJumpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.jumping = false
		return s, nil
	case "enter":
		s.jumping = false
		n, err := s.jump.NumericValue()
		if err != nil || !session.JumpTo(s.state, n-1) {
			s.notice = fmt.Sprintf("Enter a question number from 1 to %d", len(s.state.Questions))
			return s, nil
		}
		s.resetChoice()
		return s, nil
	}

	var cmd tea.Cmd
	s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

// next advances past an answered question and stores the attempt the
// first time the run completes.
func (s *PlayScreen) next() tea.Cmd {
	if !session.Next(s.state) {
		return nil
	}
	if !s.state.Completed {
		s.resetChoice()
		return nil
	}
	if s.recorded || s.deps.Attempts == nil {
		return nil
	}
	s.recorded = true

	sum := session.BuildSummary(s.state)
	data := store.AttemptData{
		QuizID:      s.state.QuizID,
		UserID:      s.deps.UserID,
		Score:       sum.Score,
		Total:       sum.Total,
		Submissions: sum.Submissions,
		Duration:    sum.Duration,
		CompletedAt: s.state.EndTime,
	}
	repo := s.deps.Attempts
	return func() tea.Msg {
		_, err := repo.RecordAttempt(context.Background(), data)
		return attemptSavedMsg{Err: err}
	}
}

func (s *PlayScreen) copyAnswer() tea.Cmd {
	q := session.CurrentQuestion(s.state)
	if q == nil {
		return nil
	}
	text := quiz.FormatAnswer(*q)
	deps := s.deps
	return func() tea.Msg {
		return copiedMsg{Err: deps.writeClipboard(text)}
	}
}

func (s *PlayScreen) resetChoice() {
	if q := session.CurrentQuestion(s.state); q != nil {
		s.choice = components.NewMultiChoice(q.Options)
	}
}
