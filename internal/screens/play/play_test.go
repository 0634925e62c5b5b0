package play

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type testDeps struct {
	Deps
	store   *store.Store
	copied  []string
	copyErr error
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quizdeck.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	td := &testDeps{store: st}
	td.Deps = Deps{
		Quizzes:  st.QuizRepo(),
		Attempts: st.AttemptRepo(),
		UserID:   "local",
		NewRand:  func() *rand.Rand { return rand.New(rand.NewPCG(7, 7)) },
		Clipboard: func(s string) error {
			td.copied = append(td.copied, s)
			return td.copyErr
		},
	}
	return td
}

func saveQuiz(t *testing.T, td *testDeps, owner string, questions ...quiz.Question) string {
	t.Helper()
	id, err := td.store.QuizRepo().Save(context.Background(), &quiz.Record{
		OwnerID: owner, Title: "Networks", Questions: questions,
	})
	if err != nil {
		t.Fatalf("save quiz: %v", err)
	}
	return id
}

// load runs Init synchronously and feeds its result back into the screen.
func load(t *testing.T, s *PlayScreen) *PlayScreen {
	t.Helper()
	scr, _ := s.Update(s.Init()())
	return scr.(*PlayScreen)
}

// press sends each message in order and returns the final command.
func press(s *PlayScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func isPop(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

// selectCorrect toggles every correct option of the current question.
func selectCorrect(s *PlayScreen) {
	q := s.state.Questions[s.state.CurrentIndex]
	for _, idx := range q.CorrectIndices {
		for s.choice.Cursor < idx {
			press(s, specialKey(tea.KeyDown))
		}
		for s.choice.Cursor > idx {
			press(s, specialKey(tea.KeyUp))
		}
		press(s, specialKey(tea.KeySpace))
	}
}

func TestPlayScreen_LoadsBuiltin(t *testing.T) {
	td := newTestDeps(t)
	s := load(t, New(td.Deps, quiz.DefaultID))

	if s.errMsg != "" {
		t.Fatalf("unexpected error: %s", s.errMsg)
	}
	if s.state == nil || len(s.state.Questions) == 0 {
		t.Fatal("expected a running session")
	}
	if s.Title() == "Quiz" {
		t.Errorf("expected the quiz title in the header, got %q", s.Title())
	}
	if s.Status() != "Score 0" {
		t.Errorf("Status = %q", s.Status())
	}
	if s.View(100, 30) == "" {
		t.Error("expected non-empty question view")
	}
}

func TestPlayScreen_MissingQuiz(t *testing.T) {
	td := newTestDeps(t)
	otherID := saveQuiz(t, td, "someone-else",
		quiz.Question{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectIndices: []int{0}})

	for _, id := range []string{"nope", otherID} {
		s := load(t, New(td.Deps, id))
		if s.errMsg != ErrQuizNotFound.Error() {
			t.Errorf("%s: errMsg = %q, want %q", id, s.errMsg, ErrQuizNotFound)
		}
		if !strings.Contains(s.View(80, 24), "quiz not found") {
			t.Errorf("%s: expected error view", id)
		}
		if !isPop(press(s, keyPress('x'))) {
			t.Errorf("%s: expected any key to go back", id)
		}
	}
}

func TestPlayScreen_AnswerAndComplete(t *testing.T) {
	td := newTestDeps(t)
	id := saveQuiz(t, td, "local",
		quiz.Question{ID: 1, Text: "Which are transport protocols?", Options: []string{"TCP", "UDP", "IP", "ARP"}, CorrectIndices: []int{0, 1}, Explanation: "Layer 4."},
		quiz.Question{ID: 2, Text: "Which layer routes?", Options: []string{"Network", "Link"}, CorrectIndices: []int{0}},
	)
	s := load(t, New(td.Deps, id))

	// Enter with nothing selected is ignored.
	press(s, specialKey(tea.KeyEnter))
	if s.state.Answered {
		t.Fatal("expected empty submission to be ignored")
	}

	selectCorrect(s)
	press(s, specialKey(tea.KeyEnter))
	if !s.state.Answered || !s.state.Correct {
		t.Fatalf("expected a correct answer, state %+v", s.state)
	}
	if !strings.Contains(s.View(100, 30), "Correct!") {
		t.Error("expected feedback in view")
	}

	// Space after answering does not change the selection.
	before := len(s.state.Selected)
	press(s, specialKey(tea.KeySpace))
	if len(s.state.Selected) != before {
		t.Error("expected toggle to be ignored once answered")
	}

	press(s, specialKey(tea.KeyEnter))
	if s.state.CurrentIndex != 1 || s.state.Answered {
		t.Fatalf("expected to be on a fresh second question, got index %d", s.state.CurrentIndex)
	}

	// Wrong answer on the last question.
	q := s.state.Questions[1]
	wrong := 0
	if q.IsCorrectIndex(0) {
		wrong = 1
	}
	for s.choice.Cursor < wrong {
		press(s, specialKey(tea.KeyDown))
	}
	press(s, specialKey(tea.KeySpace), specialKey(tea.KeyEnter))
	if s.state.Correct {
		t.Fatal("expected an incorrect answer")
	}

	cmd := press(s, specialKey(tea.KeyEnter))
	if !s.state.Completed {
		t.Fatal("expected the session to complete")
	}
	if cmd == nil {
		t.Fatal("expected a command storing the attempt")
	}
	press(s, cmd())

	attempts, err := td.store.AttemptRepo().ListAttempts(context.Background(), id, "local", 0)
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Score != 1 || attempts[0].Total != 2 {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "1 / 2") || !strings.Contains(view, "Great job! Keep learning.") {
		t.Errorf("expected summary in end view:\n%s", view)
	}

	press(s, keyPress('r'))
	if s.state.Completed || s.state.Score != 0 || s.state.CurrentIndex != 0 {
		t.Fatalf("expected restart, got %+v", s.state)
	}
}

func TestPlayScreen_Jump(t *testing.T) {
	td := newTestDeps(t)
	s := load(t, New(td.Deps, quiz.DefaultID))

	press(s, keyPress('g'))
	if !s.jumping {
		t.Fatal("expected jump prompt")
	}
	press(s, keyPress('3'), specialKey(tea.KeyEnter))
	if s.jumping || s.state.CurrentIndex != 2 {
		t.Fatalf("expected to land on question 3, got index %d", s.state.CurrentIndex)
	}

	press(s, keyPress('g'), keyPress('9'), keyPress('9'), specialKey(tea.KeyEnter))
	if s.state.CurrentIndex != 2 || s.notice == "" {
		t.Errorf("expected out-of-range jump to be rejected with a notice, index %d", s.state.CurrentIndex)
	}

	press(s, keyPress('g'))
	if isPop(press(s, specialKey(tea.KeyEscape))) {
		t.Error("esc in the jump prompt should only cancel it")
	}
	if s.jumping {
		t.Error("expected jump prompt to close")
	}
}

func TestPlayScreen_Copy(t *testing.T) {
	td := newTestDeps(t)
	s := load(t, New(td.Deps, quiz.DefaultID))

	cmd := press(s, keyPress('c'))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	press(s, cmd())

	if len(td.copied) != 1 || !strings.HasPrefix(td.copied[0], "Question: ") {
		t.Fatalf("unexpected clipboard writes: %q", td.copied)
	}
	if s.notice != "Answer copied to clipboard" {
		t.Errorf("notice = %q", s.notice)
	}

	td.copyErr = errors.New("no clipboard")
	press(s, press(s, keyPress('c'))())
	if !strings.HasPrefix(s.notice, "Copy failed") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestPlayScreen_EscGoesBack(t *testing.T) {
	td := newTestDeps(t)
	s := load(t, New(td.Deps, quiz.DefaultID))

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEscape))
	if !isPop(cmd) {
		t.Error("expected esc to pop the play screen")
	}
}

func TestPlayScreen_KeyHints(t *testing.T) {
	td := newTestDeps(t)
	s := New(td.Deps, quiz.DefaultID)
	if len(s.KeyHints()) == 0 {
		t.Error("expected hints while loading")
	}
	s = load(t, s)
	if len(s.KeyHints()) < 3 {
		t.Error("expected play hints")
	}
}

func TestAttemptDurationUsesSessionClock(t *testing.T) {
	td := newTestDeps(t)
	id := saveQuiz(t, td, "local",
		quiz.Question{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectIndices: []int{0}})
	s := load(t, New(td.Deps, id))
	s.state.StartTime = time.Now().Add(-90 * time.Second)

	selectCorrect(s)
	press(s, specialKey(tea.KeyEnter))
	press(s, press(s, specialKey(tea.KeyEnter))())

	attempts, _ := td.store.AttemptRepo().ListAttempts(context.Background(), id, "local", 0)
	if len(attempts) != 1 || attempts[0].Duration < 90*time.Second {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}
}
