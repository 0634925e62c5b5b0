package app

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/play"
	"github.com/abhisek/quizdeck/internal/store"
)

func testOptions(t *testing.T, start string) Options {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quizdeck.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return Options{
		Deps:        play.Deps{Quizzes: st.QuizRepo(), Attempts: st.AttemptRepo(), UserID: "local"},
		StartQuizID: start,
	}
}

func TestAppModel_StartQuizPushesPlay(t *testing.T) {
	m := newAppModel(testOptions(t, quiz.DefaultID))
	if m.start == nil {
		t.Fatal("expected a start screen")
	}

	m.Update(router.PushScreenMsg{Screen: m.start})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if _, ok := m.router.Active().(*play.PlayScreen); !ok {
		t.Errorf("active = %T, want play screen", m.router.Active())
	}
}

func TestAppModel_EscReachesScreen(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	m.Update(router.PushScreenMsg{Screen: play.New(play.Deps{}, quiz.DefaultID)})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected the play screen to answer esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg from esc")
	}
}

func TestAppModel_ViewFrame(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)

	out := m.frame()
	if !strings.Contains(out, "quizdeck") {
		t.Errorf("expected header in frame:\n%s", out)
	}
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("expected home screen at the bottom of the stack")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = updated.(AppModel)
	if strings.Contains(m.frame(), "quizdeck") {
		t.Error("expected only the size warning in a tiny terminal")
	}
}
