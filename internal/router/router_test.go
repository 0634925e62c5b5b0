package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/screen"
)

type keyMsg string

// fakeScreen records Init calls and the last key it received.
type fakeScreen struct {
	name    string
	inits   int
	lastKey keyMsg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(keyMsg); ok {
		s.lastKey = k
	}
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

func TestNavigation(t *testing.T) {
	tests := []struct {
		name      string
		msgs      func(home, play, history *fakeScreen) []tea.Msg
		wantDepth int
		wantTop   string
	}{
		{
			name: "push",
			msgs: func(_, play, _ *fakeScreen) []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: play}}
			},
			wantDepth: 2, wantTop: "play",
		},
		{
			name: "push then pop",
			msgs: func(_, play, _ *fakeScreen) []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: play}, PopScreenMsg{}}
			},
			wantDepth: 1, wantTop: "home",
		},
		{
			name: "pop at bottom is ignored",
			msgs: func(_, _, _ *fakeScreen) []tea.Msg {
				return []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}
			},
			wantDepth: 1, wantTop: "home",
		},
		{
			name: "replace keeps depth",
			msgs: func(_, play, history *fakeScreen) []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: play}, ReplaceScreenMsg{Screen: history}}
			},
			wantDepth: 2, wantTop: "history",
		},
		{
			name: "replace bottom",
			msgs: func(_, _, history *fakeScreen) []tea.Msg {
				return []tea.Msg{ReplaceScreenMsg{Screen: history}}
			},
			wantDepth: 1, wantTop: "history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := &fakeScreen{name: "home"}
			play := &fakeScreen{name: "play"}
			history := &fakeScreen{name: "history"}
			r := New(home)

			for _, msg := range tt.msgs(home, play, history) {
				r.Update(msg)
			}

			if r.Depth() != tt.wantDepth {
				t.Errorf("depth = %d, want %d", r.Depth(), tt.wantDepth)
			}
			if got := r.View(80, 24); got != tt.wantTop {
				t.Errorf("active = %q, want %q", got, tt.wantTop)
			}
		})
	}
}

func TestPushAndReplaceRunInit(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)
	if home.inits != 0 {
		t.Error("New must not run Init; the app does that")
	}

	play := &fakeScreen{name: "play"}
	r.Push(play)
	history := &fakeScreen{name: "history"}
	r.Replace(history)

	if play.inits != 1 || history.inits != 1 {
		t.Errorf("inits play=%d history=%d, want 1 each", play.inits, history.inits)
	}
}

func TestKeysReachOnlyActiveScreen(t *testing.T) {
	home := &fakeScreen{name: "home"}
	play := &fakeScreen{name: "play"}
	r := New(home)
	r.Push(play)

	r.Update(keyMsg("space"))
	if play.lastKey != "space" {
		t.Errorf("play got %q, want space", play.lastKey)
	}
	if home.lastKey != "" {
		t.Errorf("home should not see keys while covered, got %q", home.lastKey)
	}

	r.Pop()
	r.Update(keyMsg("enter"))
	if home.lastKey != "enter" {
		t.Errorf("home got %q after pop, want enter", home.lastKey)
	}
}
