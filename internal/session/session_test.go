package session

import (
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/quizdeck/internal/quiz"
)

func testQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: 1, Text: "Single", Options: []string{"a", "b", "c"}, CorrectIndices: []int{1}, Explanation: "b"},
		{ID: 2, Text: "Multi", Options: []string{"a", "b", "c", "d"}, CorrectIndices: []int{0, 2}, Explanation: "a and c"},
		{ID: 3, Text: "Last", Options: []string{"x", "y"}, CorrectIndices: []int{0}, Explanation: "x"},
	}
}

func testState(t *testing.T) *SessionState {
	t.Helper()
	state, err := NewSessionState("test-session", "quiz-1", testQuestions())
	if err != nil {
		t.Fatalf("NewSessionState: %v", err)
	}
	return state
}

func TestNewSessionState_Empty(t *testing.T) {
	_, err := NewSessionState("s", "q", nil)
	if !errors.Is(err, ErrEmptyQuestionSet) {
		t.Fatalf("err = %v, want ErrEmptyQuestionSet", err)
	}
}

func TestNewSessionState_Initial(t *testing.T) {
	state := testState(t)
	if CurrentPhase(state) != PhaseInProgress {
		t.Errorf("phase = %v, want in_progress", CurrentPhase(state))
	}
	if state.CurrentIndex != 0 || state.Score != 0 {
		t.Errorf("index/score = %d/%d, want 0/0", state.CurrentIndex, state.Score)
	}
	if q := CurrentQuestion(state); q == nil || q.ID != 1 {
		t.Errorf("current question = %+v, want ID 1", q)
	}
}

func TestToggleOption(t *testing.T) {
	state := testState(t)

	ToggleOption(state, 0)
	ToggleOption(state, 2)
	if got := SelectedOptions(state); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("selected = %v, want [0 2]", got)
	}

	ToggleOption(state, 0)
	if got := SelectedOptions(state); !slices.Equal(got, []int{2}) {
		t.Errorf("selected = %v, want [2]", got)
	}
	if state.Score != 0 || state.Answered {
		t.Error("toggle must not score or answer")
	}
}

func TestToggleOption_TwiceRestores(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 1)
	before := SelectedOptions(state)
	ToggleOption(state, 2)
	ToggleOption(state, 2)
	if got := SelectedOptions(state); !slices.Equal(got, before) {
		t.Errorf("selected = %v, want %v", got, before)
	}
}

func TestToggleOption_OutOfRangeIgnored(t *testing.T) {
	state := testState(t)
	if ToggleOption(state, 3) || ToggleOption(state, -1) {
		t.Error("expected out-of-range toggles to be ignored")
	}
	if len(state.Selected) != 0 {
		t.Errorf("selected = %v, want empty", SelectedOptions(state))
	}
}

func TestSubmit_EmptySelectionIsNoop(t *testing.T) {
	state := testState(t)
	if Submit(state) {
		t.Error("expected submit with empty selection to be ignored")
	}
	if CurrentPhase(state) != PhaseInProgress || state.Submissions != 0 {
		t.Error("state changed on empty submit")
	}
}

func TestSubmit_Correct(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 1)
	if !Submit(state) {
		t.Fatal("expected submit to apply")
	}
	if CurrentPhase(state) != PhaseAnswered {
		t.Errorf("phase = %v, want answered", CurrentPhase(state))
	}
	if !state.Correct || state.Score != 1 {
		t.Errorf("correct/score = %v/%d, want true/1", state.Correct, state.Score)
	}
}

func TestSubmit_NoPartialCredit(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		correct  bool
	}{
		{"subset", []int{0}, false},
		{"superset", []int{0, 1, 2}, false},
		{"disjoint", []int{1, 3}, false},
		{"exact", []int{2, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := testState(t)
			JumpTo(state, 1)
			for _, i := range tt.selected {
				ToggleOption(state, i)
			}
			Submit(state)
			if state.Correct != tt.correct {
				t.Errorf("correct = %v, want %v", state.Correct, tt.correct)
			}
			wantScore := 0
			if tt.correct {
				wantScore = 1
			}
			if state.Score != wantScore {
				t.Errorf("score = %d, want %d", state.Score, wantScore)
			}
		})
	}
}

func TestAnswered_RejectsToggleAndSubmit(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 1)
	Submit(state)

	if ToggleOption(state, 0) {
		t.Error("toggle should be ignored once answered")
	}
	if Submit(state) {
		t.Error("second submit should be ignored")
	}
	if state.Score != 1 || state.Submissions != 1 {
		t.Errorf("score/submissions = %d/%d, want 1/1", state.Score, state.Submissions)
	}
}

func TestNext_RequiresAnswered(t *testing.T) {
	state := testState(t)
	if Next(state) {
		t.Error("next should be ignored while in progress")
	}
	if state.CurrentIndex != 0 {
		t.Errorf("index = %d, want 0", state.CurrentIndex)
	}
}

func TestNext_AdvancesAndClears(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 0)
	Submit(state)
	Next(state)

	if state.CurrentIndex != 1 {
		t.Errorf("index = %d, want 1", state.CurrentIndex)
	}
	if len(state.Selected) != 0 || state.Answered || state.Correct {
		t.Error("per-question state not cleared")
	}
	if CurrentPhase(state) != PhaseInProgress {
		t.Errorf("phase = %v, want in_progress", CurrentPhase(state))
	}
}

func TestNext_LastCompletes(t *testing.T) {
	state := testState(t)
	JumpTo(state, 2)
	ToggleOption(state, 0)
	Submit(state)
	Next(state)

	if CurrentPhase(state) != PhaseCompleted {
		t.Fatalf("phase = %v, want completed", CurrentPhase(state))
	}
	if CurrentQuestion(state) != nil {
		t.Error("expected no current question when completed")
	}
	if state.EndTime.IsZero() {
		t.Error("expected EndTime to be set")
	}
}

func TestCompleted_OnlyRestartApplies(t *testing.T) {
	state := testState(t)
	JumpTo(state, 2)
	ToggleOption(state, 0)
	Submit(state)
	Next(state)

	if ToggleOption(state, 0) || Submit(state) || Next(state) || JumpTo(state, 0) {
		t.Error("expected all non-restart operations to be ignored when completed")
	}
	if !Restart(state) {
		t.Fatal("restart should apply")
	}
	if CurrentPhase(state) != PhaseInProgress || state.CurrentIndex != 0 || state.Score != 0 {
		t.Errorf("after restart: phase=%v index=%d score=%d", CurrentPhase(state), state.CurrentIndex, state.Score)
	}
}

func TestJumpTo(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 1)
	Submit(state)

	if !JumpTo(state, 2) {
		t.Fatal("jump from answered should apply")
	}
	if state.CurrentIndex != 2 || state.Answered || len(state.Selected) != 0 {
		t.Errorf("unexpected state after jump: index=%d answered=%v", state.CurrentIndex, state.Answered)
	}
	if state.Score != 1 {
		t.Errorf("score = %d, want 1 (unchanged)", state.Score)
	}
}

func TestJumpTo_OutOfRange(t *testing.T) {
	state := testState(t)
	if JumpTo(state, 3) || JumpTo(state, -1) {
		t.Error("out-of-range jumps should be ignored")
	}
	if state.CurrentIndex != 0 {
		t.Errorf("index = %d, want 0", state.CurrentIndex)
	}
}

func TestJumpTo_ResubmissionScoresAgain(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 1)
	Submit(state)
	JumpTo(state, 0)
	ToggleOption(state, 1)
	Submit(state)

	if state.Score != 2 {
		t.Errorf("score = %d, want 2", state.Score)
	}
	if state.Submissions != 2 {
		t.Errorf("submissions = %d, want 2", state.Submissions)
	}
}

func TestRestart_KeepsOrder(t *testing.T) {
	state := testState(t)
	order := make([]string, len(state.Questions))
	for i, q := range state.Questions {
		order[i] = q.Text
	}
	ToggleOption(state, 1)
	Submit(state)
	Next(state)
	Restart(state)

	for i, q := range state.Questions {
		if q.Text != order[i] {
			t.Errorf("question %d = %q, want %q", i, q.Text, order[i])
		}
	}
	if len(state.Results) != 0 || state.Submissions != 0 {
		t.Error("run statistics not reset")
	}
}

func TestFullRun_AllCorrect(t *testing.T) {
	state := testState(t)
	for _, q := range state.Questions {
		for _, c := range q.CorrectIndices {
			ToggleOption(state, c)
		}
		Submit(state)
		Next(state)
	}

	if !state.Completed {
		t.Fatal("expected completed")
	}
	sum := BuildSummary(state)
	if sum.Score != 3 || sum.Total != 3 || sum.Percent != 100 || !sum.Perfect {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Message() != "Perfect Score!" {
		t.Errorf("message = %q", sum.Message())
	}
}

func TestBuildSummary_Rounding(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 1)
	Submit(state)
	Next(state)
	ToggleOption(state, 1)
	Submit(state)
	Next(state)
	ToggleOption(state, 1)
	Submit(state)
	Next(state)

	sum := BuildSummary(state)
	if sum.Score != 1 || sum.Percent != 33 || sum.Perfect {
		t.Errorf("summary = %+v, want 1/3 33%% not perfect", sum)
	}
	if sum.Attempted != 3 {
		t.Errorf("attempted = %d, want 3", sum.Attempted)
	}
	if sum.Message() != "Great job! Keep learning." {
		t.Errorf("message = %q", sum.Message())
	}
}

func TestIsExactMatch(t *testing.T) {
	tests := []struct {
		sel, correct []int
		want         bool
	}{
		{[]int{1}, []int{1}, true},
		{[]int{2, 0}, []int{0, 2}, true},
		{[]int{0, 0}, []int{0}, true},
		{[]int{0}, []int{0, 2}, false},
		{nil, []int{0}, false},
	}
	for _, tt := range tests {
		if got := IsExactMatch(tt.sel, tt.correct); got != tt.want {
			t.Errorf("IsExactMatch(%v, %v) = %v, want %v", tt.sel, tt.correct, got, tt.want)
		}
	}
}

func TestSingleQuestionSet(t *testing.T) {
	state, err := NewSessionState("s", "q", testQuestions()[:1])
	if err != nil {
		t.Fatal(err)
	}
	ToggleOption(state, 1)
	Submit(state)
	Next(state)
	if !state.Completed {
		t.Error("expected single-question session to complete after one next")
	}
}

func TestSnapshot(t *testing.T) {
	state := testState(t)
	ToggleOption(state, 2)
	ToggleOption(state, 0)

	v := Snapshot(state)
	if v.Phase != "in_progress" || !slices.Equal(v.Selected, []int{0, 2}) {
		t.Errorf("view = %+v", v)
	}
	if v.Question == nil || v.Question.CorrectIndices != nil || v.Question.Explanation != "" {
		t.Errorf("answer revealed before submit: %+v", v.Question)
	}

	Submit(state)
	v = Snapshot(state)
	if v.Question.Explanation != "b" || !slices.Equal(v.Question.CorrectIndices, []int{1}) {
		t.Errorf("answer not revealed after submit: %+v", v.Question)
	}
	if v.Marks[0] != MarkIncorrect || v.Marks[1] != MarkUnanswered {
		t.Errorf("marks = %v", v.Marks)
	}
}
