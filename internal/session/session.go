package session

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Every transition below returns true when it changed the state and false
// when it was ignored. Calls that are invalid for the current phase are
// no-ops, not errors.

// ToggleOption adds or removes index from the current selection.
// Only valid while in progress; indices outside the current question's
// options are ignored.
func ToggleOption(state *SessionState, index int) bool {
	if CurrentPhase(state) != PhaseInProgress {
		return false
	}
	q := CurrentQuestion(state)
	if q == nil || index < 0 || index >= len(q.Options) {
		return false
	}

	if state.Selected[index] {
		delete(state.Selected, index)
	} else {
		state.Selected[index] = true
	}
	return true
}

// Submit scores the current selection. The answer is correct only when the
// selected set equals the correct set exactly. An empty selection is ignored.
func Submit(state *SessionState) bool {
	if CurrentPhase(state) != PhaseInProgress || len(state.Selected) == 0 {
		return false
	}
	q := CurrentQuestion(state)
	if q == nil {
		return false
	}

	correct := IsExactMatch(SelectedOptions(state), q.CorrectIndices)
	state.Correct = correct
	state.Answered = true
	state.Submissions++
	state.Results[state.CurrentIndex] = correct
	if correct {
		state.Score++
	}
	return true
}

// Next moves past an answered question. On the last question it completes
// the session.
func Next(state *SessionState) bool {
	if CurrentPhase(state) != PhaseAnswered {
		return false
	}

	if IsLastQuestion(state) {
		state.Completed = true
		state.EndTime = time.Now()
		return true
	}

	state.CurrentIndex++
	resetQuestion(state)
	return true
}

// JumpTo moves to any question while the session is not completed.
// The score is untouched and the target question starts fresh.
func JumpTo(state *SessionState, target int) bool {
	if CurrentPhase(state) == PhaseCompleted {
		return false
	}
	if target < 0 || target >= len(state.Questions) {
		return false
	}

	state.CurrentIndex = target
	resetQuestion(state)
	return true
}

// Restart returns to the first question with a zero score. It is valid in
// every phase and keeps the current question order.
func Restart(state *SessionState) bool {
	state.CurrentIndex = 0
	state.Score = 0
	state.Completed = false
	state.Submissions = 0
	state.Results = make(map[int]bool)
	state.StartTime = time.Now()
	state.EndTime = time.Time{}
	resetQuestion(state)
	return true
}

// SelectedOptions returns the current selection in ascending order.
func SelectedOptions(state *SessionState) []int {
	out := lo.Keys(state.Selected)
	slices.Sort(out)
	return out
}

// IsExactMatch reports whether selected and correct hold the same set of
// indices. Duplicates are ignored.
func IsExactMatch(selected, correct []int) bool {
	sel := lo.Uniq(selected)
	want := lo.Uniq(correct)
	if len(sel) != len(want) {
		return false
	}
	return lo.Every(want, sel)
}

func resetQuestion(state *SessionState) {
	state.Selected = make(map[int]bool)
	state.Answered = false
	state.Correct = false
}
