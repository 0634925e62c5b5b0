package session

import (
	"errors"
	"time"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// ErrEmptyQuestionSet is returned when a session is started without questions.
var ErrEmptyQuestionSet = errors.New("quiz has no questions")

// SessionPhase is derived from the state flags; it is never stored.
type SessionPhase int

const (
	PhaseInProgress SessionPhase = iota // Selecting options for the current question
	PhaseAnswered                       // Submitted; feedback visible
	PhaseCompleted                      // Past the last question
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseAnswered:
		return "answered"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// SessionState tracks one user's pass through a question set.
type SessionState struct {
	// SessionID identifies this run.
	SessionID string

	// QuizID is the stored quiz the questions came from.
	QuizID string

	// Questions is fixed for the lifetime of the session.
	Questions []quiz.Question

	// CurrentIndex points into Questions.
	CurrentIndex int

	// Score counts correct submissions. It is not capped at len(Questions):
	// a question revisited through JumpTo may be scored again.
	Score int

	// Selected is the set of option indices chosen for the current question.
	Selected map[int]bool

	// Answered is true after a submission, until the user moves on.
	Answered bool

	// Correct is the result of the last submission on the current question.
	Correct bool

	// Completed is true once Next is called on the last question.
	Completed bool

	// StartTime is when the session (or the latest restart) began.
	StartTime time.Time

	// EndTime is set on completion.
	EndTime time.Time

	// Submissions counts every submit, including repeats.
	Submissions int

	// Results holds the last submission result per question index.
	Results map[int]bool
}

// NewSessionState starts a session at the first question with a zero score.
func NewSessionState(sessionID, quizID string, questions []quiz.Question) (*SessionState, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	return &SessionState{
		SessionID: sessionID,
		QuizID:    quizID,
		Questions: questions,
		Selected:  make(map[int]bool),
		Results:   make(map[int]bool),
		StartTime: time.Now(),
	}, nil
}

// CurrentPhase derives the phase from the state flags.
func CurrentPhase(state *SessionState) SessionPhase {
	switch {
	case state.Completed:
		return PhaseCompleted
	case state.Answered:
		return PhaseAnswered
	default:
		return PhaseInProgress
	}
}

// CurrentQuestion returns the question at CurrentIndex, or nil once the
// session is completed.
func CurrentQuestion(state *SessionState) *quiz.Question {
	if state.Completed || state.CurrentIndex < 0 || state.CurrentIndex >= len(state.Questions) {
		return nil
	}
	return &state.Questions[state.CurrentIndex]
}

// IsLastQuestion reports whether CurrentIndex is the final position.
func IsLastQuestion(state *SessionState) bool {
	return state.CurrentIndex == len(state.Questions)-1
}
