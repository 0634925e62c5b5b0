package session

import "github.com/abhisek/quizdeck/internal/quiz"

// ResultMark is the navigation status of one question.
type ResultMark string

const (
	MarkUnanswered ResultMark = "unanswered"
	MarkCorrect    ResultMark = "correct"
	MarkIncorrect  ResultMark = "incorrect"
)

// QuestionView is the client-facing form of the current question.
// CorrectIndices and Explanation are only filled once the question is answered.
type QuestionView struct {
	ID             int      `json:"id"`
	Chapter        string   `json:"chapter,omitempty"`
	Text           string   `json:"question"`
	Options        []string `json:"options"`
	CorrectIndices []int    `json:"correct_indices,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
}

// View is a read-only snapshot of a session.
type View struct {
	SessionID    string          `json:"session_id"`
	QuizID       string          `json:"quiz_id"`
	Phase        string          `json:"phase"`
	CurrentIndex int             `json:"current_index"`
	Total        int             `json:"total"`
	Score        int             `json:"score"`
	Selected     []int           `json:"selected"`
	Answered     bool            `json:"answered"`
	Correct      bool            `json:"correct"`
	Completed    bool            `json:"completed"`
	Question     *QuestionView   `json:"question,omitempty"`
	Marks        []ResultMark    `json:"marks"`
	Summary      *SessionSummary `json:"summary,omitempty"`
}

// Snapshot copies state into a View.
func Snapshot(state *SessionState) View {
	v := View{
		SessionID:    state.SessionID,
		QuizID:       state.QuizID,
		Phase:        CurrentPhase(state).String(),
		CurrentIndex: state.CurrentIndex,
		Total:        len(state.Questions),
		Score:        state.Score,
		Selected:     SelectedOptions(state),
		Answered:     state.Answered,
		Correct:      state.Correct,
		Completed:    state.Completed,
		Marks:        Marks(state),
	}

	if q := CurrentQuestion(state); q != nil {
		v.Question = questionView(*q, state.Answered)
	}
	if state.Completed {
		v.Summary = BuildSummary(state)
	}
	return v
}

// Marks returns the navigation status of every question in order.
func Marks(state *SessionState) []ResultMark {
	out := make([]ResultMark, len(state.Questions))
	for i := range state.Questions {
		correct, ok := state.Results[i]
		switch {
		case !ok:
			out[i] = MarkUnanswered
		case correct:
			out[i] = MarkCorrect
		default:
			out[i] = MarkIncorrect
		}
	}
	return out
}

func questionView(q quiz.Question, reveal bool) *QuestionView {
	qv := &QuestionView{
		ID:      q.ID,
		Chapter: q.Chapter,
		Text:    q.Text,
		Options: q.Options,
	}
	if reveal {
		qv.CorrectIndices = q.CorrectIndices
		qv.Explanation = q.Explanation
	}
	return qv
}
