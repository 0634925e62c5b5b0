package session

import (
	"math"
	"time"
)

// SessionSummary holds the data displayed on the end screen.
type SessionSummary struct {
	Score       int           `json:"score"`
	Total       int           `json:"total"`
	Percent     int           `json:"percent"`
	Perfect     bool          `json:"perfect"`
	Submissions int           `json:"submissions"`
	Attempted   int           `json:"attempted"`
	Duration    time.Duration `json:"duration_ns"`
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState) *SessionSummary {
	total := len(state.Questions)

	var percent int
	if total > 0 {
		percent = int(math.Round(float64(state.Score) / float64(total) * 100))
	}

	end := state.EndTime
	if end.IsZero() {
		end = time.Now()
	}

	return &SessionSummary{
		Score:       state.Score,
		Total:       total,
		Percent:     percent,
		Perfect:     total > 0 && state.Score == total,
		Submissions: state.Submissions,
		Attempted:   len(state.Results),
		Duration:    end.Sub(state.StartTime),
	}
}

// Message returns the closing line shown under the score.
func (s *SessionSummary) Message() string {
	if s.Perfect {
		return "Perfect Score!"
	}
	return "Great job! Keep learning."
}
