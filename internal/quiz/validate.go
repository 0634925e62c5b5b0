package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ValidationError describes why a question record was rejected.
type ValidationError struct {
	QuestionID int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s", e.QuestionID, e.Message)
}

// Validate checks that q is playable: non-empty text, at least two
// non-blank options, and a non-empty set of in-range correct indices.
func Validate(q Question) error {
	fail := func(msg string) error {
		return &ValidationError{QuestionID: q.ID, Message: msg}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question text is empty")
	}
	if len(q.Options) < 2 {
		return fail(fmt.Sprintf("needs at least 2 options, got %d", len(q.Options)))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %d is blank", i))
		}
	}
	if len(q.CorrectIndices) == 0 {
		return fail("correct_indices is empty")
	}
	for _, c := range q.CorrectIndices {
		if c < 0 || c >= len(q.Options) {
			return fail(fmt.Sprintf("correct index %d out of range [0,%d)", c, len(q.Options)))
		}
	}
	return nil
}

// Rejection records a question that failed validation during ingestion.
type Rejection struct {
	Position   int    `json:"position"`
	QuestionID int    `json:"question_id"`
	Reason     string `json:"reason"`
}

// Ingest splits raw questions into accepted and rejected sets.
// Accepted questions have their correct indices de-duplicated and sorted.
// Input order is preserved.
func Ingest(raw []Question) ([]Question, []Rejection) {
	accepted := make([]Question, 0, len(raw))
	var rejected []Rejection

	for pos, q := range raw {
		if err := Validate(q); err != nil {
			reason := err.Error()
			var verr *ValidationError
			if errors.As(err, &verr) {
				reason = verr.Message
			}
			rejected = append(rejected, Rejection{
				Position:   pos,
				QuestionID: q.ID,
				Reason:     reason,
			})
			continue
		}

		q.Options = slices.Clone(q.Options)
		q.CorrectIndices = lo.Uniq(q.CorrectIndices)
		slices.Sort(q.CorrectIndices)
		accepted = append(accepted, q)
	}

	return accepted, rejected
}
