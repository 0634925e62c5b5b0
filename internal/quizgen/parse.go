package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// ParseQuestions decodes a model reply. It accepts a bare JSON array of
// questions or an object wrapping them under "questions", optionally
// fenced in markdown code blocks.
func ParseQuestions(raw []byte) ([]quiz.Question, error) {
	body := stripFences(raw)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	switch body[0] {
	case '[':
		var qs []quiz.Question
		if err := json.Unmarshal(body, &qs); err != nil {
			return nil, fmt.Errorf("decode question array: %w", err)
		}
		return qs, nil
	case '{':
		var wrapped struct {
			Questions *[]quiz.Question `json:"questions"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode question object: %w", err)
		}
		if wrapped.Questions == nil {
			return nil, fmt.Errorf(`response object has no "questions" field`)
		}
		return *wrapped.Questions, nil
	default:
		return nil, fmt.Errorf("response is not JSON")
	}
}

// stripFences removes ```json and ``` markers and surrounding whitespace.
func stripFences(raw []byte) []byte {
	out := bytes.ReplaceAll(raw, []byte("```json"), nil)
	out = bytes.ReplaceAll(out, []byte("```JSON"), nil)
	out = bytes.ReplaceAll(out, []byte("```"), nil)
	return bytes.TrimSpace(out)
}
