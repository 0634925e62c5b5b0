package quiz

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed builtin/default.json
var defaultQuizJSON []byte

// Builtin returns the sample quiz served under DefaultID.
func Builtin() (*Record, error) {
	var questions []Question
	if err := json.Unmarshal(defaultQuizJSON, &questions); err != nil {
		return nil, fmt.Errorf("parse built-in quiz: %w", err)
	}
	return &Record{
		ID:             DefaultID,
		Title:          "Go Fundamentals (sample)",
		SourceFileName: "default.json",
		Questions:      questions,
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}
