package quizgen

import (
	"context"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Generator extracts multiple-choice questions from a document.
type Generator interface {
	// Generate returns the questions found in input.Document. Malformed
	// records are quarantined; an empty result is an error.
	Generate(ctx context.Context, input GenerateInput) (*Result, error)
}

// GenerateInput is one uploaded document.
type GenerateInput struct {
	// Document holds the raw file bytes.
	Document []byte

	// MIMEType is the detected type, e.g. "application/pdf".
	MIMEType string

	// FileName is the client-supplied name, used for the default title.
	FileName string

	// Title is the user-supplied title, possibly empty.
	Title string
}

// Result is the accepted output of a generation.
type Result struct {
	Questions []quiz.Question

	// Rejected lists records the model returned that could not be played.
	Rejected []quiz.Rejection
}
