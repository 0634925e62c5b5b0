package quizgen

import (
	"errors"
	"fmt"
)

// ErrGeneration marks any failure to turn a document into a quiz.
// Match it with errors.Is; the wrapped cause is kept for logging.
var ErrGeneration = errors.New("failed to generate quiz")

// GenerationError carries a user-facing reason and the underlying cause.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrGeneration, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrGeneration, e.Reason)
}

// Is reports ErrGeneration as a match.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

func (e *GenerationError) Unwrap() error { return e.Err }

func generationError(reason string, err error) error {
	return &GenerationError{Reason: reason, Err: err}
}
