package play

import (
	"github.com/abhisek/quizdeck/internal/quiz"
)

// quizLoadedMsg carries the stored quiz, or the reason it could not be read.
type quizLoadedMsg struct {
	Record *quiz.Record
	Err    error
}

// attemptSavedMsg reports the result of storing a completed run.
type attemptSavedMsg struct {
	Err error
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	Err error
}
