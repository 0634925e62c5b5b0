package quiz

import "time"

// DefaultID identifies the built-in sample quiz available to every user.
const DefaultID = "default"

// UntitledTitle is used when neither a title nor a usable file name is given.
const UntitledTitle = "Untitled Quiz"

// Question is a single multiple-choice item.
type Question struct {
	// ID is the question number as extracted from the source document.
	ID int `json:"id"`

	// Chapter is an optional grouping label.
	Chapter string `json:"chapter,omitempty"`

	// Text is the prompt shown to the user.
	Text string `json:"question"`

	// Options holds the answer choices in display order.
	Options []string `json:"options"`

	// CorrectIndices is the set of positions in Options that are correct.
	// A question may have more than one correct option.
	CorrectIndices []int `json:"correct_indices"`

	// Explanation is shown after the user submits an answer.
	Explanation string `json:"explanation"`
}

// IsCorrectIndex reports whether position i is one of the correct options.
func (q Question) IsCorrectIndex(i int) bool {
	for _, c := range q.CorrectIndices {
		if c == i {
			return true
		}
	}
	return false
}

// Record is a stored quiz.
type Record struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Title          string     `json:"title"`
	SourceFileName string     `json:"source_file_name"`
	Questions      []Question `json:"questions"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Summary is the listing view of a Record.
type Summary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	SourceFileName string    `json:"source_file_name"`
	QuestionCount  int       `json:"question_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Summarize builds the listing view of r.
func (r *Record) Summarize() Summary {
	return Summary{
		ID:             r.ID,
		Title:          r.Title,
		SourceFileName: r.SourceFileName,
		QuestionCount:  len(r.Questions),
		CreatedAt:      r.CreatedAt,
	}
}
