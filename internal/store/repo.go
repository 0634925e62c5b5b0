package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// ErrNotFound is returned by updates and deletes that match no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact match when non-empty
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// QuizRepo persists generated quizzes.
type QuizRepo interface {
	// Save stores r and returns its id. An empty r.ID gets a new UUID and a
	// zero r.CreatedAt is set to now.
	Save(ctx context.Context, r *quiz.Record) (string, error)

	// FetchByID returns the quiz, or nil when it does not exist.
	FetchByID(ctx context.Context, id string) (*quiz.Record, error)

	// ListByOwner returns the owner's quizzes, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]quiz.Summary, error)

	// UpdateTitle renames a quiz. Returns ErrNotFound for unknown ids.
	UpdateTitle(ctx context.Context, id, title string) error

	// Delete removes a quiz and its attempt history. Returns ErrNotFound for
	// unknown ids.
	Delete(ctx context.Context, id string) error
}

// GenerationRepo records successful quiz generations for rate limiting.
type GenerationRepo interface {
	RecordGeneration(ctx context.Context, userID, quizID string, at time.Time) error

	// LastGeneration returns the time of the user's most recent generation.
	// ok is false when the user has never generated a quiz.
	LastGeneration(ctx context.Context, userID string) (at time.Time, ok bool, err error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage per purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil when it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// AttemptData describes one completed pass through a quiz.
type AttemptData struct {
	QuizID      string
	UserID      string
	Score       int
	Total       int
	Submissions int
	Duration    time.Duration
	CompletedAt time.Time
}

// Attempt is a stored AttemptData.
type Attempt struct {
	ID string
	AttemptData
}

// AttemptRepo stores completed quiz attempts.
type AttemptRepo interface {
	RecordAttempt(ctx context.Context, data AttemptData) (string, error)

	// ListAttempts returns the user's attempts on a quiz, newest first.
	ListAttempts(ctx context.Context, quizID, userID string, limit int) ([]Attempt, error)
}
