package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const attemptsTable = "attempts"

type attemptRepo struct {
	db      *sql.DB
	dialect string
}

func (r *attemptRepo) RecordAttempt(ctx context.Context, data AttemptData) (string, error) {
	id := uuid.NewString()
	if data.CompletedAt.IsZero() {
		data.CompletedAt = time.Now()
	}

	query, args := builder(r.dialect).Insert(attemptsTable).
		Columns("id", "quiz_id", "user_id", "score", "total", "submissions", "duration_ms", "completed_at").
		Values(id, data.QuizID, data.UserID, data.Score, data.Total, data.Submissions,
			data.Duration.Milliseconds(), data.CompletedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("record attempt: %w", err)
	}
	return id, nil
}

func (r *attemptRepo) ListAttempts(ctx context.Context, quizID, userID string, limit int) ([]Attempt, error) {
	b := builder(r.dialect)
	sel := b.Select("id", "quiz_id", "user_id", "score", "total", "submissions", "duration_ms", "completed_at").
		From(b.Table(attemptsTable)).
		Where(entsql.And(entsql.EQ("quiz_id", quizID), entsql.EQ("user_id", userID))).
		OrderBy(entsql.Desc("completed_at"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	out := []Attempt{}
	for rows.Next() {
		var (
			a                     Attempt
			durationMs, completed int64
		)
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Score, &a.Total, &a.Submissions, &durationMs, &completed); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Duration = time.Duration(durationMs) * time.Millisecond
		a.CompletedAt = time.UnixMilli(completed).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
