package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const generationsTable = "generations"

type generationRepo struct {
	db      *sql.DB
	dialect string
}

func (r *generationRepo) RecordGeneration(ctx context.Context, userID, quizID string, at time.Time) error {
	query, args := builder(r.dialect).Insert(generationsTable).
		Columns("user_id", "quiz_id", "created_at").
		Values(userID, quizID, at.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}

func (r *generationRepo) LastGeneration(ctx context.Context, userID string) (time.Time, bool, error) {
	b := builder(r.dialect)
	query, args := b.Select(entsql.Max("created_at")).
		From(b.Table(generationsTable)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var last sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return time.Time{}, false, fmt.Errorf("last generation: %w", err)
	}
	if !last.Valid {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(last.Int64).UTC(), true, nil
}
