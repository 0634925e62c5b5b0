package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/quiz"
)

const quizzesTable = "quizzes"

// quizRepo implements QuizRepo with questions stored as a JSON column.
type quizRepo struct {
	db      *sql.DB
	dialect string
}

func (r *quizRepo) Save(ctx context.Context, rec *quiz.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	questions := rec.Questions
	if questions == nil {
		questions = []quiz.Question{}
	}
	qjson, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("marshal questions: %w", err)
	}

	query, args := builder(r.dialect).Insert(quizzesTable).
		Columns("id", "owner_id", "title", "source_file_name", "questions_json", "question_count", "created_at").
		Values(rec.ID, rec.OwnerID, rec.Title, rec.SourceFileName, string(qjson), len(questions), rec.CreatedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert quiz: %w", err)
	}
	return rec.ID, nil
}

func (r *quizRepo) FetchByID(ctx context.Context, id string) (*quiz.Record, error) {
	b := builder(r.dialect)
	query, args := b.Select("id", "owner_id", "title", "source_file_name", "questions_json", "created_at").
		From(b.Table(quizzesTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		rec       quiz.Record
		qjson     string
		createdMs int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.SourceFileName, &qjson, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query quiz %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(qjson), &rec.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions for quiz %s: %w", id, err)
	}
	rec.CreatedAt = time.UnixMilli(createdMs).UTC()
	return &rec, nil
}

func (r *quizRepo) ListByOwner(ctx context.Context, ownerID string) ([]quiz.Summary, error) {
	b := builder(r.dialect)
	query, args := b.Select("id", "title", "source_file_name", "question_count", "created_at").
		From(b.Table(quizzesTable)).
		Where(entsql.EQ("owner_id", ownerID)).
		OrderBy(entsql.Desc("created_at"), entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	out := []quiz.Summary{}
	for rows.Next() {
		var (
			s         quiz.Summary
			createdMs int64
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.SourceFileName, &s.QuestionCount, &createdMs); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		s.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *quizRepo) UpdateTitle(ctx context.Context, id, title string) error {
	query, args := builder(r.dialect).Update(quizzesTable).
		Set("title", title).
		Where(entsql.EQ("id", id)).
		Query()
	return execAffecting(ctx, r.db, query, args)
}

func (r *quizRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	b := builder(r.dialect)
	query, args := b.Delete(attemptsTable).Where(entsql.EQ("quiz_id", id)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete attempts: %w", err)
	}

	query, args = b.Delete(quizzesTable).Where(entsql.EQ("id", id)).Query()
	if err := execAffecting(ctx, tx, query, args); err != nil {
		return err
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execAffecting runs query and maps zero affected rows to ErrNotFound.
func execAffecting(ctx context.Context, db execer, query string, args []any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadQuiz returns the built-in sample for quiz.DefaultID, otherwise the
// owner's quiz from repo. Quizzes belonging to someone else are reported
// as missing (nil, nil).
func LoadQuiz(ctx context.Context, repo QuizRepo, id, ownerID string) (*quiz.Record, error) {
	if id == quiz.DefaultID {
		return quiz.Builtin()
	}
	rec, err := repo.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.OwnerID != ownerID {
		return nil, nil
	}
	return rec, nil
}
