package quizgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/ratelimit"
	"github.com/abhisek/quizdeck/internal/store"
)

// Pipeline runs one upload end to end: cooldown check, extraction,
// persistence, and recording the generation for the next cooldown.
type Pipeline struct {
	generator   Generator
	quizzes     store.QuizRepo
	generations store.GenerationRepo
	limiter     *ratelimit.Policy
	inflight    userLocks

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewPipeline wires a Pipeline. limiter may be nil to disable the cooldown.
func NewPipeline(gen Generator, quizzes store.QuizRepo, generations store.GenerationRepo, limiter *ratelimit.Policy) *Pipeline {
	return &Pipeline{
		generator:   gen,
		quizzes:     quizzes,
		generations: generations,
		limiter:     limiter,
		Now:         time.Now,
	}
}

// Outcome describes a stored quiz.
type Outcome struct {
	QuizID   string
	Title    string
	Count    int
	Rejected []quiz.Rejection
}

// Run generates and stores a quiz for userID. A *ratelimit.CooldownError
// is returned unwrapped; generation failures match ErrGeneration. Nothing
// is persisted and no cooldown starts unless the quiz is saved.
//
// Runs for the same user are serialized, so a second upload waits for the
// first and then sees its cooldown.
func (p *Pipeline) Run(ctx context.Context, userID string, input GenerateInput) (*Outcome, error) {
	unlock, err := p.inflight.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := p.Now()

	if p.limiter != nil {
		if err := p.limiter.Check(ctx, userID, now); err != nil {
			return nil, err
		}
	}

	result, err := p.generator.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	rec := &quiz.Record{
		OwnerID:        userID,
		Title:          quiz.ResolveTitle(input.Title, input.FileName),
		SourceFileName: input.FileName,
		Questions:      result.Questions,
		CreatedAt:      now,
	}
	id, err := p.quizzes.Save(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}

	if err := p.generations.RecordGeneration(ctx, userID, id, now); err != nil {
		if derr := p.quizzes.Delete(context.WithoutCancel(ctx), id); derr != nil {
			return nil, fmt.Errorf("record generation: %w (and removing quiz %s: %v)", err, id, derr)
		}
		return nil, fmt.Errorf("record generation: %w", err)
	}

	return &Outcome{
		QuizID:   id,
		Title:    rec.Title,
		Count:    len(result.Questions),
		Rejected: result.Rejected,
	}, nil
}

// userLocks hands out one lock per user id. Entries are dropped when no
// caller holds or waits for them.
type userLocks struct {
	mu      sync.Mutex
	entries map[string]*userLock
}

type userLock struct {
	sem  chan struct{}
	refs int
}

// lock blocks until userID's lock is free or ctx is done.
func (l *userLocks) lock(ctx context.Context, userID string) (func(), error) {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*userLock)
	}
	e, ok := l.entries[userID]
	if !ok {
		e = &userLock{sem: make(chan struct{}, 1)}
		l.entries[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	release := func() {
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, userID)
		}
		l.mu.Unlock()
	}

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			release()
		}, nil
	case <-ctx.Done():
		release()
		return nil, ctx.Err()
	}
}
