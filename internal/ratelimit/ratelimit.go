// Package ratelimit gates quiz generation to one success per user per
// cooldown window.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/quizdeck/internal/store"
)

// DefaultCooldown is the minimum spacing between two successful generations.
const DefaultCooldown = 10 * time.Minute

// CooldownError is returned when the user generated a quiz too recently.
type CooldownError struct {
	// Wait is the exact time left until the next generation is allowed.
	Wait time.Duration
}

// WaitMinutes is Wait rounded up to whole minutes, never less than 1.
func (e *CooldownError) WaitMinutes() int {
	m := int(math.Ceil(e.Wait.Minutes()))
	if m < 1 {
		m = 1
	}
	return m
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("Please wait %d minutes before generating another quiz.", e.WaitMinutes())
}

// Policy decides whether a user may start a generation. Only successful
// generations count; they are recorded by the caller through the same repo.
type Policy struct {
	repo     store.GenerationRepo
	cooldown time.Duration
}

// New returns a Policy backed by repo. A non-positive cooldown disables
// the gate.
func New(repo store.GenerationRepo, cooldown time.Duration) *Policy {
	return &Policy{repo: repo, cooldown: cooldown}
}

// Cooldown returns the configured window.
func (p *Policy) Cooldown() time.Duration {
	return p.cooldown
}

// Check returns *CooldownError when userID's last successful generation
// is less than one cooldown before now.
func (p *Policy) Check(ctx context.Context, userID string, now time.Time) error {
	if p.cooldown <= 0 {
		return nil
	}

	last, ok, err := p.repo.LastGeneration(ctx, userID)
	if err != nil {
		return fmt.Errorf("check cooldown: %w", err)
	}
	if !ok {
		return nil
	}

	if wait := Remaining(last, now, p.cooldown); wait > 0 {
		return &CooldownError{Wait: wait}
	}
	return nil
}

// Remaining is the time left in the window that opened at last.
// It is zero once the window has passed.
func Remaining(last, now time.Time, cooldown time.Duration) time.Duration {
	elapsed := now.Sub(last)
	if elapsed >= cooldown {
		return 0
	}
	// A clock that moved backwards still blocks for at most one window.
	if elapsed < 0 {
		return cooldown
	}
	return cooldown - elapsed
}
