package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCompletionNotFound = errors.New("completion not found")
	ErrCompletionExists   = errors.New("habit already completed on that date")
)

type CompletionRepository interface {
	// Create persists a completion. At most one completion may exist per
	// habit per date; a second insert reports ErrCompletionExists.
	Create(ctx context.Context, completion *Completion) error

	// Delete removes the completion for a habit on a specific date. The
	// userID guards against deleting another user's record.
	Delete(ctx context.Context, habitID, userID string, date time.Time) error

	// ListByHabitID retrieves a habit's full completion history, newest
	// first. Streak computation needs the whole history, not a window.
	ListByHabitID(ctx context.Context, habitID string) ([]*Completion, error)

	// ListByHabitIDInRange retrieves a habit's completions within
	// [from, to], newest first. Used by calendar views.
	ListByHabitIDInRange(ctx context.Context, habitID string, from, to time.Time) ([]*Completion, error)

	// ListByUserIDInRange retrieves all of a user's completions across
	// habits within [from, to]. Used by the heatmap aggregation.
	ListByUserIDInRange(ctx context.Context, userID string, from, to time.Time) ([]*Completion, error)
}
