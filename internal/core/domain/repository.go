package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
	ErrUnauthorized  = errors.New("unauthorized access")
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all of a user's habits, archived included.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies an existing habit. Implementations must check the
	// version column and report ErrHabitConflict on a stale write.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit and its completions.
	Delete(ctx context.Context, id string) error

	// UpdateStreaks persists the denormalized streak counters without
	// bumping the habit version; the counters are derived data.
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}
