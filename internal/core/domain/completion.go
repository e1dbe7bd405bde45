package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/streaks"
)

var (
	ErrInvalidCompletion  = errors.New("invalid completion data")
	ErrCompletionInFuture = errors.New("completion date cannot be in the future")
)

// Completion marks one habit as done on one civil date. Completions are
// immutable: they are created or deleted, never edited.
type Completion struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	// Date is always a UTC civil date (midnight, no time-of-day).
	Date time.Time `json:"date" db:"completed_on"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewCompletion(habitID, userID string, date time.Time) *Completion {
	return &Completion{
		HabitID:   habitID,
		UserID:    userID,
		Date:      streaks.Day(date),
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if c.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}
