package services

import (
	"context"
	"time"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/streaks"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/workers"
)

type CompletionService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository
	worker    *workers.StreakWorker
	now       func() time.Time
}

// NewCompletionService wires the completion use cases. A nil now falls back
// to the UTC wall clock; tests inject a fixed clock.
func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository, worker *workers.StreakWorker, now func() time.Time) *CompletionService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
		now:       now,
	}
}

// Mark records a habit as completed on a civil date and queues a streak
// refresh. Future dates are rejected; backfilling past days is allowed.
func (s *CompletionService) Mark(ctx context.Context, habitID, userID string, date time.Time) (*domain.Completion, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	if habit.IsArchived() {
		return nil, domain.ErrHabitArchived
	}

	if streaks.Day(date).After(streaks.Day(s.now())) {
		return nil, domain.ErrCompletionInFuture
	}

	completion := domain.NewCompletion(habitID, userID, date)
	if err := completion.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, completion); err != nil {
		return nil, err
	}

	s.worker.Enqueue(habitID)

	return completion, nil
}

// Unmark deletes the completion for a habit on a date and queues a streak
// refresh.
func (s *CompletionService) Unmark(ctx context.Context, habitID, userID string, date time.Time) error {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	if err := s.repo.Delete(ctx, habitID, userID, streaks.Day(date)); err != nil {
		return err
	}

	s.worker.Enqueue(habitID)

	return nil
}

// ListRange returns a habit's completions within [from, to]. A zero range
// defaults to the trailing 30 days, matching the calendar widget.
func (s *CompletionService) ListRange(ctx context.Context, habitID, userID string, from, to time.Time) ([]*domain.Completion, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	if to.IsZero() {
		to = streaks.Day(s.now())
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -29)
	}

	return s.repo.ListByHabitIDInRange(ctx, habitID, streaks.Day(from), streaks.Day(to))
}
