package services

import (
	"context"
	"fmt"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID        string
	Name          string
	Description   string
	Color         string
	Icon          string
	FrequencyType string
	WeeklyTarget  int
	IntervalDays  int
	Weekdays      []int
}

type UpdateHabitInput struct {
	ID            string
	UserID        string
	Name          string
	Description   string
	Color         string
	Icon          string
	FrequencyType string
	WeeklyTarget  int
	IntervalDays  int
	Weekdays      []int
	Version       int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(
		input.UserID,
		input.Name,
		input.Description,
		input.Color,
		input.Icon,
		input.FrequencyType,
		input.WeeklyTarget,
		input.IntervalDays,
		input.Weekdays,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetByID fetches a habit and enforces ownership. A foreign habit reports
// not-found rather than forbidden so ids cannot be probed.
func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	err = habit.Update(
		input.Name,
		input.Description,
		input.Color,
		input.Icon,
		input.FrequencyType,
		input.WeeklyTarget,
		input.IntervalDays,
		input.Weekdays,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Archive(ctx context.Context, id, userID string) error {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	habit.Archive()
	return s.repo.Update(ctx, habit)
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) error {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	habit.Restore()
	return s.repo.Update(ctx, habit)
}

func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
