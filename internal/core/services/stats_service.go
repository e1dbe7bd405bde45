package services

import (
	"context"
	"time"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/streaks"
)

// StatsService drives the streak engine for the three read sides: the
// dashboard overview, per-habit analytics and the calendar heatmap. It owns
// no state and recomputes everything from the completion history per call.
type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	now            func() time.Time
}

// NewStatsService builds the stats read side. A nil now falls back to the
// UTC wall clock; tests inject a fixed clock for reproducible results.
func NewStatsService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository, now func() time.Time) *StatsService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		now:            now,
	}
}

func completionDates(completions []*domain.Completion) []time.Time {
	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	return dates
}

// Overview reports streaks, rate and today's status for every active habit.
func (s *StatsService) Overview(ctx context.Context, userID string) (*domain.Overview, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := streaks.Day(s.now())

	overview := &domain.Overview{
		Date:   today.Format("2006-01-02"),
		Habits: make([]domain.HabitOverview, 0, len(habits)),
	}

	for _, h := range habits {
		if h.IsArchived() {
			continue
		}

		completions, err := s.completionRepo.ListByHabitID(ctx, h.ID)
		if err != nil {
			return nil, err
		}

		dates := completionDates(completions)
		schedule := h.Schedule()

		result := streaks.Compute(schedule, dates, today)
		rate := streaks.CompletionRate(schedule, dates, h.CreatedAt, today)

		completedToday := false
		for _, d := range dates {
			if streaks.Day(d).Equal(today) {
				completedToday = true
				break
			}
		}
		if completedToday {
			overview.CompletedToday++
		}

		overview.TotalHabits++
		overview.Habits = append(overview.Habits, domain.HabitOverview{
			HabitID:        h.ID,
			Name:           h.Name,
			Color:          h.Color,
			Icon:           h.Icon,
			FrequencyType:  h.FrequencyType,
			CurrentStreak:  result.Current,
			LongestStreak:  result.Longest,
			CompletionRate: rate,
			CompletedToday: completedToday,
		})
	}

	return overview, nil
}

// HabitAnalytics reports streaks, rate and the three chart histograms for
// one habit. Works for archived habits too; history stays readable.
func (s *StatsService) HabitAnalytics(ctx context.Context, habitID, userID string) (*domain.HabitAnalytics, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	completions, err := s.completionRepo.ListByHabitID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	dates := completionDates(completions)
	schedule := habit.Schedule()
	today := streaks.Day(s.now())

	return &domain.HabitAnalytics{
		HabitID:        habit.ID,
		Name:           habit.Name,
		Streak:         streaks.Compute(schedule, dates, today),
		CompletionRate: streaks.CompletionRate(schedule, dates, habit.CreatedAt, today),
		Histograms:     streaks.BuildHistograms(dates, today),
	}, nil
}

// Heatmap aggregates completions per calendar date across all of a user's
// active habits. A zero range defaults to the trailing 365 days.
func (s *StatsService) Heatmap(ctx context.Context, userID string, from, to time.Time) (*domain.Heatmap, error) {
	today := streaks.Day(s.now())

	if to.IsZero() {
		to = today
	}
	to = streaks.Day(to)
	if from.IsZero() {
		from = to.AddDate(0, 0, -364)
	}
	from = streaks.Day(from)

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completions, err := s.completionRepo.ListByUserIDInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byHabit := make(map[string][]time.Time)
	for _, c := range completions {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c.Date)
	}

	series := make([]streaks.HabitSeries, 0, len(habits))
	for _, h := range habits {
		if h.IsArchived() {
			continue
		}
		series = append(series, streaks.HabitSeries{
			HabitID: h.ID,
			Name:    h.Name,
			Color:   h.Color,
			Dates:   byHabit[h.ID],
		})
	}

	return &domain.Heatmap{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Days: streaks.CalendarHeatmap(series, from, to),
	}, nil
}
