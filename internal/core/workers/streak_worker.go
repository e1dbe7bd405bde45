package workers

import (
	"context"
	"log"
	"time"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/streaks"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker refreshes the denormalized streak counters on habits after
// completion changes. It runs the same engine the stats endpoints use, so
// the cached counters can never drift from a fresh computation for longer
// than one queue hop.
type StreakWorker struct {
	habitRepo      HabitRepository
	completionRepo CompletionRepository
	jobs           chan StreakJob
	now            func() time.Time
}

func NewStreakWorker(hRepo HabitRepository, cRepo CompletionRepository, now func() time.Time) *StreakWorker {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &StreakWorker{
		habitRepo:      hRepo,
		completionRepo: cRepo,
		jobs:           make(chan StreakJob, 100),
		now:            now,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		log.Printf("Streak worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker error fetching habit %s: %v", job.HabitID, err)
		return
	}

	completions, err := w.completionRepo.ListByHabitID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker error fetching completions for %s: %v", job.HabitID, err)
		return
	}

	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}

	result := streaks.Compute(habit.Schedule(), dates, streaks.Day(w.now()))

	if habit.CurrentStreak == result.Current && habit.LongestStreak == result.Longest {
		return
	}

	if err := w.habitRepo.UpdateStreaks(ctx, job.HabitID, result.Current, result.Longest); err != nil {
		log.Printf("Worker failed to update streaks for %s: %v", job.HabitID, err)
		return
	}

	log.Printf("Streaks updated for %s: current=%d, longest=%d", habit.Name, result.Current, result.Longest)
}
