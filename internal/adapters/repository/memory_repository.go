package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
)

// In-memory adapters backing unit tests and local development. They hold
// the same contracts as the Postgres adapters, including the one-completion-
// per-day uniqueness rule.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[habit.ID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	habit.Version = existing.Version + 1
	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}

	habit.CurrentStreak = current
	habit.LongestStreak = longest
	return nil
}

type InMemoryCompletionRepository struct {
	store map[string]*domain.Completion // keyed habitID + date

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]*domain.Completion),
	}
}

func completionKey(habitID string, date time.Time) string {
	return habitID + "|" + date.Format("2006-01-02")
}

func (r *InMemoryCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey(completion.HabitID, completion.Date)
	if _, exists := r.store[key]; exists {
		return domain.ErrCompletionExists
	}

	clone := *completion
	r.store[key] = &clone
	return nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, habitID, userID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey(habitID, date)
	c, ok := r.store[key]
	if !ok || c.UserID != userID {
		return domain.ErrCompletionNotFound
	}

	delete(r.store, key)
	return nil
}

func (r *InMemoryCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []*domain.Completion
	for _, c := range r.store {
		if c.HabitID == habitID {
			clone := *c
			completions = append(completions, &clone)
		}
	}

	sortNewestFirst(completions)
	return completions, nil
}

func (r *InMemoryCompletionRepository) ListByHabitIDInRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []*domain.Completion
	for _, c := range r.store {
		if c.HabitID == habitID && !c.Date.Before(from) && !c.Date.After(to) {
			clone := *c
			completions = append(completions, &clone)
		}
	}

	sortNewestFirst(completions)
	return completions, nil
}

func (r *InMemoryCompletionRepository) ListByUserIDInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []*domain.Completion
	for _, c := range r.store {
		if c.UserID == userID && !c.Date.Before(from) && !c.Date.After(to) {
			clone := *c
			completions = append(completions, &clone)
		}
	}

	sortNewestFirst(completions)
	return completions, nil
}

func sortNewestFirst(completions []*domain.Completion) {
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].Date.After(completions[j].Date)
	})
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
