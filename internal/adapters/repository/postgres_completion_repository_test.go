package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
)

func seedHabitRow(t *testing.T, db *sqlx.DB, repo *PostgresHabitRepository, userID, name string) *domain.Habit {
	t.Helper()

	habit, err := domain.NewHabit(userID, name, "", "", "", domain.FreqDaily, 0, 0, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), habit))
	return habit
}

func TestPostgresCompletionRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	habitRepo := NewPostgresHabitRepository(db)
	repo := NewPostgresCompletionRepository(db)
	ctx := context.Background()

	userID := "completion-repo-user-1"
	seedUser(t, db, userID, "completion-test@baseline.app")
	habit := seedHabitRow(t, db, habitRepo, userID, "Stretch")

	today := time.Now().UTC().Truncate(24 * time.Hour)

	t.Run("Create Completion", func(t *testing.T) {
		c := domain.NewCompletion(habit.ID, userID, today)
		err := repo.Create(ctx, c)
		assert.NoError(t, err)
		assert.NotEmpty(t, c.ID)
	})

	t.Run("Duplicate day violates uniqueness", func(t *testing.T) {
		c := domain.NewCompletion(habit.ID, userID, today)
		err := repo.Create(ctx, c)
		assert.ErrorIs(t, err, domain.ErrCompletionExists)
	})

	t.Run("Unknown habit violates the foreign key", func(t *testing.T) {
		c := domain.NewCompletion(uuid.NewString(), userID, today)
		err := repo.Create(ctx, c)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("List By HabitID newest first", func(t *testing.T) {
		c := domain.NewCompletion(habit.ID, userID, today.AddDate(0, 0, -1))
		require.NoError(t, repo.Create(ctx, c))

		list, err := repo.ListByHabitID(ctx, habit.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.True(t, list[0].Date.After(list[1].Date))
	})

	t.Run("Range queries are inclusive", func(t *testing.T) {
		list, err := repo.ListByHabitIDInRange(ctx, habit.ID, today.AddDate(0, 0, -1), today)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = repo.ListByHabitIDInRange(ctx, habit.ID, today, today)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("List By UserID spans habits", func(t *testing.T) {
		other := seedHabitRow(t, db, habitRepo, userID, "Journal")
		c := domain.NewCompletion(other.ID, userID, today)
		require.NoError(t, repo.Create(ctx, c))

		list, err := repo.ListByUserIDInRange(ctx, userID, today.AddDate(0, 0, -7), today)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("Delete Completion", func(t *testing.T) {
		err := repo.Delete(ctx, habit.ID, userID, today)
		assert.NoError(t, err)

		err = repo.Delete(ctx, habit.ID, userID, today)
		assert.ErrorIs(t, err, domain.ErrCompletionNotFound)
	})

	t.Run("Delete guards the owner", func(t *testing.T) {
		c := domain.NewCompletion(habit.ID, userID, today.AddDate(0, 0, -2))
		require.NoError(t, repo.Create(ctx, c))

		err := repo.Delete(ctx, habit.ID, "someone-else", today.AddDate(0, 0, -2))
		assert.ErrorIs(t, err, domain.ErrCompletionNotFound)
	})
}
