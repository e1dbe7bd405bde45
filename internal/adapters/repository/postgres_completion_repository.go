package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}

	query := `
		INSERT INTO completions (
			id, habit_id, user_id, completed_on, created_at
		) VALUES (
			:id, :habit_id, :user_id, :completed_on, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, completion)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			// 23505: the (habit_id, completed_on) uniqueness index.
			if pqErr.Code == "23505" {
				return domain.ErrCompletionExists
			}
			if pqErr.Code == "23503" {
				return domain.ErrHabitNotFound
			}
		}
		return err
	}
	return nil
}

func (r *PostgresCompletionRepository) Delete(ctx context.Context, habitID, userID string, date time.Time) error {
	query := `
		DELETE FROM completions
		WHERE habit_id = $1
		  AND user_id = $2
		  AND completed_on = $3`

	result, err := r.db.ExecContext(ctx, query, habitID, userID, date)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompletionNotFound
	}

	return nil
}

func (r *PostgresCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT * FROM completions
		WHERE habit_id = $1
		ORDER BY completed_on DESC`

	if err := r.db.SelectContext(ctx, &completions, query, habitID); err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *PostgresCompletionRepository) ListByHabitIDInRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT * FROM completions
		WHERE habit_id = $1
		  AND completed_on >= $2
		  AND completed_on <= $3
		ORDER BY completed_on DESC`

	if err := r.db.SelectContext(ctx, &completions, query, habitID, from, to); err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *PostgresCompletionRepository) ListByUserIDInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT * FROM completions
		WHERE user_id = $1
		  AND completed_on >= $2
		  AND completed_on <= $3
		ORDER BY completed_on DESC`

	if err := r.db.SelectContext(ctx, &completions, query, userID, from, to); err != nil {
		return nil, err
	}
	return completions, nil
}
