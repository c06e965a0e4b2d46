package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"readgrid-backend/internal/domains/subscription/model"
)

type postgresSubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &postgresSubscriptionRepository{pool: pool}
}

func (r *postgresSubscriptionRepository) GetStatus(ctx context.Context, userID uuid.UUID) (*model.Status, error) {
	status := &model.Status{}
	err := r.pool.QueryRow(ctx,
		`SELECT is_premium, premium_until FROM users WHERE id = $1`, userID,
	).Scan(&status.IsPremium, &status.PremiumUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get subscription status: %w", err)
	}
	return status, nil
}

func (r *postgresSubscriptionRepository) Activate(ctx context.Context, userID uuid.UUID, until time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_premium = TRUE, premium_until = $2, updated_at = NOW()
		WHERE id = $1
	`, userID, until)
	if err != nil {
		return fmt.Errorf("failed to activate premium: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresSubscriptionRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_premium = FALSE, premium_until = NULL, updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear premium: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
