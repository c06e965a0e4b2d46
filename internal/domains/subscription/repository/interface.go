package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/subscription/model"
)

// SubscriptionRepository reads and writes the premium fields on the
// users table. Methods return model.ErrUserNotFound for unknown ids.
type SubscriptionRepository interface {
	GetStatus(ctx context.Context, userID uuid.UUID) (*model.Status, error)

	// Activate sets is_premium and premium_until.
	Activate(ctx context.Context, userID uuid.UUID, until time.Time) error

	// Clear unconditionally resets both premium fields.
	Clear(ctx context.Context, userID uuid.UUID) error
}
