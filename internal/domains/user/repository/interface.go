package repository

import (
	"context"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/user/model"
)

// UserRepository is the account storage contract. Lookup methods return
// model.ErrUserNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Update persists username, email, password_hash and updated_at.
	Update(ctx context.Context, user *model.User) error

	// TouchLastLogin stamps last_login_at with the current time.
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
