package service

import (
	"context"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/user/model"
)

// UserService covers registration, login, and profile management.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)

	// UpdateProfile applies a partial update and returns a fresh token,
	// since the claims embed username and email.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.AuthResponse, error)
}
