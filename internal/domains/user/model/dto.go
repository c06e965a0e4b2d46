package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 72).Error("password must be 6-72 characters"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfileRequest carries a partial update. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.NilOrNotEmpty,
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty,
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty,
			validation.Length(6, 72).Error("password must be 6-72 characters"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// UserResponse is the public profile shape. PremiumActive folds the
// stored flag and premium_until into the effective entitlement.
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	IsPremium     bool       `json:"is_premium"`
	PremiumActive bool       `json:"premium_active"`
	PremiumUntil  *time.Time `json:"premium_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AuthResponse is returned by register, login, and profile updates that
// rotate the token.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToResponse converts the entity, computing entitlement at the given
// instant.
func (u *User) ToResponse(now time.Time) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		IsPremium:     u.IsPremium,
		PremiumActive: u.PremiumActive(now),
		PremiumUntil:  u.PremiumUntil,
		CreatedAt:     u.CreatedAt,
	}
}
