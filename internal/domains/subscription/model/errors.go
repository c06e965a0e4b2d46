package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNoActiveSubscription = "SUB001"
	ErrCodeInvalidPlan          = "SUB002"
	ErrCodeInvalidSignature     = "SUB003"
	ErrCodeUserNotFound         = "SUB004"
)

// Errors
var (
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrInvalidSignature     = errors.New("invalid callback signature")
	ErrUserNotFound         = errors.New("user not found")
)

// SubscriptionError custom error type
type SubscriptionError struct {
	Code    string
	Message string
	Err     error
}

func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNoActiveSubscriptionError() *SubscriptionError {
	return &SubscriptionError{
		Code:    ErrCodeNoActiveSubscription,
		Message: "No active subscription to cancel",
		Err:     ErrNoActiveSubscription,
	}
}

func NewInvalidPlanError() *SubscriptionError {
	return &SubscriptionError{
		Code:    ErrCodeInvalidPlan,
		Message: "Plan must be monthly or yearly",
		Err:     ErrInvalidPlan,
	}
}

func NewInvalidSignatureError() *SubscriptionError {
	return &SubscriptionError{
		Code:    ErrCodeInvalidSignature,
		Message: "Invalid callback signature",
		Err:     ErrInvalidSignature,
	}
}

func NewUserNotFoundError() *SubscriptionError {
	return &SubscriptionError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}
