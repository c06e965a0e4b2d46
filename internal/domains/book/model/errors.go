package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound    = "BOK001"
	ErrCodeDuplicateBook   = "BOK002"
	ErrCodePremiumRequired = "BOK003"
)

// Errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrDuplicateBook   = errors.New("book with this title and author already exists")
	ErrPremiumRequired = errors.New("premium subscription required")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewDuplicateBookError() *BookError {
	return &BookError{
		Code:    ErrCodeDuplicateBook,
		Message: "Book with this title and author already exists",
		Err:     ErrDuplicateBook,
	}
}

func NewPremiumRequiredError() *BookError {
	return &BookError{
		Code:    ErrCodePremiumRequired,
		Message: "Premium subscription required to download this book",
		Err:     ErrPremiumRequired,
	}
}
