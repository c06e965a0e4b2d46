package model

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Favorite is a (user, book) bookmark; the pair is the primary key.
type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	BookID    uuid.UUID `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFavoriteRequest is the add body.
type AddFavoriteRequest struct {
	BookID uuid.UUID `json:"bookId"`
}

func (r AddFavoriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required")),
	)
}

// Error codes
const (
	ErrCodeBookNotFound     = "FAV001"
	ErrCodeAlreadyFavorited = "FAV002"
)

// Errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrAlreadyFavorited = errors.New("book already in favorites")
)

// FavoriteError custom error type
type FavoriteError struct {
	Code    string
	Message string
	Err     error
}

func (e *FavoriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FavoriteError) Unwrap() error {
	return e.Err
}

func NewBookNotFoundError() *FavoriteError {
	return &FavoriteError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewAlreadyFavoritedError() *FavoriteError {
	return &FavoriteError{
		Code:    ErrCodeAlreadyFavorited,
		Message: "Book already in favorites",
		Err:     ErrAlreadyFavorited,
	}
}
