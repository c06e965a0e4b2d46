package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeCommentNotFound  = "CMT001"
	ErrCodeBookNotFound     = "CMT002"
	ErrCodeInvalidLength    = "CMT003"
	ErrCodeForbiddenContent = "CMT004"
	ErrCodeInvalidRating    = "CMT005"
	ErrCodeNoPermission     = "CMT006"
)

// Errors
var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrInvalidLength    = errors.New("invalid comment length")
	ErrForbiddenContent = errors.New("forbidden words detected")
	ErrInvalidRating    = errors.New("invalid rating")
	ErrNoPermission     = errors.New("no permission")

	// ErrAlreadyRated marks a duplicate rating insert rejected by the
	// unique index. Never surfaced to the caller: the submit flow falls
	// back to saving the comment without a rating.
	ErrAlreadyRated = errors.New("user already rated this book")
)

// CommentError custom error type
type CommentError struct {
	Code    string
	Message string
	Err     error
}

func (e *CommentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CommentError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewCommentNotFoundError() *CommentError {
	return &CommentError{
		Code:    ErrCodeCommentNotFound,
		Message: "Comment not found",
		Err:     ErrCommentNotFound,
	}
}

func NewBookNotFoundError() *CommentError {
	return &CommentError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewInvalidLengthError() *CommentError {
	return &CommentError{
		Code:    ErrCodeInvalidLength,
		Message: fmt.Sprintf("Invalid comment length (%d-%d chars)", MinContentLength, MaxContentLength),
		Err:     ErrInvalidLength,
	}
}

func NewForbiddenContentError() *CommentError {
	return &CommentError{
		Code:    ErrCodeForbiddenContent,
		Message: "Forbidden words detected",
		Err:     ErrForbiddenContent,
	}
}

func NewInvalidRatingError() *CommentError {
	return &CommentError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("Invalid rating (%d-%d)", MinRating, MaxRating),
		Err:     ErrInvalidRating,
	}
}

func NewNoPermissionError() *CommentError {
	return &CommentError{
		Code:    ErrCodeNoPermission,
		Message: "No permission to perform this action",
		Err:     ErrNoPermission,
	}
}
