package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SubmitCommentRequest is the body of the comment submit flow. Length and
// denylist checks run in the service against the cleaned text, so only
// presence is validated here.
type SubmitCommentRequest struct {
	BookID      uuid.UUID `json:"bookId"`
	CommentText string    `json:"commentText"`
	Rating      *int      `json:"rating,omitempty"`
}

func (r SubmitCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required")),
		validation.Field(&r.CommentText, validation.Required.Error("commentText is required")),
	)
}

// ToggleHiddenRequest is the admin moderation body.
type ToggleHiddenRequest struct {
	Hidden *bool `json:"hidden"`
}

func (r ToggleHiddenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Hidden, validation.NotNil.Error("hidden is required")),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// AuthorInfo is the public author representation inside a comment.
type AuthorInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// CommentResponse is a comment as returned to clients.
type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	BookID    uuid.UUID  `json:"book_id"`
	Content   string     `json:"content"`
	Rating    *int       `json:"rating,omitempty"`
	Hidden    bool       `json:"hidden"`
	Author    AuthorInfo `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

// UserCommentResponse is a row of the per-user comment history view.
type UserCommentResponse struct {
	ID           uuid.UUID `json:"id"`
	BookID       uuid.UUID `json:"book_id"`
	BookTitle    string    `json:"book_title"`
	BookCoverURL string    `json:"book_cover_url"`
	Content      string    `json:"content"`
	Rating       *int      `json:"rating,omitempty"`
	Hidden       bool      `json:"hidden"`
	CreatedAt    time.Time `json:"created_at"`
}
