package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a free-text review of a book. The rating field is a
// denormalized display copy; the Rating entity is the source of truth
// for aggregation.
type Comment struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	BookID  uuid.UUID `json:"book_id"`
	Content string    `json:"content"`
	Rating  *int      `json:"rating,omitempty"`
	Hidden  bool      `json:"hidden"`

	CreatedAt time.Time `json:"created_at"`
}

// HasRating reports whether this comment carried the author's rating.
func (c *Comment) HasRating() bool {
	return c.Rating != nil
}

// Rating is a single user's 1-5 score for a book. At most one exists per
// (user, book) pair, enforced by a unique index.
type Rating struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	BookID uuid.UUID `json:"book_id"`
	Value  int       `json:"value"`

	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment joined with its author's display name
// for public listings.
type CommentWithAuthor struct {
	Comment
	AuthorName string `json:"author_name"`
}

// CommentWithBook is a comment joined with book display fields for the
// per-user history view.
type CommentWithBook struct {
	Comment
	BookTitle    string `json:"book_title"`
	BookCoverURL string `json:"book_cover_url"`
}
