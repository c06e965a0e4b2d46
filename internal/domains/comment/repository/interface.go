package repository

import (
	"context"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/comment/model"
)

// CommentRepository is the data access contract for comments, ratings and
// the derived book aggregate. The two transactional methods keep the
// logically paired Comment/Rating records and the derived aggregate
// consistent in a single commit.
type CommentRepository interface {
	// BookExists checks the referenced book before a write.
	BookExists(ctx context.Context, bookID uuid.UUID) (bool, error)

	// HasRating checks whether a user already rated a book. This is an
	// optimization; the unique index is the correctness mechanism.
	HasRating(ctx context.Context, userID, bookID uuid.UUID) (bool, error)

	// CreateComment persists a comment without touching ratings.
	CreateComment(ctx context.Context, comment *model.Comment) error

	// CreateCommentAndRating inserts the rating, recomputes the book
	// aggregate and inserts the comment in one transaction. Returns
	// model.ErrAlreadyRated when the unique index rejects the rating.
	CreateCommentAndRating(ctx context.Context, comment *model.Comment, rating *model.Rating) error

	// GetByID fetches a comment regardless of its hidden flag.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// DeleteComment removes a comment that carried no rating.
	DeleteComment(ctx context.Context, id uuid.UUID) error

	// DeleteCommentAndRating removes the comment, the paired (user, book)
	// rating and recomputes the book aggregate in one transaction.
	DeleteCommentAndRating(ctx context.Context, commentID, userID, bookID uuid.UUID) error

	// RecomputeBookAggregate rescans all ratings of the book and persists
	// mean and count. Idempotent; safe to call redundantly.
	RecomputeBookAggregate(ctx context.Context, bookID uuid.UUID) error

	// ListVisibleByBook lists non-hidden comments for the public book
	// page, newest first, with author display names resolved.
	ListVisibleByBook(ctx context.Context, bookID uuid.UUID) ([]*model.CommentWithAuthor, error)

	// ListByUser lists all of a user's comments, hidden included, with
	// book display fields for the history view.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.CommentWithBook, error)

	// SetHidden flips the moderation flag and returns the updated comment.
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*model.Comment, error)
}
