package service

import (
	"context"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/comment/model"
)

// CommentService covers the comment and rating flow: submission with
// moderation checks, deletion with aggregate repair, admin visibility
// toggling, and the two listing views.
type CommentService interface {
	// SubmitComment validates and stores a comment, and pairs it with a
	// rating when the user has not rated this book yet. A second rating
	// for the same book is silently dropped and the comment is saved
	// without one.
	SubmitComment(ctx context.Context, userID uuid.UUID, username string, req *model.SubmitCommentRequest) (*model.CommentResponse, error)

	// DeleteComment removes a comment. Only the author or an admin may
	// delete. When the comment carried a rating, the rating is removed
	// and the book aggregate recomputed in the same transaction.
	DeleteComment(ctx context.Context, actorID uuid.UUID, isAdmin bool, commentID uuid.UUID) error

	// SetHidden flips the moderation flag. Admin only, enforced by the
	// route middleware.
	SetHidden(ctx context.Context, commentID uuid.UUID, hidden bool) (*model.CommentResponse, error)

	// ListByBook returns the visible comments of a book, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.CommentResponse, error)

	// ListByUser returns a user's full comment history, hidden entries
	// included. Only the owner or an admin may read it.
	ListByUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, targetUserID uuid.UUID) ([]*model.UserCommentResponse, error)
}
