package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/comment/model"
	"readgrid-backend/internal/domains/comment/repository"
	"readgrid-backend/pkg/cache"
	"readgrid-backend/pkg/logger"
)

const commentCacheTTL = 5 * time.Minute

type commentService struct {
	repo  repository.CommentRepository
	cache cache.Cache
}

func NewCommentService(repo repository.CommentRepository, cacheClient cache.Cache) CommentService {
	return &commentService{
		repo:  repo,
		cache: cacheClient,
	}
}

func bookCommentsCacheKey(bookID uuid.UUID) string {
	return fmt.Sprintf("comments:book:%s", bookID)
}

// =====================================================
// SUBMIT
// =====================================================

func (s *commentService) SubmitComment(
	ctx context.Context,
	userID uuid.UUID,
	username string,
	req *model.SubmitCommentRequest,
) (*model.CommentResponse, error) {
	content := model.CleanContent(req.CommentText)
	length := utf8.RuneCountInString(content)
	if length < model.MinContentLength || length > model.MaxContentLength {
		return nil, model.NewInvalidLengthError()
	}
	if model.ContainsBannedWord(content) {
		return nil, model.NewForbiddenContentError()
	}

	exists, err := s.repo.BookExists(ctx, req.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return nil, model.NewBookNotFoundError()
	}

	var rating *model.Rating
	if req.Rating != nil {
		rated, err := s.repo.HasRating(ctx, userID, req.BookID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing rating: %w", err)
		}
		// First rating wins. A later rating is dropped without error and
		// without validation, and only the comment text is kept.
		if !rated {
			if *req.Rating < model.MinRating || *req.Rating > model.MaxRating {
				return nil, model.NewInvalidRatingError()
			}
			rating = &model.Rating{
				ID:        uuid.New(),
				UserID:    userID,
				BookID:    req.BookID,
				Value:     *req.Rating,
				CreatedAt: time.Now(),
			}
		}
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    req.BookID,
		Content:   content,
		Hidden:    false,
		CreatedAt: time.Now(),
	}

	if rating != nil {
		comment.Rating = &rating.Value
		err = s.repo.CreateCommentAndRating(ctx, comment, rating)
		if errors.Is(err, model.ErrAlreadyRated) {
			// A concurrent submit got the rating in first. Fall back to
			// the unrated path, same as the pre-check.
			comment.Rating = nil
			err = s.repo.CreateComment(ctx, comment)
		}
	} else {
		err = s.repo.CreateComment(ctx, comment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.invalidateBookComments(ctx, req.BookID)

	logger.Info("Comment submitted", map[string]interface{}{
		"comment_id": comment.ID.String(),
		"book_id":    comment.BookID.String(),
		"rated":      comment.HasRating(),
	})

	return toCommentResponse(comment, userID, username), nil
}

// =====================================================
// DELETE
// =====================================================

func (s *commentService) DeleteComment(
	ctx context.Context,
	actorID uuid.UUID,
	isAdmin bool,
	commentID uuid.UUID,
) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return model.NewCommentNotFoundError()
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if !isAdmin && comment.UserID != actorID {
		return model.NewNoPermissionError()
	}

	// Capture before the row goes away: the rating cleanup and aggregate
	// repair key off the comment's book and rating flag.
	bookID := comment.BookID
	hadRating := comment.HasRating()

	if hadRating {
		err = s.repo.DeleteCommentAndRating(ctx, commentID, comment.UserID, bookID)
	} else {
		err = s.repo.DeleteComment(ctx, commentID)
	}
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return model.NewCommentNotFoundError()
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.invalidateBookComments(ctx, bookID)

	logger.Info("Comment deleted", map[string]interface{}{
		"comment_id": commentID.String(),
		"book_id":    bookID.String(),
		"had_rating": hadRating,
	})

	return nil
}

// =====================================================
// MODERATION
// =====================================================

func (s *commentService) SetHidden(
	ctx context.Context,
	commentID uuid.UUID,
	hidden bool,
) (*model.CommentResponse, error) {
	comment, err := s.repo.SetHidden(ctx, commentID, hidden)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return nil, model.NewCommentNotFoundError()
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.invalidateBookComments(ctx, comment.BookID)

	return toCommentResponse(comment, comment.UserID, ""), nil
}

// =====================================================
// LISTINGS
// =====================================================

func (s *commentService) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.CommentResponse, error) {
	cacheKey := bookCommentsCacheKey(bookID)

	if s.cache != nil {
		var cached []*model.CommentResponse
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	exists, err := s.repo.BookExists(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return nil, model.NewBookNotFoundError()
	}

	rows, err := s.repo.ListVisibleByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]*model.CommentResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toCommentResponse(&row.Comment, row.UserID, row.AuthorName))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, responses, commentCacheTTL); err != nil {
			logger.Error("Failed to cache book comments", err)
		}
	}

	return responses, nil
}

func (s *commentService) ListByUser(
	ctx context.Context,
	actorID uuid.UUID,
	isAdmin bool,
	targetUserID uuid.UUID,
) ([]*model.UserCommentResponse, error) {
	if !isAdmin && actorID != targetUserID {
		return nil, model.NewNoPermissionError()
	}

	rows, err := s.repo.ListByUser(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user comments: %w", err)
	}

	responses := make([]*model.UserCommentResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, &model.UserCommentResponse{
			ID:           row.ID,
			BookID:       row.BookID,
			BookTitle:    row.BookTitle,
			BookCoverURL: row.BookCoverURL,
			Content:      row.Content,
			Rating:       row.Rating,
			Hidden:       row.Hidden,
			CreatedAt:    row.CreatedAt,
		})
	}

	return responses, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *commentService) invalidateBookComments(ctx context.Context, bookID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, bookCommentsCacheKey(bookID)); err != nil {
		logger.Error("Failed to invalidate comment cache", err)
	}
}

func toCommentResponse(comment *model.Comment, authorID uuid.UUID, authorName string) *model.CommentResponse {
	return &model.CommentResponse{
		ID:      comment.ID,
		BookID:  comment.BookID,
		Content: comment.Content,
		Rating:  comment.Rating,
		Hidden:  comment.Hidden,
		Author: model.AuthorInfo{
			ID:       authorID,
			Username: authorName,
		},
		CreatedAt: comment.CreatedAt,
	}
}
