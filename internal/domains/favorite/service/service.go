package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "readgrid-backend/internal/domains/book/model"
	"readgrid-backend/internal/domains/favorite/model"
	"readgrid-backend/internal/domains/favorite/repository"
)

// FavoriteService manages a user's bookmarked books.
type FavoriteService interface {
	// Add bookmarks a book; adding twice is a conflict.
	Add(ctx context.Context, userID, bookID uuid.UUID) error

	// Remove is idempotent: removing an absent bookmark succeeds.
	Remove(ctx context.Context, userID, bookID uuid.UUID) error

	List(ctx context.Context, userID uuid.UUID) ([]*bookmodel.Book, error)
}

type favoriteService struct {
	repo repository.FavoriteRepository
}

func NewFavoriteService(repo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{repo: repo}
}

func (s *favoriteService) Add(ctx context.Context, userID, bookID uuid.UUID) error {
	exists, err := s.repo.BookExists(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return model.NewBookNotFoundError()
	}

	err = s.repo.Add(ctx, &model.Favorite{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyFavorited) {
			return model.NewAlreadyFavoritedError()
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	if err := s.repo.Remove(ctx, userID, bookID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]*bookmodel.Book, error) {
	books, err := s.repo.ListBooks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return books, nil
}
