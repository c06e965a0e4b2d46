package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/book/model"
	"readgrid-backend/internal/domains/book/repository"
	usermodel "readgrid-backend/internal/domains/user/model"
	userrepo "readgrid-backend/internal/domains/user/repository"
	"readgrid-backend/pkg/cache"
	"readgrid-backend/pkg/logger"
)

const (
	bookListCacheKey = "books:list"
	bookListCacheTTL = 10 * time.Minute
)

type bookService struct {
	repo     repository.BookRepository
	userRepo userrepo.UserRepository
	cache    cache.Cache
}

func NewBookService(
	repo repository.BookRepository,
	userRepo userrepo.UserRepository,
	cacheClient cache.Cache,
) BookService {
	return &bookService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheClient,
	}
}

// =====================================================
// PUBLIC CATALOG
// =====================================================

func (s *bookService) List(ctx context.Context, req *model.ListBooksRequest) ([]*model.Book, error) {
	// Only the unfiltered listing is cached; filtered variants go
	// straight to the database.
	cacheable := req.IsUnfiltered() && s.cache != nil

	if cacheable {
		var cached []*model.Book
		if found, err := s.cache.Get(ctx, bookListCacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	books, err := s.repo.List(ctx, req.Search, req.Genre)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, bookListCacheKey, books, bookListCacheTTL); err != nil {
			logger.Error("Failed to cache book list", err)
		}
	}

	return books, nil
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (s *bookService) Download(ctx context.Context, userID, bookID uuid.UUID) (*model.DownloadResponse, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if book.IsPremium {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, usermodel.ErrUserNotFound) {
				return nil, model.NewPremiumRequiredError()
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if !user.PremiumActive(time.Now()) {
			return nil, model.NewPremiumRequiredError()
		}
	}

	return &model.DownloadResponse{
		BookID:  book.ID.String(),
		FileURL: book.FileURL,
	}, nil
}

// =====================================================
// ADMIN MANAGEMENT
// =====================================================

func (s *bookService) Create(ctx context.Context, req *model.BookRequest) (*model.Book, error) {
	exists, err := s.repo.ExistsByTitleAuthor(ctx, req.Title, req.Author)
	if err != nil {
		return nil, fmt.Errorf("failed to check book: %w", err)
	}
	if exists {
		return nil, model.NewDuplicateBookError()
	}

	now := time.Now()
	book := &model.Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Year:        req.Year,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		FileURL:     req.FileURL,
		IsPremium:   req.IsPremium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		// The unique index closes the race the pre-check leaves open.
		if errors.Is(err, model.ErrDuplicateBook) {
			return nil, model.NewDuplicateBookError()
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.invalidateList(ctx)

	logger.Info("Book created", map[string]interface{}{
		"book_id": book.ID.String(),
		"title":   book.Title,
	})

	return book, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if req.Title != book.Title || req.Author != book.Author {
		exists, err := s.repo.ExistsByTitleAuthor(ctx, req.Title, req.Author)
		if err != nil {
			return nil, fmt.Errorf("failed to check book: %w", err)
		}
		if exists {
			return nil, model.NewDuplicateBookError()
		}
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Genre = req.Genre
	book.Year = req.Year
	book.Description = req.Description
	book.CoverURL = req.CoverURL
	book.FileURL = req.FileURL
	book.IsPremium = req.IsPremium
	book.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, book); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateBook):
			return nil, model.NewDuplicateBookError()
		case errors.Is(err, model.ErrBookNotFound):
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.invalidateList(ctx)

	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return model.NewBookNotFoundError()
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.invalidateList(ctx)

	logger.Info("Book deleted", map[string]interface{}{
		"book_id": id.String(),
	})

	return nil
}

func (s *bookService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, bookListCacheKey); err != nil {
		logger.Error("Failed to invalidate book list cache", err)
	}
}
