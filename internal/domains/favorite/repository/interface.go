package repository

import (
	"context"

	"github.com/google/uuid"

	bookmodel "readgrid-backend/internal/domains/book/model"
	"readgrid-backend/internal/domains/favorite/model"
)

// FavoriteRepository stores (user, book) bookmarks.
type FavoriteRepository interface {
	// Add returns model.ErrAlreadyFavorited when the pair exists.
	Add(ctx context.Context, favorite *model.Favorite) error

	// Remove is idempotent; removing an absent pair is not an error.
	Remove(ctx context.Context, userID, bookID uuid.UUID) error

	// ListBooks returns the user's favorited books, most recently
	// added first.
	ListBooks(ctx context.Context, userID uuid.UUID) ([]*bookmodel.Book, error)

	BookExists(ctx context.Context, bookID uuid.UUID) (bool, error)
}
