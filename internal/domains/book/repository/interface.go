package repository

import (
	"context"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/book/model"
)

// BookRepository is the catalog storage contract. Create and Update
// return model.ErrDuplicateBook when the (title, author) pair is taken.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns books newest first, optionally filtered by a
	// title/author substring search and an exact genre.
	List(ctx context.Context, search, genre string) ([]*model.Book, error)

	ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error)

	// Update persists the catalog fields, never the derived rating
	// aggregate.
	Update(ctx context.Context, book *model.Book) error

	Delete(ctx context.Context, id uuid.UUID) error
}
