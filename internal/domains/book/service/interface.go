package service

import (
	"context"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/book/model"
)

// BookService covers the public catalog and admin management. Admin
// access is enforced by route middleware.
type BookService interface {
	List(ctx context.Context, req *model.ListBooksRequest) ([]*model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Download resolves the file reference. Premium books require an
	// active entitlement at call time.
	Download(ctx context.Context, userID, bookID uuid.UUID) (*model.DownloadResponse, error)

	Create(ctx context.Context, req *model.BookRequest) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
