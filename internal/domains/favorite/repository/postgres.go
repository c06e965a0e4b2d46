package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	bookmodel "readgrid-backend/internal/domains/book/model"
	"readgrid-backend/internal/domains/favorite/model"
)

const uniqueViolation = "23505"

type postgresFavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &postgresFavoriteRepository{pool: pool}
}

func (r *postgresFavoriteRepository) Add(ctx context.Context, favorite *model.Favorite) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, book_id, created_at)
		VALUES ($1, $2, $3)
	`,
		favorite.UserID,
		favorite.BookID,
		favorite.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *postgresFavoriteRepository) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`,
		userID, bookID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *postgresFavoriteRepository) ListBooks(ctx context.Context, userID uuid.UUID) ([]*bookmodel.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.title, b.author, b.genre, b.year, b.description,
		       b.cover_url, b.file_url, b.is_premium, b.avg_rating, b.ratings_count,
		       b.created_at, b.updated_at
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var books []*bookmodel.Book
	for rows.Next() {
		b := &bookmodel.Book{}
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Genre,
			&b.Year,
			&b.Description,
			&b.CoverURL,
			&b.FileURL,
			&b.IsPremium,
			&b.AvgRating,
			&b.RatingsCount,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	return books, nil
}

func (r *postgresFavoriteRepository) BookExists(ctx context.Context, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book: %w", err)
	}
	return exists, nil
}
