package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"readgrid-backend/internal/domains/book/model"
)

const uniqueViolation = "23505"

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

const bookColumns = `id, title, author, genre, year, description, cover_url, file_url, is_premium, avg_rating, ratings_count, created_at, updated_at`

func scanBook(row pgx.Row) (*model.Book, error) {
	b := &model.Book{}
	err := row.Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	return b, nil
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO books (id, title, author, genre, year, description, cover_url, file_url, is_premium, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.Year,
		book.Description,
		book.CoverURL,
		book.FileURL,
		book.IsPremium,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateBook
		}
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	return scanBook(row)
}

func (r *postgresBookRepository) List(ctx context.Context, search, genre string) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (title ILIKE $%d OR author ILIKE $%d)`, len(args), len(args))
	}
	if genre != "" {
		args = append(args, genre)
		query += fmt.Sprintf(` AND genre = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	return books, nil
}

func (r *postgresBookRepository) ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND author = $2)`,
		title, author,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book: %w", err)
	}
	return exists, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE books
		SET title = $2, author = $3, genre = $4, year = $5, description = $6,
		    cover_url = $7, file_url = $8, is_premium = $9, updated_at = NOW()
		WHERE id = $1
	`,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.Year,
		book.Description,
		book.CoverURL,
		book.FileURL,
		book.IsPremium,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateBook
		}
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
