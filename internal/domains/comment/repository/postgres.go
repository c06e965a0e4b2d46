package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"readgrid-backend/internal/domains/comment/model"
	"readgrid-backend/pkg/database"
)

const uniqueViolation = "23505"

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

// =====================================================
// EXISTENCE CHECKS
// =====================================================

func (r *postgresCommentRepository) BookExists(ctx context.Context, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book: %w", err)
	}
	return exists, nil
}

func (r *postgresCommentRepository) HasRating(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ratings WHERE user_id = $1 AND book_id = $2)`,
		userID, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check rating: %w", err)
	}
	return exists, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresCommentRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, user_id, book_id, content, rating, hidden, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		comment.ID,
		comment.UserID,
		comment.BookID,
		comment.Content,
		comment.Rating,
		comment.Hidden,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) CreateCommentAndRating(
	ctx context.Context,
	comment *model.Comment,
	rating *model.Rating,
) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO ratings (id, user_id, book_id, value, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			rating.ID,
			rating.UserID,
			rating.BookID,
			rating.Value,
			rating.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				// Lost the race against a concurrent rating by the same
				// user. The caller retries without a rating.
				return model.ErrAlreadyRated
			}
			return fmt.Errorf("failed to create rating: %w", err)
		}

		if err := recomputeAggregate(ctx, tx, rating.BookID); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO comments (id, user_id, book_id, content, rating, hidden, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			comment.ID,
			comment.UserID,
			comment.BookID,
			comment.Content,
			comment.Rating,
			comment.Hidden,
			comment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
}

// =====================================================
// GET / DELETE
// =====================================================

func (r *postgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, book_id, content, rating, hidden, created_at
		FROM comments
		WHERE id = $1
	`, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.BookID,
		&comment.Content,
		&comment.Rating,
		&comment.Hidden,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (r *postgresCommentRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepository) DeleteCommentAndRating(
	ctx context.Context,
	commentID, userID, bookID uuid.UUID,
) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrCommentNotFound
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM ratings WHERE user_id = $1 AND book_id = $2`,
			userID, bookID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}

		return recomputeAggregate(ctx, tx, bookID)
	})
}

// =====================================================
// AGGREGATE RECOMPUTATION
// =====================================================

// recomputeAggregate rescans every rating of the book and writes the
// derived fields. count==0 resets the average to 0. Always full-scan, so
// redundant calls converge on the same values.
func recomputeAggregate(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	var avg float64
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(AVG(value), 0), COUNT(*) FROM ratings WHERE book_id = $1`,
		bookID,
	).Scan(&avg, &count)
	if err != nil {
		return fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE books
		SET avg_rating = $2, ratings_count = $3, updated_at = NOW()
		WHERE id = $1
	`, bookID, model.Round2(avg), count)
	if err != nil {
		return fmt.Errorf("failed to persist book aggregate: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) RecomputeBookAggregate(ctx context.Context, bookID uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return recomputeAggregate(ctx, tx, bookID)
	})
}

// =====================================================
// LISTINGS
// =====================================================

func (r *postgresCommentRepository) ListVisibleByBook(
	ctx context.Context,
	bookID uuid.UUID,
) ([]*model.CommentWithAuthor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_id, c.book_id, c.content, c.rating, c.hidden, c.created_at,
		       COALESCE(u.username, $2)
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.book_id = $1 AND c.hidden = FALSE
		ORDER BY c.created_at DESC
	`, bookID, model.DeletedUserLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.CommentWithAuthor
	for rows.Next() {
		c := &model.CommentWithAuthor{}
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.BookID,
			&c.Content,
			&c.Rating,
			&c.Hidden,
			&c.CreatedAt,
			&c.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}

func (r *postgresCommentRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*model.CommentWithBook, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_id, c.book_id, c.content, c.rating, c.hidden, c.created_at,
		       b.title, b.cover_url
		FROM comments c
		JOIN books b ON b.id = c.book_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.CommentWithBook
	for rows.Next() {
		c := &model.CommentWithBook{}
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.BookID,
			&c.Content,
			&c.Rating,
			&c.Hidden,
			&c.CreatedAt,
			&c.BookTitle,
			&c.BookCoverURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user comments: %w", err)
	}

	return comments, nil
}

// =====================================================
// MODERATION
// =====================================================

func (r *postgresCommentRepository) SetHidden(
	ctx context.Context,
	id uuid.UUID,
	hidden bool,
) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.pool.QueryRow(ctx, `
		UPDATE comments
		SET hidden = $2
		WHERE id = $1
		RETURNING id, user_id, book_id, content, rating, hidden, created_at
	`, id, hidden).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.BookID,
		&comment.Content,
		&comment.Rating,
		&comment.Hidden,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update hidden flag: %w", err)
	}
	return comment, nil
}
