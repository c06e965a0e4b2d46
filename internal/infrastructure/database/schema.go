package database

import (
	"context"
	"fmt"
)

// Schema is registered explicitly at startup, in one place and in a fixed
// order, so queries never depend on which package happened to be imported
// first. The two unique indexes are load-bearing:
//
//   - books(title, author): catalog uniqueness, surfaces as Conflict.
//   - ratings(user_id, book_id): the actual enforcement of one rating per
//     user per book. The service-layer pre-check is only an optimization;
//     a racing duplicate insert is rejected here.
//
// avg_rating and ratings_count on books are derived values, written only by
// the aggregate recomputation step.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             UUID PRIMARY KEY,
		username       TEXT NOT NULL UNIQUE,
		email          TEXT NOT NULL UNIQUE,
		password_hash  TEXT NOT NULL,
		role           TEXT NOT NULL DEFAULT 'user',
		is_premium     BOOLEAN NOT NULL DEFAULT FALSE,
		premium_until  TIMESTAMPTZ,
		last_login_at  TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS books (
		id             UUID PRIMARY KEY,
		title          TEXT NOT NULL,
		author         TEXT NOT NULL,
		genre          TEXT NOT NULL,
		year           INT NOT NULL,
		description    TEXT NOT NULL,
		cover_url      TEXT NOT NULL,
		file_url       TEXT NOT NULL,
		is_premium     BOOLEAN NOT NULL DEFAULT FALSE,
		avg_rating     NUMERIC(3,2) NOT NULL DEFAULT 0,
		ratings_count  INT NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_books_title_author ON books (title, author)`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id    UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		value      INT NOT NULL CHECK (value BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_user_book ON ratings (user_id, book_id)`,

	// comments.user_id carries no foreign key: comments outlive their
	// author, and listings substitute a sentinel display name.
	`CREATE TABLE IF NOT EXISTS comments (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL,
		book_id    UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		rating     INT CHECK (rating BETWEEN 1 AND 5),
		hidden     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_book ON comments (book_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_user ON comments (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id    UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, book_id)
	)`,
}

// Migrate registers the schema. Idempotent; runs once from the container
// during startup.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}

	return nil
}
