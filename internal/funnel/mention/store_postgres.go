// Copyright (c) 2026 Undervalued Books. All rights reserved.

package mention

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/platform/database/schema"
	"github.com/undervaluedbooks/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the mentions table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed mention ledger.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Upsert(ctx context.Context, m *Mention) (*Mention, error) {
	// Single indivisible insert-or-update on the natural key. Re-sending the
	// same stance is a no-op in effect; a different boolean flips it in place.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = now()
		RETURNING %s, %s, %s, %s, %s`,
		schema.Mention.Table,
		schema.Mention.UserID, schema.Mention.BookID, schema.Mention.Mentioned,
		schema.Mention.UserID, schema.Mention.BookID,
		schema.Mention.Mentioned, schema.Mention.Mentioned,
		schema.Mention.UpdatedAt,
		schema.Mention.UserID, schema.Mention.BookID, schema.Mention.Mentioned,
		schema.Mention.CreatedAt, schema.Mention.UpdatedAt,
	)

	stored := &Mention{}
	err := repository.pool.QueryRow(ctx, query, m.UserID, m.BookID, m.Mentioned).Scan(
		&stored.UserID, &stored.BookID, &stored.Mentioned, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_mention")
	}

	return stored, nil
}

func (repository *PostgresRepository) Find(ctx context.Context, userID, bookID int64) (*Mention, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.Mention.UserID, schema.Mention.BookID, schema.Mention.Mentioned,
		schema.Mention.CreatedAt, schema.Mention.UpdatedAt,
		schema.Mention.Table,
		schema.Mention.UserID, schema.Mention.BookID,
	)

	m := &Mention{}
	err := repository.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&m.UserID, &m.BookID, &m.Mentioned, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		// No row means "never responded" — a normal answer, not a failure.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find_mention")
	}

	return m, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Mention, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Mention.UserID, schema.Mention.BookID, schema.Mention.Mentioned,
		schema.Mention.CreatedAt, schema.Mention.UpdatedAt,
		schema.Mention.Table,
		schema.Mention.UserID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_mentions_for_user")
	}
	defer rows.Close()

	mentions := make([]*Mention, 0)
	for rows.Next() {
		m := &Mention{}
		if err := rows.Scan(&m.UserID, &m.BookID, &m.Mentioned, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_mention")
		}
		mentions = append(mentions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_mentions")
	}

	return mentions, nil
}

func (repository *PostgresRepository) NotMentionedBooks(ctx context.Context, userID int64) ([]*book.Book, error) {
	// Left-anti-join: catalog rows with no mention row for this user.
	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s b
		LEFT JOIN %s m ON b.%s = m.%s AND m.%s = $1
		WHERE m.%s IS NULL
		ORDER BY b.%s`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Mention.Table, schema.Book.ID, schema.Mention.BookID, schema.Mention.UserID,
		schema.Mention.UserID,
		schema.Book.ID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "not_mentioned_books")
	}
	defer rows.Close()

	return scanJoinedBooks(rows)
}

func (repository *PostgresRepository) NotHeardBeforeBooks(ctx context.Context, userID int64) ([]*book.Book, error) {
	// Only rows where the user explicitly answered "no". IS FALSE excludes
	// both mentioned = true and the absent row.
	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s b
		JOIN %s m ON b.%s = m.%s AND m.%s = $1
		WHERE m.%s IS FALSE
		ORDER BY b.%s`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Mention.Table, schema.Book.ID, schema.Mention.BookID, schema.Mention.UserID,
		schema.Mention.Mentioned,
		schema.Book.ID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "not_heard_before_books")
	}
	defer rows.Close()

	return scanJoinedBooks(rows)
}

func (repository *PostgresRepository) NotHeardBeforeCount(ctx context.Context, bookID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT %s)
		FROM %s
		WHERE %s = $1 AND %s = false`,
		schema.Mention.UserID,
		schema.Mention.Table,
		schema.Mention.BookID, schema.Mention.Mentioned,
	)

	var count int64
	if err := repository.pool.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "not_heard_before_count")
	}

	return count, nil
}

func (repository *PostgresRepository) HeardButNotRatedCount(ctx context.Context, bookID int64) (int64, error) {
	// Mentions for the book (stance irrelevant) left-joined to ratings for
	// the same (user, book) pair, counting rows where the rating side is
	// absent.
	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT m.%s)
		FROM %s m
		LEFT JOIN %s r ON m.%s = r.%s AND m.%s = r.%s
		WHERE m.%s = $1 AND r.%s IS NULL`,
		schema.Mention.UserID,
		schema.Mention.Table,
		schema.Rating.Table, schema.Mention.UserID, schema.Rating.UserID,
		schema.Mention.BookID, schema.Rating.BookID,
		schema.Mention.BookID, schema.Rating.Rating,
	)

	var count int64
	if err := repository.pool.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "heard_not_rated_count")
	}

	return count, nil
}

func (repository *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Mention.Table, schema.Mention.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_mentions_for_user")
	}

	return tag.RowsAffected(), nil
}

// scanJoinedBooks hydrates catalog rows produced by the anti-join queries.
func scanJoinedBooks(rows pgx.Rows) ([]*book.Book, error) {
	books := make([]*book.Book, 0)

	for rows.Next() {
		b := &book.Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ReadBookLink, &b.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_joined_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_joined_books")
	}

	return books, nil
}
