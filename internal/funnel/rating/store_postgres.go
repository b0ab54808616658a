// Copyright (c) 2026 Undervalued Books. All rights reserved.

package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/database/schema"
	"github.com/undervaluedbooks/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the ratings table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed rating ledger.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Upsert(ctx context.Context, r *Rating, requireAbsent bool) (*Rating, error) {
	// Both variants resolve the (user_id, book_id) conflict inside the
	// statement. DO NOTHING returns no row when the pair already exists,
	// which surfaces here as pgx.ErrNoRows and maps to Conflict.
	conflictAction := fmt.Sprintf("DO UPDATE SET %s = EXCLUDED.%s, %s = now()",
		schema.Rating.Rating, schema.Rating.Rating, schema.Rating.UpdatedAt)
	if requireAbsent {
		conflictAction = "DO NOTHING"
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) %s
		RETURNING %s, %s, %s, %s, %s`,
		schema.Rating.Table,
		schema.Rating.UserID, schema.Rating.BookID, schema.Rating.Rating,
		schema.Rating.UserID, schema.Rating.BookID, conflictAction,
		schema.Rating.UserID, schema.Rating.BookID, schema.Rating.Rating,
		schema.Rating.CreatedAt, schema.Rating.UpdatedAt,
	)

	stored := &Rating{}
	err := repository.pool.QueryRow(ctx, query, r.UserID, r.BookID, r.Rating).Scan(
		&stored.UserID, &stored.BookID, &stored.Rating, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		if requireAbsent && errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Conflict("You have already rated this book")
		}
		return nil, dberr.Wrap(err, "upsert_rating")
	}

	return stored, nil
}

func (repository *PostgresRepository) Find(ctx context.Context, userID, bookID int64) (*Rating, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.Rating.UserID, schema.Rating.BookID, schema.Rating.Rating,
		schema.Rating.CreatedAt, schema.Rating.UpdatedAt,
		schema.Rating.Table,
		schema.Rating.UserID, schema.Rating.BookID,
	)

	r := &Rating{}
	err := repository.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&r.UserID, &r.BookID, &r.Rating, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find_rating")
	}

	return r, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Rating, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Rating.UserID, schema.Rating.BookID, schema.Rating.Rating,
		schema.Rating.CreatedAt, schema.Rating.UpdatedAt,
		schema.Rating.Table,
		schema.Rating.UserID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_ratings_for_user")
	}
	defer rows.Close()

	return scanRatings(rows)
}

func (repository *PostgresRepository) ListByBook(ctx context.Context, bookID int64) ([]*Rating, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Rating.UserID, schema.Rating.BookID, schema.Rating.Rating,
		schema.Rating.CreatedAt, schema.Rating.UpdatedAt,
		schema.Rating.Table,
		schema.Rating.BookID,
	)

	rows, err := repository.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_ratings_for_book")
	}
	defer rows.Close()

	return scanRatings(rows)
}

func (repository *PostgresRepository) NotRatedBooks(ctx context.Context, userID int64) ([]*book.Book, error) {
	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s b
		LEFT JOIN %s r ON b.%s = r.%s AND r.%s = $1
		WHERE r.%s IS NULL
		ORDER BY b.%s`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Rating.Table, schema.Book.ID, schema.Rating.BookID, schema.Rating.UserID,
		schema.Rating.UserID,
		schema.Book.ID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "not_rated_books")
	}
	defer rows.Close()

	books := make([]*book.Book, 0)
	for rows.Next() {
		b := &book.Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ReadBookLink, &b.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_not_rated_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_not_rated_books")
	}

	return books, nil
}

func (repository *PostgresRepository) CountForBook(ctx context.Context, bookID int64) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.Rating.Table, schema.Rating.BookID,
	)

	var count int64
	if err := repository.pool.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "rating_count_for_book")
	}

	return count, nil
}

func (repository *PostgresRepository) SumForBook(ctx context.Context, bookID int64) (int64, error) {
	// COALESCE keeps the unrated-book answer a plain zero instead of NULL.
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1`,
		schema.Rating.Rating, schema.Rating.Table, schema.Rating.BookID,
	)

	var sum int64
	if err := repository.pool.QueryRow(ctx, query, bookID).Scan(&sum); err != nil {
		return 0, dberr.Wrap(err, "rating_sum_for_book")
	}

	return sum, nil
}

func (repository *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Rating.Table, schema.Rating.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_ratings_for_user")
	}

	return tag.RowsAffected(), nil
}

func scanRatings(rows pgx.Rows) ([]*Rating, error) {
	ratings := make([]*Rating, 0)

	for rows.Next() {
		r := &Rating{}
		if err := rows.Scan(&r.UserID, &r.BookID, &r.Rating, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_rating")
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_ratings")
	}

	return ratings, nil
}
