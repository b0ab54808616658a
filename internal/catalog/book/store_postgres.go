// Copyright (c) 2026 Undervalued Books. All rights reserved.

package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undervaluedbooks/api/internal/platform/database/schema"
	"github.com/undervaluedbooks/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the books table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, b *Book) (*Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s, %s, %s, %s`,
		schema.Book.Table,
		schema.Book.Title, schema.Book.Author, schema.Book.Description, schema.Book.ReadBookLink,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
	)

	created := &Book{}
	err := repository.pool.QueryRow(ctx, query, b.Title, b.Author, b.Description, b.ReadBookLink).Scan(
		&created.ID, &created.Title, &created.Author, &created.Description,
		&created.ReadBookLink, &created.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "create_book")
	}

	return created, nil
}

func (repository *PostgresRepository) GetAll(ctx context.Context) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Book.ID,
	)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Book.ID,
	)

	b := &Book{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ReadBookLink, &b.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_by_id")
	}

	return b, nil
}

func (repository *PostgresRepository) GetByTitle(ctx context.Context, title string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Book.Title,
	)

	b := &Book{}
	err := repository.pool.QueryRow(ctx, query, title).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ReadBookLink, &b.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_by_title")
	}

	return b, nil
}

func (repository *PostgresRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.ReadBookLink, schema.Book.CreatedAt,
		schema.Book.Table,
		schema.Book.Title, schema.Book.Author,
	)

	b := &Book{}
	err := repository.pool.QueryRow(ctx, query, title, author).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ReadBookLink, &b.CreatedAt,
	)
	if err != nil {
		// Absence is the expected answer for the existence probe.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find_book_by_title_author")
	}

	return b, nil
}

func (repository *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Book.Table, schema.Book.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "book_exists")
	}

	return exists, nil
}

// scanBooks hydrates a book slice from a query result.
func scanBooks(rows pgx.Rows) ([]*Book, error) {
	books := make([]*Book, 0)

	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ReadBookLink, &b.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_books")
	}

	return books, nil
}
