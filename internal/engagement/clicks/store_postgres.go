// Copyright (c) 2026 Undervalued Books. All rights reserved.

package clicks

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undervaluedbooks/api/internal/platform/database/schema"
	"github.com/undervaluedbooks/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the read_book_clicks table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed click log.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Record(ctx context.Context, userID, bookID int64) (*Click, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, true)
		RETURNING %s, %s, %s, %s`,
		schema.ReadBookClick.Table,
		schema.ReadBookClick.UserID, schema.ReadBookClick.BookID, schema.ReadBookClick.Click,
		schema.ReadBookClick.ID, schema.ReadBookClick.UserID, schema.ReadBookClick.BookID,
		schema.ReadBookClick.CreatedAt,
	)

	c := &Click{}
	err := repository.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&c.ID, &c.UserID, &c.BookID, &c.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "record_click")
	}

	return c, nil
}

func (repository *PostgresRepository) CountForBook(ctx context.Context, bookID int64) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ReadBookClick.Table, schema.ReadBookClick.BookID,
	)

	var count int64
	if err := repository.pool.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "click_count_for_book")
	}

	return count, nil
}

func (repository *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ReadBookClick.Table, schema.ReadBookClick.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_clicks_for_user")
	}

	return tag.RowsAffected(), nil
}
