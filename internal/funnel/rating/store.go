// Copyright (c) 2026 Undervalued Books. All rights reserved.

package rating

import (
	"context"

	"github.com/undervaluedbooks/api/internal/catalog/book"
)

// Repository defines the persistence contract for the Rating Ledger.
//
// Writes resolve against UNIQUE(user_id, book_id) inside the database in a
// single statement; there is no read-then-write window. Aggregates coalesce
// to zero for books with no ratings.
type Repository interface {
	// Upsert writes the score for (user_id, book_id) and returns the stored
	// row. With requireAbsent set, an existing row is left untouched and the
	// call fails with a Conflict error; otherwise the row is overwritten.
	Upsert(ctx context.Context, r *Rating, requireAbsent bool) (*Rating, error)

	// Find returns the rating for the pair, or (nil, nil) when the user has
	// not rated the book. Absence is a normal outcome, not an error.
	Find(ctx context.Context, userID, bookID int64) (*Rating, error)

	// ListByUser returns every rating a user has recorded.
	ListByUser(ctx context.Context, userID int64) ([]*Rating, error)

	// ListByBook returns every rating recorded for a book.
	ListByBook(ctx context.Context, bookID int64) ([]*Rating, error)

	// NotRatedBooks returns catalog books with no rating row for the user
	// (left-anti-join).
	NotRatedBooks(ctx context.Context, userID int64) ([]*book.Book, error)

	// CountForBook returns how many ratings a book has. Zero for an unrated
	// book.
	CountForBook(ctx context.Context, bookID int64) (int64, error)

	// SumForBook returns the sum of all scores for a book, coalesced to
	// zero when no ratings exist.
	SumForBook(ctx context.Context, bookID int64) (int64, error)

	// DeleteByUser removes every rating recorded by a user and returns the
	// number of rows removed. Part of the account-deletion cascade.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
