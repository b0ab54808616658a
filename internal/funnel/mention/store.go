// Copyright (c) 2026 Undervalued Books. All rights reserved.

package mention

import (
	"context"

	"github.com/undervaluedbooks/api/internal/catalog/book"
)

// Repository defines the persistence contract for the Mention Ledger.
//
// Every method is a single query round-trip. The anti-join reads are
// computed in SQL against the books table rather than by filtering a fetched
// mention list, so the whole ledger is never loaded into memory.
type Repository interface {
	// Upsert atomically inserts or replaces the stance for (user_id, book_id)
	// and returns the stored row. Two concurrent writers for the same pair
	// never produce two rows; last writer wins.
	Upsert(ctx context.Context, m *Mention) (*Mention, error)

	// Find returns the mention for the pair, or (nil, nil) when no row
	// exists. Absence is a normal outcome, not an error: it distinguishes
	// "never responded" from "responded false".
	Find(ctx context.Context, userID, bookID int64) (*Mention, error)

	// ListByUser returns every stance recorded by a user, in no particular order.
	ListByUser(ctx context.Context, userID int64) ([]*Mention, error)

	// NotMentionedBooks returns catalog books with no mention row for the
	// user (left-anti-join).
	NotMentionedBooks(ctx context.Context, userID int64) ([]*book.Book, error)

	// NotHeardBeforeBooks returns catalog books whose mention row for the
	// user has mentioned = false exactly. Rows with mentioned = true, or no
	// row at all, are excluded.
	NotHeardBeforeBooks(ctx context.Context, userID int64) ([]*book.Book, error)

	// NotHeardBeforeCount returns the distinct-user count of mentioned = false
	// rows for a book.
	NotHeardBeforeCount(ctx context.Context, bookID int64) (int64, error)

	// HeardButNotRatedCount returns the distinct users with any mention row
	// for the book but no rating row for the same pair.
	HeardButNotRatedCount(ctx context.Context, bookID int64) (int64, error)

	// DeleteByUser removes every mention recorded by a user and returns the
	// number of rows removed. Part of the account-deletion cascade.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
