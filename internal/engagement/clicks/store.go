// Copyright (c) 2026 Undervalued Books. All rights reserved.

package clicks

import "context"

// Repository defines the persistence contract for the click log.
type Repository interface {
	// Record appends one click event and returns the stored row.
	Record(ctx context.Context, userID, bookID int64) (*Click, error)

	// CountForBook returns how many clicks a book's read link has received.
	CountForBook(ctx context.Context, bookID int64) (int64, error)

	// DeleteByUser removes a user's click history and returns the number of
	// rows removed. Part of the account-deletion cascade.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
