// Copyright (c) 2026 Undervalued Books. All rights reserved.

// Package clicks records read-book link clicks: the final stage of the
// engagement funnel, where a user follows a book's outbound link. Clicks are
// an append-only event log, not a ledger; the same user clicking twice
// produces two rows.
package clicks

import "time"

// Click represents one recorded click on a book's read link.
type Click struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	FieldUserID = "user_id"
	FieldBookID = "book_id"
)
