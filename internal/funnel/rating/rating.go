// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package rating implements the Rating Ledger: the per (user, book) numeric
score a user assigns to a book.

The ledger exposes two write verbs over one underlying conditional upsert:
Rate refuses to touch an existing row (first impressions are recorded once),
while Rerate overwrites in place. Both resolve against the UNIQUE(user_id,
book_id) key in a single round-trip, so two concurrent first ratings for the
same pair cannot both succeed.

# Architecture

  - Entities: Rating.
  - Repository: Postgres-backed ledger with aggregate reads coalesced to zero.
  - Service: Referential validation and score bounds.
*/
package rating

import "time"

// # Domain Entities

// Rating represents a user's score for a single book.
type Rating struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldUserID = "user_id"
	FieldBookID = "book_id"
	FieldRating = "rating"
)

// # Business Rules

const (
	// MinRating and MaxRating bound the accepted score, inclusive.
	MinRating = 1
	MaxRating = 5
)
