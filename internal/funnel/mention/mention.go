// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package mention implements the Mention Ledger: the per (user, book) record of
whether a user had heard of a book before discovering it here.

A mention is a terminal fact. It is created or overwritten by an atomic
upsert keyed on (user_id, book_id); it never transitions through
intermediate states. "No row" and "mentioned = false" are semantically
distinct ("never asked" vs "said no"), which is why reads surface a
three-valued [Stance] instead of an optional boolean.

# Architecture

  - Entities: Mention, Stance.
  - Repository: Postgres-backed ledger with SQL-level anti-joins against the catalog.
  - Service: Referential validation and stance mapping.
*/
package mention

import "time"

// # Domain Entities

// Mention represents a user's recorded stance on a single book.
type Mention struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Mentioned bool      `json:"mentioned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stance is the three-valued answer to "had this user heard of this book?".
//
// Modeling the absent row as its own value makes the "said no" vs "never
// asked" distinction a type-level invariant rather than a null-check
// convention.
type Stance string

const (
	// StanceHeardBefore means the user recorded mentioned = true.
	StanceHeardBefore Stance = "heard_before"

	// StanceNotHeardBefore means the user recorded mentioned = false.
	StanceNotHeardBefore Stance = "not_heard_before"

	// StanceNoResponse means no mention row exists for the pair.
	StanceNoResponse Stance = "no_response"
)

// StanceOf maps a ledger row (or its absence) to a [Stance].
func StanceOf(m *Mention) Stance {
	switch {
	case m == nil:
		return StanceNoResponse
	case m.Mentioned:
		return StanceHeardBefore
	default:
		return StanceNotHeardBefore
	}
}

// # Field Identifiers

const (
	FieldUserID    = "user_id"
	FieldBookID    = "book_id"
	FieldMentioned = "mentioned"
)
