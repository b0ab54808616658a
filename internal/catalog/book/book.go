// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package book implements the Book Catalog: the curated list of canonical books
that anchors every other entity in the system.

The catalog is populated through the moderation workflow (approved
submissions) and read by the funnel ledgers, which join against it to compute
"not yet mentioned" and "not yet rated" sets.

# Architecture

  - Entities: Book.
  - Repository: Postgres-backed persistence behind a small interface.
  - Service: Validation and orchestration, no storage of its own.
*/
package book

import "time"

// # Domain Entities

// Book represents a canonical catalog entry.
//
// Books are immutable once created except for administrative edits; they are
// never deleted by the funnel core.
type Book struct {
	ID           int64     `json:"book_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Description  string    `json:"description"`
	ReadBookLink string    `json:"read_book_link"`
	CreatedAt    time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldDescription  = "description"
	FieldReadBookLink = "read_book_link"
)

// # Field Constraints

const (
	// MaxTitleLen bounds titles to keep catalog rows and email links sane.
	MaxTitleLen = 300

	// MaxAuthorLen bounds author names.
	MaxAuthorLen = 200

	// MaxDescriptionLen bounds the free-form description.
	MaxDescriptionLen = 5000
)
