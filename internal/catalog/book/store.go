// Copyright (c) 2026 Undervalued Books. All rights reserved.

package book

import "context"

// Repository defines the persistence contract for the Book Catalog.
type Repository interface {
	// Create persists a new catalog entry and returns it with its assigned ID.
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetAll returns every book in the catalog.
	GetAll(ctx context.Context) ([]*Book, error)

	// GetByID returns the book with the given ID, or apperr.NotFound.
	GetByID(ctx context.Context, id int64) (*Book, error)

	// GetByTitle returns the book with the given exact title, or apperr.NotFound.
	GetByTitle(ctx context.Context, title string) (*Book, error)

	// FindByTitleAndAuthor returns the matching book, or (nil, nil) when no
	// book matches. Absence is a normal outcome here, not an error: the
	// submission flow uses it as an existence probe.
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*Book, error)

	// ExistsByID reports whether a book with the given ID is in the catalog.
	// The ledgers use it as the referential-integrity check before writes.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
