// Copyright (c) 2026 Undervalued Books. All rights reserved.

// Package schema is the single registry of table and column names used by
// the Postgres repositories. Queries are assembled from these identifiers so
// a rename only ever happens in one place.
package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table        string
	ID           string
	Title        string
	Author       string
	Description  string
	ReadBookLink string
	CreatedAt    string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:        "books",
	ID:           "book_id",
	Title:        "title",
	Author:       "author",
	Description:  "description",
	ReadBookLink: "read_book_link",
	CreatedAt:    "created_at",
}

// Columns returns all standard column names
func (t BookTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.Description, t.ReadBookLink, t.CreatedAt}
}
