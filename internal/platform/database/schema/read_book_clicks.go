// Copyright (c) 2026 Undervalued Books. All rights reserved.

package schema

// ReadBookClickTable represents the 'read_book_clicks' table
type ReadBookClickTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	Click     string
	CreatedAt string
}

// ReadBookClick is the schema definition for read_book_clicks
var ReadBookClick = ReadBookClickTable{
	Table:     "read_book_clicks",
	ID:        "id",
	UserID:    "user_id",
	BookID:    "book_id",
	Click:     "click",
	CreatedAt: "created_at",
}
