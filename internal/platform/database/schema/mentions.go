// Copyright (c) 2026 Undervalued Books. All rights reserved.

package schema

// MentionTable represents the 'mentions' table
type MentionTable struct {
	Table     string
	UserID    string
	BookID    string
	Mentioned string
	CreatedAt string
	UpdatedAt string
}

// Mention is the schema definition for mentions.
// The natural key is UNIQUE(user_id, book_id): one stance per user per book.
var Mention = MentionTable{
	Table:     "mentions",
	UserID:    "user_id",
	BookID:    "book_id",
	Mentioned: "mentioned",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
