// Copyright (c) 2026 Undervalued Books. All rights reserved.

package schema

// RatingTable represents the 'ratings' table
type RatingTable struct {
	Table     string
	UserID    string
	BookID    string
	Rating    string
	CreatedAt string
	UpdatedAt string
}

// Rating is the schema definition for ratings.
// The natural key is UNIQUE(user_id, book_id): one rating per user per book.
var Rating = RatingTable{
	Table:     "ratings",
	UserID:    "user_id",
	BookID:    "book_id",
	Rating:    "rating",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
