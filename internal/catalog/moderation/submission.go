// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package moderation implements the book submission workflow.

Members do not write to the catalog directly. A submission goes by email to
the moderator, who approves it into the catalog or rejects it; the submitter
is notified either way. Moderator-only operations are gated on the account's
role, never on a particular user ID.
*/
package moderation

// Submission carries the proposed book details through the review flow.
type Submission struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldSubmitterID = "submitter_id"
)
