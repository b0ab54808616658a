// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package stats derives the per-book engagement funnel from the mention and
rating ledgers.

Nothing here is stored. Every number is recomputed from ledger state at read
time, so the summary can never drift from the rows it is derived from. The
four counters are fetched as independent queries; a write landing between
them can produce a summary no single instant matches. Callers treat the
summary as a best-effort snapshot.
*/
package stats

// FunnelSummary is the composite engagement picture for one book.
type FunnelSummary struct {
	BookID int64 `json:"book_id"`

	// NotHeardBeforeCount is the number of users who explicitly had not
	// heard of the book before finding it here.
	NotHeardBeforeCount int64 `json:"not_heard_before_count"`

	// HeardButNotRatedCount is the number of users who responded about the
	// book but never rated it. The funnel's drop-off stage.
	HeardButNotRatedCount int64 `json:"heard_but_not_rated_count"`

	// RatingCount and RatingSum describe the book's ratings; both are zero
	// for an unrated book.
	RatingCount int64 `json:"rating_count"`
	RatingSum   int64 `json:"rating_sum"`
}
