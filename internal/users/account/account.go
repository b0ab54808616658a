// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package account implements the account lifecycle beyond authentication:
profile reads and full account deletion.

Deletion is a cascade, not a soft delete. The user's mentions, ratings, and
clicks go first, then their sessions, then the account row itself, so no
engagement data survives the account that produced it. The steps are ordered
so a failure part-way leaves the account present and retryable, never a
dangling row pointing at a deleted user.
*/
package account

// DeletionReport summarizes what a completed account deletion removed.
type DeletionReport struct {
	UserID          int64 `json:"user_id"`
	MentionsDeleted int64 `json:"mentions_deleted"`
	RatingsDeleted  int64 `json:"ratings_deleted"`
	ClicksDeleted   int64 `json:"clicks_deleted"`
	SessionsDeleted int64 `json:"sessions_deleted"`
}
