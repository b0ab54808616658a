// Copyright (c) 2026 Undervalued Books. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByID reports whether an account with the given ID exists.
	// Referenced by the ledgers before accepting a write.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create persists a new account and fills in the generated ID and
	// timestamps.
	Create(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(ctx context.Context, userID int64, newHash string) error

	// Delete removes the account row. Callers run the ledger cascade first
	// so no engagement rows are left dangling.
	Delete(ctx context.Context, id int64) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token
// sessions.
type SessionRepository interface {
	// Create persists a new tracking session for an authenticated login.
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns the active, unexpired session matching the
	// token digest.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(ctx context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to the user.
	RevokeAll(ctx context.Context, userID int64) error

	// DeleteByUser removes every session row for the user. Part of the
	// account-deletion cascade.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for volatile password reset
// tokens.
type ResetTokenRepository interface {
	// Set stores a reset token mapped to a userID for a limited duration.
	Set(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// Get retrieves the userID for a reset token.
	Get(ctx context.Context, token string) (int64, error)

	// Delete removes a reset token after successful use.
	Delete(ctx context.Context, token string) error
}
