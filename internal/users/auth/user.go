// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package auth implements user identity and session management.

It defines the core entities (User, Session) and the registration, login,
and password-recovery flows. Access tokens are RSA-signed JWTs; refresh
tokens are opaque random values tracked as revocable sessions in Postgres,
stored only as SHA-256 digests. Password reset tokens are volatile and live
in Redis.

The master role is an attribute of the account row, assigned at
registration when the email matches the configured master address. No logic
anywhere keys off a hardcoded user ID.
*/
package auth

import (
	"time"

	"github.com/undervaluedbooks/api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member.
type User struct {
	ID           int64        `json:"user_id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"` // Digest of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldToken       = "token"
	FieldNewPassword = "new_password"
)
