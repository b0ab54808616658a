// Copyright (c) 2026 Undervalued Books. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Kept short to limit the blast radius of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random reset token.
	ResetTokenLength = 32

	// MinPasswordLen bounds accepted passwords at registration and reset.
	MinPasswordLen = 8

	// MaxUsernameLen bounds the username column.
	MaxUsernameLen = 50
)
