// Copyright (c) 2026 Undervalued Books. All rights reserved.

package schema

// SessionTable represents the 'sessions' table
type SessionTable struct {
	Table     string
	ID        string
	UserID    string
	TokenHash string
	UserAgent string
	IPAddress string
	ExpiresAt string
	IsRevoked string
	CreatedAt string
}

// Session is the schema definition for sessions
var Session = SessionTable{
	Table:     "sessions",
	ID:        "id",
	UserID:    "user_id",
	TokenHash: "token_hash",
	UserAgent: "user_agent",
	IPAddress: "ip_address",
	ExpiresAt: "expires_at",
	IsRevoked: "is_revoked",
	CreatedAt: "created_at",
}
