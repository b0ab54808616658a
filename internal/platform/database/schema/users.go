// Copyright (c) 2026 Undervalued Books. All rights reserved.

package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt string
	UpdatedAt string
}

// User is the schema definition for users
var User = UserTable{
	Table:     "users",
	ID:        "user_id",
	Username:  "username",
	Email:     "email",
	Password:  "password_hash",
	Role:      "role",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.Role, t.CreatedAt, t.UpdatedAt}
}
