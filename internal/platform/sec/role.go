// Copyright (c) 2026 Undervalued Books. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The master role replaces the legacy convention of treating a fixed account
// identifier as the privileged moderator: privilege is an attribute of the
// account, not of its ID.
type UserRole string

const (
	// Can approve or reject book submissions and manage the catalog
	RoleMaster UserRole = "master"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleMaster:
		return 40
	case RoleMember:
		return 10
	default:
		return 0
	}
}
