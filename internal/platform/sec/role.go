// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can publish manuscripts and manage the editorial pipeline
	RolePublisher UserRole = "publisher"

	// Can review manuscripts and accept editing assignments
	RoleEditor UserRole = "editor"

	// Default role for registered authors submitting manuscripts
	RoleWriter UserRole = "writer"
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
	case RoleAdmin:
		return 40
	case RolePublisher:
		return 30
	case RoleEditor:
		return 20
	case RoleWriter:
		return 10
	default:
		return 0
	}
}
