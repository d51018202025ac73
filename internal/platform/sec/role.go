// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package sec

// # User Types

// UserType represents the tenant class an account belongs to.
type UserType string

const (
	// Hires and pays for household work
	TypeHousehold UserType = "household"

	// Performs jobs and receives payouts
	TypeWorker UserType = "worker"

	// Operates the platform back office
	TypeAdmin UserType = "admin"
)

// # Authorization Policy

// Matches reports whether the user type satisfies the required type.
//
// The check is an exact match with no hierarchy: an admin does not
// implicitly satisfy a worker-only route. An empty requirement means
// any authenticated user is acceptable.
func (t UserType) Matches(required UserType) bool {
	if required == "" {
		return t.Valid()
	}
	return t == required
}

// Valid reports whether the value is one of the three known user types.
func (t UserType) Valid() bool {
	switch t {
	case TypeHousehold, TypeWorker, TypeAdmin:
		return true
	default:
		return false
	}
}
