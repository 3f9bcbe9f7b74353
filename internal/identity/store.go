// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import "context"

// # Store Interfaces

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and fills in the generated row id and
	// timestamps on the given entity.
	Create(ctx context.Context, user *User) error

	// FindByEmail retrieves a user by email, case-sensitively. Callers
	// normalize emails to lowercase before storage and lookup.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUUID retrieves a user by public identifier.
	FindByUUID(ctx context.Context, uuid string) (*User, error)
}

// LoginAttemptRepository tracks failed login attempts per email so the
// service can throttle credential guessing.
type LoginAttemptRepository interface {
	// Increment records a failed attempt and returns the running count
	// within the current window.
	Increment(ctx context.Context, email string) (int64, error)

	// Count returns the current attempt count without modifying it.
	Count(ctx context.Context, email string) (int64, error)

	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
