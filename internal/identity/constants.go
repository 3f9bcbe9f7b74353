// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import "time"

// # Credential Policy

const (
	// MaxEmailLength matches the VARCHAR(255) column in the users table.
	MaxEmailLength = 255

	// MaxPasswordLength bounds the plaintext before hashing. bcrypt only
	// reads the first 72 bytes, so longer inputs are rejected up front.
	MaxPasswordLength = 100
)

// # Login Throttling

const (
	// MaxLoginAttempts is the number of failed logins per email before
	// further attempts are rejected for the window duration.
	MaxLoginAttempts = 10

	// LoginAttemptWindow is the sliding window for the attempt counter.
	LoginAttemptWindow = 15 * time.Minute
)
