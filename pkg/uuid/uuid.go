// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the public identifiers used across the platform.

Users and todos carry a random UUIDv4 alongside their internal serial row id;
the uuid is the only identifier that leaves a service (in URLs, JSON bodies,
and token claims), so the database shape never leaks into the API.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// # Validation

// IsValid reports whether the value parses as a UUID.
func IsValid(value string) bool {
	return uuid.Validate(value) == nil
}
