// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity implements the user service's core: registration, login,
and token validation.

It defines the User entity and orchestrates the Password Hasher and Token
Codec against the credential store.

# Architecture

This layer is the "Truth" of the system for who a user is. Entities defined
here have no transport dependencies and encapsulate all business rules
related to identity.
*/
package identity

import (
	"strconv"
	"time"
)

// # Domain Entities

// User represents a registered account in the user service's database.
//
// The numeric ID is internal to this service; the UUID is the identity that
// travels inside tokens and is the only identifier the todo service ever sees.
type User struct {
	ID           int64     `json:"-"`
	UUID         string    `json:"uuid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// View is the subject representation embedded in auth responses.
//
// It deliberately contains no password material and renders the internal
// row id as a string, matching the API contract.
type View struct {
	ID    string `json:"id"`
	UUID  string `json:"uuid"`
	Email string `json:"email"`
}

// View returns the client-safe projection of the user.
func (u *User) View() View {
	return View{
		ID:    strconv.FormatInt(u.ID, 10),
		UUID:  u.UUID,
		Email: u.Email,
	}
}

// AuthResponse is the payload returned by both Register and Login.
type AuthResponse struct {
	Token string `json:"token"`
	User  View   `json:"user"`
}

// # Field Identifiers

// Global field names for validation and identity mapping.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
