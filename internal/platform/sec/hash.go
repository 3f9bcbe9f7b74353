// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/todoro/internal/platform/apperr"
)

// MinPasswordLength is the hasher's input policy. Anything shorter is
// rejected before any hashing work is done.
const MinPasswordLength = 6

// DummyHash is a valid bcrypt digest of a throwaway string. Login flows
// compare against it when the email is unknown so that "no such user" and
// "wrong password" take comparable time.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hasher performs one-way salted password hashing with a configurable
// bcrypt cost.
//
// # Cost
//
// Production uses bcrypt.DefaultCost. Test suites may construct a Hasher
// with bcrypt.MinCost to keep runs fast; a cost below bcrypt.MinCost is
// replaced with the default so hashing work is never skipped entirely.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost factor.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt bakes a random salt into the digest, so two hashes of the same
// password always differ. Passwords shorter than [MinPasswordLength] are
// rejected with a client-safe validation error.
func (hasher *Hasher) Hash(plainTextPassword string) (string, error) {
	if len(plainTextPassword) < MinPasswordLength {
		return "", apperr.ValidationError("Password must be at least 6 characters long")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with its hashed version.
//
// It returns false — never an error — for an empty password or empty hash,
// and relies on bcrypt's constant-effort comparison otherwise.
func (hasher *Hasher) Verify(plainTextPassword, existingHash string) bool {
	if plainTextPassword == "" || existingHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
