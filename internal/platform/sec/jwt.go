// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The [Codec] is the sole trust bridge between the user
// service and the todo service: a token minted by one is verifiable by the
// other using nothing but the shared symmetric secret — no session store,
// no network round-trip.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, distinguished so the HTTP boundary can return
// distinct user-facing reasons.
var (
	// ErrTokenExpired indicates the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenMalformed indicates a bad signature or unparseable structure.
	ErrTokenMalformed = errors.New("sec: token malformed")

	// ErrTokenAudience indicates the issuer or audience claim does not match
	// the values this deployment expects.
	ErrTokenAudience = errors.New("sec: token issuer or audience mismatch")
)

// Claims is the payload embedded inside an access token.
//
// # Wire Contract
//
// The JSON claim names (userId, email) plus the registered iss/aud/iat/exp
// claims form the versioned wire contract between the two services. Both
// deployments must agree on this schema and on the signing secret; nothing
// else is shared.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the subject's identity uuid as assigned by the user service.
	UserID string `json:"userId"`
	// Email is carried for display and logging; it is never used for lookups
	// on the todo side.
	Email string `json:"email"`
}

// Codec creates and verifies signed, expiring access tokens using HS256.
//
// Verification is a pure local computation: it performs no I/O and never
// blocks, which is what lets the todo service authenticate every request
// without talking to the user service.
type Codec struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
}

// NewCodec creates a Codec from an explicit secret and token lifetime.
//
// The secret and TTL are injected (from configuration) rather than read
// ambiently; both services must be configured with identical values.
func NewCodec(secret string, ttl time.Duration, issuer, audience string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}
	return &Codec{
		secret:   []byte(secret),
		ttl:      ttl,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Issue creates a signed access token for the given identity.
func (codec *Codec) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    codec.issuer,
			Audience:  jwt.ClaimStrings{codec.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(codec.ttl)),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, expiry, and issuer/audience of a token string.
//
// It returns [ErrTokenExpired], [ErrTokenAudience], or [ErrTokenMalformed];
// callers must not inspect the claims of a token that failed verification.
func (codec *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return codec.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(codec.issuer),
		jwt.WithAudience(codec.audience),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrTokenAudience
		default:
			return nil, ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// DecodeUnsafe decodes a token's claims WITHOUT verifying the signature.
//
// It exists for non-authoritative display (e.g. showing which account a
// stale token belonged to) and returns nil on any parse failure. It must
// never be used to authorize an action.
func (codec *Codec) DecodeUnsafe(tokenString string) *Claims {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	return claims
}

// TTL reports the configured token lifetime.
func (codec *Codec) TTL() time.Duration {
	return codec.ttl
}
