// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Todoro API servers.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taibuivan/todoro/internal/platform/apperr"
	"github.com/taibuivan/todoro/internal/platform/constants"
	"github.com/taibuivan/todoro/internal/platform/ctxutil"
	"github.com/taibuivan/todoro/internal/platform/respond"
	"github.com/taibuivan/todoro/internal/platform/sec"
)

// bearerPrefix is the only accepted Authorization scheme.
const bearerPrefix = "Bearer "

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.Codec],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.Claims, error)
}

// Authenticate is the access gate for every protected route.
//
// # Flow
//
//  1. Extract 'Authorization: Bearer <token>'; absence rejects immediately.
//  2. Verify the token via [TokenVerifier] — a pure local computation, no
//     network call, no session lookup.
//  3. Map each failure class to its own user-facing 401 reason.
//  4. On success, inject [*sec.Claims] into the request context; downstream
//     handlers take the owner identity from there and nowhere else.
//
// The three rejection messages are part of the API contract and are asserted
// on by clients and tests: "No token provided", "Token expired",
// "Invalid token". Anything unexpected becomes "Authentication failed".
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, ok := BearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("No token provided"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				switch {
				case errors.Is(err, sec.ErrTokenExpired):
					respond.Error(writer, request, apperr.Unauthorized("Token expired"))
				case errors.Is(err, sec.ErrTokenMalformed), errors.Is(err, sec.ErrTokenAudience):
					respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				default:
					respond.Error(writer, request, apperr.Unauthorized("Authentication failed"))
				}
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
//
// It reports false for a missing header or any scheme other than Bearer.
func BearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
