// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/taibuivan/todoro/internal/platform/apperr"
	"github.com/taibuivan/todoro/internal/platform/sec"
	"github.com/taibuivan/todoro/pkg/uuid"
)

// TokenIssuer defines the contract for minting signed tokens.
type TokenIssuer interface {
	// Issue creates a signed JWT string carrying the user's UUID and email.
	Issue(userID, email string) (string, error)

	// Verify checks a token's signature and claims.
	Verify(tokenString string) (*sec.Claims, error)
}

// PasswordHasher defines the contract for hashing and checking passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// Service implements user registration, login, and token validation.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, throttling,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	loginAttempts  LoginAttemptRepository
	tokens         TokenIssuer
	hasher         PasswordHasher
	logger         *slog.Logger
}

// NewService constructs the identity [Service] with necessary dependencies.
//
// loginAttempts may be nil, in which case throttling is disabled.
func NewService(
	userRepo UserRepository,
	loginAttempts LoginAttemptRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		loginAttempts:  loginAttempts,
		tokens:         tokens,
		hasher:         hasher,
		logger:         logger,
	}
}

// Credentials holds the data for both registration and login.
type Credentials struct {
	Email    string
	Password string
}

// normalizeEmail trims whitespace and lowercases, so lookups and the unique
// index see one canonical form per address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates, hashes, and persists a brand new user account, then
// issues an access token so the client is signed in immediately.
//
// # Returns
//   - [*AuthResponse] with the signed token and the new user's public view.
//   - Returns [apperr.Conflict] if the email is already registered.
//   - Returns [apperr.ValidationError] if the email is not a bare RFC 5322 address.
//
// # Business Rules
//   - Emails are unique, compared case-insensitively.
//   - Passwords are never persisted in plain text.
func (service *Service) Register(context context.Context, input Credentials) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	// ── 1. Email Semantics ────────────────────────────────────────────────

	// Structural checks (presence, length) happen at the transport layer;
	// here we confirm the address parses, and that it is a bare address.
	// Display-name forms like "Tai <tai@example.com>" parse fine but would
	// store the whole string, angle brackets included.
	if address, err := mail.ParseAddress(email); err != nil || address.Address != email {
		return nil, apperr.ValidationError("Invalid email format")
	}

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	// Client-friendly pre-check. The unique index on email is the real
	// guard against concurrent registrations, surfaced as the same Conflict
	// by the repository.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("Email already registered")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	user := &User{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("identity_service_register_failed: %w", err)
	}

	// ── 5. Token Issuance ─────────────────────────────────────────────────

	token, err := service.tokens.Issue(user.UUID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_generation_failed: %w", err)
	}

	return &AuthResponse{Token: token, User: user.View()}, nil
}

// Login validates user credentials and issues an access token.
//
// # Returns
//   - [*AuthResponse] on success.
//   - Returns [apperr.Unauthorized] with an identical message for both an
//     unknown email and a wrong password, preventing account enumeration.
//   - Returns [apperr.RateLimited] when the email has exceeded the failed
//     attempt budget within the current window.
//
// # Flow
//  1. Check the throttle counter for the email.
//  2. Lookup the user. On a miss, still burn one bcrypt verification so the
//     response time does not reveal whether the account exists.
//  3. Verify the password hash.
//  4. Reset the throttle counter and issue the token.
func (service *Service) Login(context context.Context, input Credentials) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	// ── 1. Throttle Check ─────────────────────────────────────────────────

	if service.throttled(context, email) {
		return nil, apperr.RateLimited(int(LoginAttemptWindow.Seconds()))
	}

	// ── 2. Fetch User Profile ─────────────────────────────────────────────

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		// Only a missing account takes the enumeration-safe path. A store
		// outage is a server fault and must not look like bad credentials.
		if ae := apperr.As(err); ae == nil || ae.HTTPStatus != http.StatusNotFound {
			return nil, fmt.Errorf("identity_service_login_lookup_failed: %w", err)
		}

		// Equalize timing with the found-user path before answering.
		service.hasher.Verify(input.Password, sec.DummyHash)
		service.recordFailure(context, email)
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// ── 3. Security Verification ──────────────────────────────────────────

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		service.recordFailure(context, email)
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	service.resetFailures(context, email)

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	token, err := service.tokens.Issue(user.UUID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_generation_failed: %w", err)
	}

	return &AuthResponse{Token: token, User: user.View()}, nil
}

// Validate reports whether the token is signed, unexpired, and belongs to a
// user that still exists. It never returns an error to the caller; any
// failure simply means the token is not valid.
func (service *Service) Validate(context context.Context, tokenString string) bool {
	claims, err := service.tokens.Verify(tokenString)
	if err != nil {
		return false
	}

	if _, err := service.userRepository.FindByUUID(context, claims.UserID); err != nil {
		return false
	}

	return true
}

// # Throttle Helpers

// Throttling fails open. A Redis outage degrades brute-force protection but
// never blocks a legitimate login.

func (service *Service) throttled(context context.Context, email string) bool {
	if service.loginAttempts == nil {
		return false
	}

	count, err := service.loginAttempts.Count(context, email)
	if err != nil {
		service.logger.Warn("login throttle check failed", slog.String("error", err.Error()))
		return false
	}

	return count >= MaxLoginAttempts
}

func (service *Service) recordFailure(context context.Context, email string) {
	if service.loginAttempts == nil {
		return
	}

	if _, err := service.loginAttempts.Increment(context, email); err != nil {
		service.logger.Warn("login throttle increment failed", slog.String("error", err.Error()))
	}
}

func (service *Service) resetFailures(context context.Context, email string) {
	if service.loginAttempts == nil {
		return
	}

	if err := service.loginAttempts.Reset(context, email); err != nil {
		service.logger.Warn("login throttle reset failed", slog.String("error", err.Error()))
	}
}
