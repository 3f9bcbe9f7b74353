// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/todoro/internal/platform/apperr"
	"github.com/taibuivan/todoro/internal/platform/dberr"
)

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows or unique violations) are
// mapped to domain-friendly [apperr.AppError] types to avoid leaking storage
// implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record into the users table.
//
// The generated row id and timestamps are written back onto the entity. A
// unique-constraint violation on the email column is mapped to
// [apperr.Conflict], which covers concurrent registrations racing past the
// service-level duplicate check.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (uuid, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		user.UUID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email already registered")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user record by their unique email address.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, uuid, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.UUID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

// FindByUUID retrieves a user record by their public identifier.
func (repository *PostgresUserRepository) FindByUUID(ctx context.Context, uuid string) (*User, error) {
	const query = `
		SELECT id, uuid, email, password_hash, created_at, updated_at
		FROM users
		WHERE uuid = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, uuid).Scan(
		&user.ID,
		&user.UUID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_uuid_failed: %w", err)
	}

	return user, nil
}
