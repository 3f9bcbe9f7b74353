// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/todoro/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, zero rows affected) are mapped to
// domain-friendly [apperr.AppError] types. A todo owned by another user
// produces the same NotFound as a todo that never existed.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new todo record into the todos table.
func (repository *PostgresRepository) Create(ctx context.Context, item *Todo) error {
	const query = `
		INSERT INTO todos (uuid, user_uuid, content, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		item.UUID,
		item.UserUUID,
		item.Content,
		item.Completed,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("postgres_todo_repo_create_failed: %w", err)
	}

	return nil
}

// ListByOwner returns all todos belonging to ownerUUID, newest first.
//
// An owner with no todos yields an empty, non-nil slice.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]*Todo, error) {
	const query = `
		SELECT id, uuid, user_uuid, content, completed, created_at, updated_at
		FROM todos
		WHERE user_uuid = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := repository.pool.Query(ctx, query, ownerUUID)
	if err != nil {
		return nil, fmt.Errorf("postgres_todo_repo_list_failed: %w", err)
	}
	defer rows.Close()

	todos := make([]*Todo, 0)
	for rows.Next() {
		item := &Todo{}
		if err := rows.Scan(
			&item.ID,
			&item.UUID,
			&item.UserUUID,
			&item.Content,
			&item.Completed,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_todo_repo_scan_failed: %w", err)
		}
		todos = append(todos, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_todo_repo_rows_failed: %w", err)
	}

	return todos, nil
}

// FindByUUID retrieves one todo scoped to the owner.
//
// # Returns
//
// Returns [*Todo] if found, or [apperr.NotFound] when no row matches the
// (owner, uuid) pair.
func (repository *PostgresRepository) FindByUUID(ctx context.Context, ownerUUID, todoUUID string) (*Todo, error) {
	const query = `
		SELECT id, uuid, user_uuid, content, completed, created_at, updated_at
		FROM todos
		WHERE uuid = $1 AND user_uuid = $2`

	item := &Todo{}
	err := repository.pool.QueryRow(ctx, query, todoUUID, ownerUUID).Scan(
		&item.ID,
		&item.UUID,
		&item.UserUUID,
		&item.Content,
		&item.Completed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Todo")
		}
		return nil, fmt.Errorf("postgres_todo_repo_find_failed: %w", err)
	}

	return item, nil
}

// Update persists the todo's content, completion flag, and updated timestamp.
func (repository *PostgresRepository) Update(ctx context.Context, item *Todo) error {
	const query = `
		UPDATE todos
		SET content = $3, completed = $4, updated_at = $5
		WHERE uuid = $1 AND user_uuid = $2`

	item.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		item.UUID,
		item.UserUUID,
		item.Content,
		item.Completed,
		item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_todo_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Todo")
	}

	return nil
}

// Delete removes the todo scoped to the owner.
func (repository *PostgresRepository) Delete(ctx context.Context, ownerUUID, todoUUID string) error {
	const query = "DELETE FROM todos WHERE uuid = $1 AND user_uuid = $2"

	tag, err := repository.pool.Exec(ctx, query, todoUUID, ownerUUID)
	if err != nil {
		return fmt.Errorf("postgres_todo_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Todo")
	}

	return nil
}
