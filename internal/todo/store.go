// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import "context"

// # Store Interface

// Repository defines persistence operations for todo items.
//
// Every method that targets a single todo takes both the todo's UUID and the
// owner's UUID; the pair forms the lookup key, so other users' todos are
// invisible at the storage layer rather than filtered above it.
type Repository interface {
	// Create inserts a new todo and fills in the generated row id on the
	// given entity.
	Create(ctx context.Context, item *Todo) error

	// ListByOwner returns all todos for the owner, newest first.
	ListByOwner(ctx context.Context, ownerUUID string) ([]*Todo, error)

	// FindByUUID retrieves one todo scoped to the owner.
	FindByUUID(ctx context.Context, ownerUUID, todoUUID string) (*Todo, error)

	// Update persists the todo's mutable fields, scoped to the owner.
	Update(ctx context.Context, item *Todo) error

	// Delete removes the todo scoped to the owner.
	Delete(ctx context.Context, ownerUUID, todoUUID string) error
}
