// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package todo implements the todo service's core: ownership-scoped CRUD over
todo items.

Every operation is scoped to the authenticated user's UUID. A todo belonging
to someone else is indistinguishable from a todo that does not exist.
*/
package todo

import (
	"strconv"
	"time"
)

// # Domain Entities

// Todo represents a single todo item row.
//
// UserUUID is the owner's public identifier as minted by the user service.
// The todo service never resolves it further; it is an opaque scope key.
type Todo struct {
	ID        int64
	UUID      string
	UserUUID  string
	Content   string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is the client-facing projection of a todo, with the internal row id
// rendered as a string.
type View struct {
	ID        string    `json:"id"`
	UUID      string    `json:"uuid"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	UserUUID  string    `json:"userUuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the client-safe projection of the todo.
func (t *Todo) View() View {
	return View{
		ID:        strconv.FormatInt(t.ID, 10),
		UUID:      t.UUID,
		Content:   t.Content,
		Completed: t.Completed,
		UserUUID:  t.UserUUID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Views maps a slice of todos to their projections, always returning a
// non-nil slice so an empty list serializes as [] rather than null.
func Views(todos []*Todo) []View {
	views := make([]View, 0, len(todos))
	for _, item := range todos {
		views = append(views, item.View())
	}
	return views
}

// # Content Policy

const (
	// MaxContentLength bounds content in Unicode characters, not bytes.
	MaxContentLength = 1000
)

// # Field Identifiers

const (
	FieldContent   = "content"
	FieldCompleted = "completed"
)
