// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/todoro/internal/platform/apperr"
	"github.com/taibuivan/todoro/pkg/uuid"
)

// Service implements todo use cases. It orchestrates the Repository and
// enforces the content policy; ownership scoping is delegated to the store.
type Service struct {
	todoRepository Repository
}

// NewService constructs the todo [Service] with its store dependency.
func NewService(todoRepo Repository) *Service {
	return &Service{todoRepository: todoRepo}
}

// validateContent enforces the content policy shared by Create and Update.
func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.ValidationError("Todo content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return apperr.ValidationError("Todo content cannot exceed 1000 characters")
	}
	return nil
}

// Create validates and persists a new todo for the owner.
//
// # Business Rules
//   - Content is required and capped at [MaxContentLength] characters.
//   - New todos always start with completed = false.
func (service *Service) Create(context context.Context, ownerUUID, content string) (*Todo, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	item := &Todo{
		UUID:      uuid.New(),
		UserUUID:  ownerUUID,
		Content:   content,
		Completed: false,
	}

	if err := service.todoRepository.Create(context, item); err != nil {
		return nil, fmt.Errorf("todo_service_create_failed: %w", err)
	}

	return item, nil
}

// List returns all of the owner's todos, newest first. An owner with no
// todos gets an empty slice, never nil.
func (service *Service) List(context context.Context, ownerUUID string) ([]*Todo, error) {
	todos, err := service.todoRepository.ListByOwner(context, ownerUUID)
	if err != nil {
		return nil, fmt.Errorf("todo_service_list_failed: %w", err)
	}
	return todos, nil
}

// Get retrieves one todo scoped to the owner.
//
// # Returns
//   - Returns [apperr.NotFound] both when the todo does not exist and when
//     it belongs to another user.
func (service *Service) Get(context context.Context, ownerUUID, todoUUID string) (*Todo, error) {
	item, err := service.todoRepository.FindByUUID(context, ownerUUID, todoUUID)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("todo_service_get_failed: %w", err)
	}
	return item, nil
}

// Patch carries the optional fields of an update request. A nil field means
// "leave unchanged".
type Patch struct {
	Content   *string
	Completed *bool
}

// Update applies a partial update to the owner's todo.
//
// # Business Rules
//   - At least one field must be provided.
//   - A provided content field is validated like Create's.
//   - The updated timestamp is bumped even if the new values equal the old.
func (service *Service) Update(context context.Context, ownerUUID, todoUUID string, patch Patch) (*Todo, error) {
	if patch.Content == nil && patch.Completed == nil {
		return nil, apperr.ValidationError("At least one field must be provided for update")
	}

	if patch.Content != nil {
		if err := validateContent(*patch.Content); err != nil {
			return nil, err
		}
	}

	item, err := service.todoRepository.FindByUUID(context, ownerUUID, todoUUID)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("todo_service_update_fetch_failed: %w", err)
	}

	if patch.Content != nil {
		item.Content = *patch.Content
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}

	if err := service.todoRepository.Update(context, item); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("todo_service_update_failed: %w", err)
	}

	return item, nil
}

// Delete removes the owner's todo.
//
// # Returns
//   - Returns [apperr.NotFound] when the todo is absent or owned by someone
//     else; a repeated delete therefore also reports NotFound.
func (service *Service) Delete(context context.Context, ownerUUID, todoUUID string) error {
	if err := service.todoRepository.Delete(context, ownerUUID, todoUUID); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("todo_service_delete_failed: %w", err)
	}
	return nil
}
