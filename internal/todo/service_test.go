// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo_test

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todoro/internal/platform/apperr"
	"github.com/taibuivan/todoro/internal/todo"
	"github.com/taibuivan/todoro/pkg/pointer"
)

// # Test Fakes

// memoryRepository is an in-memory Repository scoped exactly like the SQL
// one: the (owner, uuid) pair is the lookup key.
type memoryRepository struct {
	todos  map[string]*todo.Todo
	nextID int64
	clock  time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		todos: map[string]*todo.Todo{},
		clock: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick advances the fake clock so created_at ordering is deterministic.
func (repository *memoryRepository) tick() time.Time {
	repository.clock = repository.clock.Add(time.Second)
	return repository.clock
}

func (repository *memoryRepository) Create(_ context.Context, item *todo.Todo) error {
	repository.nextID++
	item.ID = repository.nextID
	item.CreatedAt = repository.tick()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	repository.todos[item.UUID] = &stored
	return nil
}

func (repository *memoryRepository) ListByOwner(_ context.Context, ownerUUID string) ([]*todo.Todo, error) {
	result := make([]*todo.Todo, 0)
	for _, item := range repository.todos {
		if item.UserUUID == ownerUUID {
			copied := *item
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (repository *memoryRepository) FindByUUID(_ context.Context, ownerUUID, todoUUID string) (*todo.Todo, error) {
	item, ok := repository.todos[todoUUID]
	if !ok || item.UserUUID != ownerUUID {
		return nil, apperr.NotFound("Todo")
	}
	copied := *item
	return &copied, nil
}

func (repository *memoryRepository) Update(_ context.Context, item *todo.Todo) error {
	stored, ok := repository.todos[item.UUID]
	if !ok || stored.UserUUID != item.UserUUID {
		return apperr.NotFound("Todo")
	}
	item.UpdatedAt = repository.tick()
	copied := *item
	repository.todos[item.UUID] = &copied
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, ownerUUID, todoUUID string) error {
	item, ok := repository.todos[todoUUID]
	if !ok || item.UserUUID != ownerUUID {
		return apperr.NotFound("Todo")
	}
	delete(repository.todos, todoUUID)
	return nil
}

const (
	ownerAlice = "11111111-1111-4111-8111-111111111111"
	ownerBob   = "22222222-2222-4222-8222-222222222222"
)

func newTestService() (*todo.Service, *memoryRepository) {
	repository := newMemoryRepository()
	return todo.NewService(repository), repository
}

// # Create

/*
TestService_Create covers defaults: completed starts false and a uuid is
assigned.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", item.Content)
	assert.False(t, item.Completed)
	assert.Equal(t, ownerAlice, item.UserUUID)
	assert.NotEmpty(t, item.UUID)
	assert.NotZero(t, item.ID)
}

/*
TestService_Create_ContentPolicy pins the content rules and their messages.
*/
func TestService_Create_ContentPolicy(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name        string
		content     string
		wantErr     bool
		wantMessage string
	}{
		{"empty", "", true, "Todo content cannot be empty"},
		{"whitespace_only", "   \t  ", true, "Todo content cannot be empty"},
		{"too_long", strings.Repeat("a", 1001), true, "Todo content cannot exceed 1000 characters"},
		{"exactly_max", strings.Repeat("a", 1000), false, ""},
		{"multibyte_under_max", strings.Repeat("あ", 1000), false, ""},
		{"multibyte_over_max", strings.Repeat("あ", 1001), true, "Todo content cannot exceed 1000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), ownerAlice, tt.content)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
			assert.Equal(t, tt.wantMessage, ae.Message)
		})
	}
}

// # List

/*
TestService_List returns the owner's todos newest first and an empty
non-nil slice for an owner with none.
*/
func TestService_List(t *testing.T) {
	service, _ := newTestService()

	first, err := service.Create(context.Background(), ownerAlice, "first")
	require.NoError(t, err)
	second, err := service.Create(context.Background(), ownerAlice, "second")
	require.NoError(t, err)
	_, err = service.Create(context.Background(), ownerBob, "bob's")
	require.NoError(t, err)

	todos, err := service.List(context.Background(), ownerAlice)
	require.NoError(t, err)

	require.Len(t, todos, 2)
	assert.Equal(t, second.UUID, todos[0].UUID)
	assert.Equal(t, first.UUID, todos[1].UUID)

	empty, err := service.List(context.Background(), "33333333-3333-4333-8333-333333333333")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

// # Get

/*
TestService_Get_OwnershipScope makes another user's todo indistinguishable
from a missing one.
*/
func TestService_Get_OwnershipScope(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	// Owner sees it.
	found, err := service.Get(context.Background(), ownerAlice, item.UUID)
	require.NoError(t, err)
	assert.Equal(t, item.UUID, found.UUID)

	// Another user gets the same NotFound as for a nonexistent uuid.
	_, crossOwnerErr := service.Get(context.Background(), ownerBob, item.UUID)
	_, missingErr := service.Get(context.Background(), ownerBob, "44444444-4444-4444-8444-444444444444")

	require.Error(t, crossOwnerErr)
	require.Error(t, missingErr)

	first := apperr.As(crossOwnerErr)
	second := apperr.As(missingErr)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, http.StatusNotFound, first.HTTPStatus)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, "Todo not found", first.Message)
}

// # Update

/*
TestService_Update applies partial patches and bumps the updated timestamp.
*/
func TestService_Update(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	// 1. Content only: completed untouched.
	updated, err := service.Update(context.Background(), ownerAlice, item.UUID, todo.Patch{Content: pointer.To("Buy oat milk")})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Content)
	assert.False(t, updated.Completed)
	assert.True(t, updated.UpdatedAt.After(item.UpdatedAt))

	// 2. Completed only: content untouched.
	updated, err = service.Update(context.Background(), ownerAlice, item.UUID, todo.Patch{Completed: pointer.To(true)})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Content)
	assert.True(t, updated.Completed)

	// 3. Setting completed back to false also counts as a provided field.
	updated, err = service.Update(context.Background(), ownerAlice, item.UUID, todo.Patch{Completed: pointer.To(false)})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
}

/*
TestService_Update_EmptyPatch rejects a patch with no fields.
*/
func TestService_Update_EmptyPatch(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), ownerAlice, item.UUID, todo.Patch{})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, "At least one field must be provided for update", ae.Message)
}

/*
TestService_Update_ContentPolicy re-applies the create-time content rules.
*/
func TestService_Update_ContentPolicy(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), ownerAlice, item.UUID, todo.Patch{Content: pointer.To("")})
	require.Error(t, err)
	assert.Equal(t, "Todo content cannot be empty", apperr.As(err).Message)

	_, err = service.Update(context.Background(), ownerAlice, item.UUID, todo.Patch{Content: pointer.To(strings.Repeat("a", 1001))})
	require.Error(t, err)
	assert.Equal(t, "Todo content cannot exceed 1000 characters", apperr.As(err).Message)
}

/*
TestService_Update_CrossOwner cannot reach another user's todo.
*/
func TestService_Update_CrossOwner(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), ownerBob, item.UUID, todo.Patch{Completed: pointer.To(true)})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	// Alice's todo is untouched.
	unchanged, err := service.Get(context.Background(), ownerAlice, item.UUID)
	require.NoError(t, err)
	assert.False(t, unchanged.Completed)
}

// # Delete

/*
TestService_Delete removes the todo; a second delete reports NotFound.
*/
func TestService_Delete(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), ownerAlice, item.UUID))

	_, err = service.Get(context.Background(), ownerAlice, item.UUID)
	require.Error(t, err)

	err = service.Delete(context.Background(), ownerAlice, item.UUID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestService_Delete_CrossOwner leaves another user's todo in place.
*/
func TestService_Delete_CrossOwner(t *testing.T) {
	service, _ := newTestService()

	item, err := service.Create(context.Background(), ownerAlice, "Buy milk")
	require.NoError(t, err)

	err = service.Delete(context.Background(), ownerBob, item.UUID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	_, err = service.Get(context.Background(), ownerAlice, item.UUID)
	assert.NoError(t, err)
}
