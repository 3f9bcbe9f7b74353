// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/todoro/internal/platform/apperr"
	requestutil "github.com/taibuivan/todoro/internal/platform/request"
	"github.com/taibuivan/todoro/internal/platform/respond"
	"github.com/taibuivan/todoro/pkg/uuid"
)

// Handler implements the todo HTTP endpoints.
//
// All routes require an authenticated user; the server mounts this router
// behind the token gate, and handlers read the owner's UUID from the
// request context.
type Handler struct {
	todoService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{todoService: service}
}

// Routes returns a [chi.Router] with all todo routes behind the given
// authentication middleware.
//
// # Endpoints
//   - POST   /     : Creates a todo.
//   - GET    /     : Lists the caller's todos, newest first.
//   - GET    /{id} : Fetches one todo by UUID.
//   - PUT    /{id} : Partially updates a todo.
//   - DELETE /{id} : Deletes a todo.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(authenticate)

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// todoID extracts and validates the {id} route parameter.
func todoID(request *http.Request) (string, error) {
	id := requestutil.Param(request, "id")
	if !uuid.IsValid(id) {
		return "", apperr.ValidationError("Invalid todo ID format")
	}
	return id, nil
}

// createRequest represents the JSON payload for todo creation.
type createRequest struct {
	Content string `json:"content"`
}

// create handles POST /api/todos requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the new todo.
//   - Writes HTTP 400 Bad Request if the content policy fails.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerUUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.todoService.Create(request.Context(), ownerUUID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Todo created successfully", item.View())
}

// list handles GET /api/todos requests.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerUUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	todos, err := handler.todoService.List(request.Context(), ownerUUID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Views(todos))
}

// get handles GET /api/todos/{id} requests.
//
// # Returns
//   - Writes HTTP 404 Not Found when the todo is absent or not the caller's.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerUUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := todoID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.todoService.Get(request.Context(), ownerUUID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item.View())
}

// updateRequest represents the JSON payload for partial updates. Pointer
// fields distinguish "absent" from zero values.
type updateRequest struct {
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

// update handles PUT /api/todos/{id} requests.
//
// # Returns
//   - Writes HTTP 200 OK with the updated todo.
//   - Writes HTTP 400 Bad Request when no field is provided or the content
//     policy fails.
//   - Writes HTTP 404 Not Found when the todo is absent or not the caller's.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerUUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := todoID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.todoService.Update(request.Context(), ownerUUID, id, Patch{
		Content:   input.Content,
		Completed: input.Completed,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKWithMessage(writer, "Todo updated successfully", item.View())
}

// remove handles DELETE /api/todos/{id} requests.
//
// # Returns
//   - Writes HTTP 204 No Content on success.
//   - Writes HTTP 404 Not Found when the todo is absent or not the caller's.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerUUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := todoID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.todoService.Delete(request.Context(), ownerUUID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
