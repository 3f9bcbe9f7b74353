// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"net/http"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/todoro/internal/platform/middleware"
	requestutil "github.com/taibuivan/todoro/internal/platform/request"
	"github.com/taibuivan/todoro/internal/platform/respond"
	"github.com/taibuivan/todoro/internal/platform/sec"
	"github.com/taibuivan/todoro/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// It is responsible for JSON parsing, boundary validation, and mapping
// service results onto the response envelope. It contains no business logic.
type Handler struct {
	identityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{identityService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns a JWT.
//   - POST /login    : Authenticates and returns a JWT.
//   - POST /validate : Reports whether a bearer token is currently valid.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/validate", handler.validate)

	return router
}

// credentialsRequest represents the JSON payload for register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// passwordHasLetterAndDigit enforces the minimum complexity rule without
// restricting which other characters may appear.
func passwordHasLetterAndDigit(password string) bool {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// register handles POST /api/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the token and user profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// Structural rules live here; email semantics and uniqueness belong to
	// the service layer.
	validator := validate.New().
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, sec.MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength).
		Custom(FieldPassword, input.Password != "" && !passwordHasLetterAndDigit(input.Password),
			"must contain at least one letter and one number")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	auth, err := handler.identityService.Register(request.Context(), Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, "User registered successfully", auth)
}

// login handles POST /api/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token and user profile.
//   - Writes HTTP 401 Unauthorized for bad credentials, with an identical
//     body for unknown email and wrong password.
//   - Writes HTTP 429 Too Many Requests when the email is throttled.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// Only presence is checked at login. Length and complexity rules would
	// leak the registration policy to an attacker probing accounts.
	validator := validate.New().
		Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	auth, err := handler.identityService.Login(request.Context(), Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OKWithMessage(writer, "Login successful", auth)
}

// validateResponse is the payload for the token introspection endpoint.
type validateResponse struct {
	Valid bool `json:"valid"`
}

// validate handles POST /api/auth/validate requests.
//
// The endpoint always answers HTTP 200; a missing, malformed, expired, or
// orphaned token is reported as valid:false rather than an error, so other
// services can treat it as a pure predicate.
func (handler *Handler) validate(writer http.ResponseWriter, request *http.Request) {
	token, ok := middleware.BearerToken(request)
	if !ok {
		respond.OK(writer, validateResponse{Valid: false})
		return
	}

	valid := handler.identityService.Validate(request.Context(), token)
	respond.OK(writer, validateResponse{Valid: valid})
}
