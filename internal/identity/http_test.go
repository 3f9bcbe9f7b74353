// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/todoro/internal/identity"
	"github.com/taibuivan/todoro/internal/platform/sec"
)

// # HTTP Fixtures

func newTestHandler(t *testing.T) (http.Handler, *memoryUserRepository) {
	t.Helper()

	codec, err := sec.NewCodec("unit-test-secret", time.Hour, "user-service", "todo-app")
	require.NoError(t, err)

	users := newMemoryUserRepository()
	service := identity.NewService(users, newMemoryLoginAttempts(), codec, sec.NewHasher(bcrypt.MinCost), testLogger())
	return identity.NewHandler(service).Routes(), users
}

func postJSON(t *testing.T, handler http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			UUID  string `json:"uuid"`
			Email string `json:"email"`
		} `json:"user"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeAuth(t *testing.T, recorder *httptest.ResponseRecorder) authEnvelope {
	t.Helper()
	var envelope authEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

// # Register Endpoint

/*
TestHTTP_Register pins the success envelope: 201, message, token, user view,
and no password material anywhere in the body.
*/
func TestHTTP_Register(t *testing.T) {
	handler, _ := newTestHandler(t)

	recorder := postJSON(t, handler, "/register", map[string]string{
		"email":    "tai@example.com",
		"password": "secret123",
	}, nil)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	envelope := decodeAuth(t, recorder)
	assert.True(t, envelope.Success)
	assert.Equal(t, "User registered successfully", envelope.Message)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "tai@example.com", envelope.Data.User.Email)
	assert.NotEmpty(t, envelope.Data.User.UUID)

	assert.NotContains(t, recorder.Body.String(), "secret123")
	assert.NotContains(t, recorder.Body.String(), "password")
}

/*
TestHTTP_Register_Validation covers the structural rules enforced at the
boundary before the service runs.
*/
func TestHTTP_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing_email", "", "secret123"},
		{"missing_password", "tai@example.com", ""},
		{"short_password", "tai@example.com", "abc12"},
		{"no_digit_password", "tai@example.com", "onlyletters"},
		{"no_letter_password", "tai@example.com", "12345678"},
		{"overlong_email", fmt.Sprintf("%0255d@example.com", 1), "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)

			recorder := postJSON(t, handler, "/register", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			}, nil)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			envelope := decodeAuth(t, recorder)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.NotEmpty(t, envelope.Error.Message)
		})
	}
}

/*
TestHTTP_Register_InvalidJSON rejects an unparseable body with 400.
*/
func TestHTTP_Register_InvalidJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	request := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeAuth(t, recorder)
	assert.False(t, envelope.Success)
}

/*
TestHTTP_Register_Duplicate returns 409 with the contract message.
*/
func TestHTTP_Register_Duplicate(t *testing.T) {
	handler, _ := newTestHandler(t)
	credentials := map[string]string{"email": "tai@example.com", "password": "secret123"}

	first := postJSON(t, handler, "/register", credentials, nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler, "/register", credentials, nil)
	assert.Equal(t, http.StatusConflict, second.Code)

	envelope := decodeAuth(t, second)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "Email already registered", envelope.Error.Message)
}

// # Login Endpoint

/*
TestHTTP_Login covers the round-trip: register, then login with the same
credentials, and confirm both tokens name the same subject.
*/
func TestHTTP_Login(t *testing.T) {
	handler, _ := newTestHandler(t)
	credentials := map[string]string{"email": "tai@example.com", "password": "secret123"}

	registered := decodeAuth(t, postJSON(t, handler, "/register", credentials, nil))

	recorder := postJSON(t, handler, "/login", credentials, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	envelope := decodeAuth(t, recorder)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Login successful", envelope.Message)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, registered.Data.User.UUID, envelope.Data.User.UUID)
}

/*
TestHTTP_Login_WrongPassword returns 401 with the generic message.
*/
func TestHTTP_Login_WrongPassword(t *testing.T) {
	handler, _ := newTestHandler(t)
	postJSON(t, handler, "/register", map[string]string{"email": "tai@example.com", "password": "secret123"}, nil)

	recorder := postJSON(t, handler, "/login", map[string]string{
		"email":    "tai@example.com",
		"password": "wrong-password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	envelope := decodeAuth(t, recorder)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "Invalid credentials", envelope.Error.Message)
}

/*
TestHTTP_Login_MissingFields fails structural validation with 400 rather
than reaching the credential check.
*/
func TestHTTP_Login_MissingFields(t *testing.T) {
	handler, _ := newTestHandler(t)

	recorder := postJSON(t, handler, "/login", map[string]string{"email": "tai@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// # Validate Endpoint

/*
TestHTTP_Validate always answers 200 and reports validity as data.
*/
func TestHTTP_Validate(t *testing.T) {
	handler, users := newTestHandler(t)
	credentials := map[string]string{"email": "tai@example.com", "password": "secret123"}
	registered := decodeAuth(t, postJSON(t, handler, "/register", credentials, nil))

	type validEnvelope struct {
		Success bool `json:"success"`
		Data    struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}

	check := func(headers map[string]string) validEnvelope {
		recorder := postJSON(t, handler, "/validate", nil, headers)
		require.Equal(t, http.StatusOK, recorder.Code)
		var envelope validEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		return envelope
	}

	// 1. A real token validates.
	result := check(map[string]string{"Authorization": "Bearer " + registered.Data.Token})
	assert.True(t, result.Data.Valid)

	// 2. No header at all is valid:false, not an error.
	result = check(nil)
	assert.False(t, result.Data.Valid)

	// 3. Garbage is valid:false.
	result = check(map[string]string{"Authorization": "Bearer garbage"})
	assert.False(t, result.Data.Valid)

	// 4. A token for a deleted account is valid:false.
	delete(users.users, "tai@example.com")
	result = check(map[string]string{"Authorization": "Bearer " + registered.Data.Token})
	assert.False(t, result.Data.Valid)
}
