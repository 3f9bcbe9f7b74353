// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todoro/internal/platform/middleware"
	requestutil "github.com/taibuivan/todoro/internal/platform/request"
	"github.com/taibuivan/todoro/internal/platform/sec"
)

// fakeVerifier returns a fixed claims/error pair, standing in for the codec.
type fakeVerifier struct {
	claims *sec.Claims
	err    error
}

func (verifier *fakeVerifier) Verify(string) (*sec.Claims, error) {
	return verifier.claims, verifier.err
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// gate runs one request through Authenticate with the given verifier and header.
func gate(t *testing.T, verifier middleware.TokenVerifier, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthenticate_RejectionMessages pins the per-failure 401 bodies, which
clients assert on.
*/
func TestAuthenticate_RejectionMessages(t *testing.T) {
	valid := &fakeVerifier{claims: &sec.Claims{UserID: "u1"}}

	tests := []struct {
		name          string
		verifier      middleware.TokenVerifier
		authorization string
		wantMessage   string
	}{
		{"missing_header", valid, "", "No token provided"},
		{"wrong_scheme", valid, "Basic dXNlcjpwYXNz", "No token provided"},
		{"bearer_no_token", valid, "Bearer ", "No token provided"},
		{"expired", &fakeVerifier{err: sec.ErrTokenExpired}, "Bearer x", "Token expired"},
		{"malformed", &fakeVerifier{err: sec.ErrTokenMalformed}, "Bearer x", "Invalid token"},
		{"wrong_audience", &fakeVerifier{err: sec.ErrTokenAudience}, "Bearer x", "Invalid token"},
		{"unexpected_error", &fakeVerifier{err: assert.AnError}, "Bearer x", "Authentication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := gate(t, tt.verifier, tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			var body errorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}
}

/*
TestAuthenticate_InjectsClaims verifies downstream handlers see the verified
identity in the request context.
*/
func TestAuthenticate_InjectsClaims(t *testing.T) {
	verifier := &fakeVerifier{claims: &sec.Claims{UserID: "user-uuid-1", Email: "tai@example.com"}}

	var seen *sec.Claims
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = requestutil.Claims(request)
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	request.Header.Set("Authorization", "Bearer a-valid-token")

	recorder := httptest.NewRecorder()
	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-uuid-1", seen.UserID)
	assert.Equal(t, "tai@example.com", seen.Email)
}

/*
TestBearerToken covers header parsing edge cases.
*/
func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing", "", "", false},
		{"lowercase_scheme", "bearer abc", "", false},
		{"basic_auth", "Basic dXNlcg==", "", false},
		{"empty_token", "Bearer    ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			token, ok := middleware.BearerToken(request)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
