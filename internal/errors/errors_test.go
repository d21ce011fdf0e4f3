package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Validation("name is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", fmt.Errorf("student 1: %w", ErrConflict), http.StatusConflict, "CONFLICT"},
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"bad password", ErrInvalidCredentials, http.StatusForbidden, "INVALID_CREDENTIALS"},
		{"missing token", ErrMissingCredential, http.StatusForbidden, "MISSING_TOKEN"},
		{"expired token", ErrTokenExpired, http.StatusForbidden, "TOKEN_EXPIRED"},
		{"invalid token", fmt.Errorf("%w: signature is invalid", ErrInvalidToken), http.StatusForbidden, "INVALID_TOKEN"},
		{"storage", Storage("list students", errors.New("connection refused")), http.StatusInternalServerError, "STORAGE_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestTokenExpiredIsInvalidToken(t *testing.T) {
	assert.True(t, errors.Is(ErrTokenExpired, ErrInvalidToken))
	assert.False(t, errors.Is(ErrInvalidToken, ErrTokenExpired))
}

func TestStorageErrorKeepsDetail(t *testing.T) {
	cause := errors.New("Error 1146: Table 'students' doesn't exist")
	httpErr := MapErrorToHTTP(Storage("find student", cause))

	resp := httpErr.ToErrorResponse()
	assert.Equal(t, cause.Error(), resp.Details)
	assert.Contains(t, resp.Error, "find student")
	assert.True(t, errors.Is(Storage("find student", cause), cause))
}
