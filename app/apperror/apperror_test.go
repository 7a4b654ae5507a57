package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("no token", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not the owner", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("Post not found", nil), http.StatusNotFound},
		{"validation", NewValidationError("title is required", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("email taken", nil), http.StatusConflict},
		{"internal", NewInternalError("Server Error", nil), http.StatusInternalServerError},
		{"unknown", New(UnknownError, "?", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestErrorChain(t *testing.T) {
	cause := errors.New("key not found")
	err := NewNotFoundError("Post not found", cause)

	assert.Equal(t, "Post not found: key not found", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsAuthError(wrapped))
	assert.False(t, IsConflict(wrapped))
}

func TestWriteError(t *testing.T) {
	t.Run("app error renders its status and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, NewValidationError("title is required", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "title is required", body["error"])
	})

	t.Run("plain error falls through as 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, errors.New("disk on fire"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "disk on fire", body["error"])
	})
}
