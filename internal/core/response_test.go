// AngelaMos | 2026
// response_test.go

package core_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/core"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	core.Message(rec, http.StatusOK, "Logout successful.")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"msg": "Logout successful."}, decodeBody(t, rec))
}

func TestJSONErrorUsesAppErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"not found", core.NotFoundError("Event not found"), http.StatusNotFound, "NOT_FOUND", "Event not found"},
		{"conflict", core.ConflictError("You have already donated"), http.StatusConflict, "CONFLICT", "You have already donated"},
		{"duplicate", core.DuplicateError("taken"), http.StatusConflict, "DUPLICATE", "taken"},
		{"token expired", core.TokenExpiredError(), http.StatusForbidden, "TOKEN_EXPIRED", "Invalid or expired token."},
		{"wrapped", fmt.Errorf("outer: %w", core.ForbiddenError("nope")), http.StatusForbidden, "FORBIDDEN", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			core.JSONError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.msg, body["msg"])
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestJSONErrorHidesPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	core.JSONError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Something went wrong", body["msg"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	core.Unauthorized(rec, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", decodeBody(t, rec)["msg"])
}

func TestNoContentWritesNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	core.NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestAppErrorUnwraps(t *testing.T) {
	err := core.NotFoundError("gone")

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.True(t, core.IsAppError(fmt.Errorf("ctx: %w", err)))
	assert.False(t, core.IsAppError(core.ErrNotFound))
	assert.Equal(t, "gone: resource not found", err.Error())
}
