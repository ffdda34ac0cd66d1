package utils

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/shared/errors"
)

func recordError(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponseWithError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorResponseWithErrorMapsAppErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"not found", errors.NewNotFoundError("subscription not found"), http.StatusNotFound, "not_found"},
		{"conflict", errors.NewConflictError("user already has an active subscription"), http.StatusConflict, "conflict"},
		{"validation", errors.NewValidationError("cancel reason is required"), http.StatusBadRequest, "validation_error"},
		{"forbidden", errors.NewForbiddenError("subscription belongs to another user"), http.StatusForbidden, "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := recordError(t, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantType, body.Error.Type)
		})
	}
}

func TestErrorResponseWithErrorDefaultsToInternal(t *testing.T) {
	w, body := recordError(t, stderrors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(errors.ErrorTypeInternal), body.Error.Type)
	// Untyped errors must not leak their text to clients.
	assert.Equal(t, "internal server error", body.Error.Message)
}
