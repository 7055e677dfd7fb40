package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.JSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSafeErrorPassesValidationMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"required", errors.New("title is required")},
		{"invalid", errors.New("invalid post type")},
		{"not found", errors.New("listing not found")},
		{"must be", errors.New("rating must be between 1 and 5")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.SafeError(rec, http.StatusBadRequest, tt.err)
			assert.Equal(t, tt.err.Error(), decodeError(t, rec))
		})
	}
}

func TestSafeErrorMasksInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, http.StatusBadGateway, errors.New("rpc error: connection refused to 10.0.0.3:443"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec))
}

func TestSafeErrorMasksSafeMessageOn500(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, http.StatusInternalServerError, errors.New("listing not found"))

	assert.Equal(t, "internal server error", decodeError(t, rec))
}

func TestSafeErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := respond.NewAppError(http.StatusConflict, "profile already exists", errors.New("firestore: AlreadyExists"))
	respond.SafeError(rec, http.StatusInternalServerError, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "profile already exists", decodeError(t, rec))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := respond.NewAppError(http.StatusBadRequest, "bad input", cause)
	assert.ErrorIs(t, err, cause)
}
