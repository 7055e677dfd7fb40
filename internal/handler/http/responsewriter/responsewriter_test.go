package responsewriter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aywac/tawzifak1122/internal/handler/http/responsewriter"
)

func TestRecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	n, err := w.Write([]byte(`{"error":"not found"}`))

	assert.NoError(t, err)
	assert.Equal(t, 21, n)
	assert.Equal(t, http.StatusNotFound, w.StatusCode())
	assert.Equal(t, 21, w.BytesWritten())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	_, _ = w.Write([]byte("ok"))
	assert.Equal(t, http.StatusOK, w.StatusCode())
}

func TestSecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusCreated, w.StatusCode())
}
