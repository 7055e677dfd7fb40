package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
)

func TestCursorRoundTrip(t *testing.T) {
	orig := pagination.Cursor{
		ID:        "doc-42",
		CreatedAt: time.Date(2025, 3, 1, 8, 30, 0, 123456789, time.UTC),
	}

	token := orig.Encode()
	got, err := pagination.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, got.ID)
	assert.True(t, orig.CreatedAt.Equal(got.CreatedAt))
}

func TestCursorOpaque(t *testing.T) {
	token := pagination.Cursor{ID: "a", CreatedAt: time.Now()}.Encode()
	// Tokens are URL-safe and carry no raw field separators.
	assert.NotContains(t, token, ":")
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"wrong prefix", "bm90LWEtY3Vyc29y"},
		{"missing fields", "Y3Vyc29yOnYx"},
		{"bad timestamp", "Y3Vyc29yOnYxOmFiYzpkb2M="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.Decode(tt.token)
			assert.ErrorIs(t, err, pagination.ErrInvalidCursor)
		})
	}
}

func TestFromTimestampHasNoID(t *testing.T) {
	ts := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)
	c := pagination.FromTimestamp(ts)
	assert.Empty(t, c.ID)

	got, err := pagination.Decode(c.Encode())
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.True(t, ts.Equal(got.CreatedAt))
}

func TestClampLimit(t *testing.T) {
	cfg := pagination.DefaultConfig()
	assert.Equal(t, 16, cfg.ClampLimit(0, 16))
	assert.Equal(t, 16, cfg.ClampLimit(-3, 16))
	assert.Equal(t, 40, cfg.ClampLimit(40, 16))
	assert.Equal(t, cfg.MaxLimit, cfg.ClampLimit(1000, 16))
}
