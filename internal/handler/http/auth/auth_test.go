package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, sub string, admin bool, method jwt.SigningMethod) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub":   sub,
		"admin": admin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestParseToken(t *testing.T) {
	id, err := auth.ParseToken(mintToken(t, "uid-1", true, jwt.SigningMethodHS256), []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.Subject)
	assert.True(t, id.Admin)
}

func TestParseTokenRejectsBadSecret(t *testing.T) {
	_, err := auth.ParseToken(mintToken(t, "uid-1", false, jwt.SigningMethodHS256), []byte("other-secret"))
	assert.Error(t, err)
}

func TestParseTokenRejectsMissingSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ParseToken(signed, []byte(testSecret))
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "uid-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ParseToken(signed, []byte(testSecret))
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var seen auth.Identity
	h := auth.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-2", false, jwt.SigningMethodHS256))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-2", seen.Subject)
}

func TestRequireRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	h := auth.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	h := auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodDelete, "/reports/r1", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-3", false, jwt.SigningMethodHS256))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-3", true, jwt.SigningMethodHS256))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCanManage(t *testing.T) {
	assert.True(t, auth.Identity{Subject: "uid-1"}.CanManage("uid-1"))
	assert.False(t, auth.Identity{Subject: "uid-1"}.CanManage("uid-2"))
	assert.True(t, auth.Identity{Subject: "uid-1", Admin: true}.CanManage("uid-2"))
	assert.False(t, auth.Identity{}.CanManage(""))
}
