package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims jwt.MapClaims
	err    error
}

func (s stubVerifier) VerifyToken(token string) (jwt.MapClaims, error) {
	return s.claims, s.err
}

func TestAuthenticate(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := GetRoleFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "admin", role)
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(stubVerifier{claims: jwt.MapClaims{"role": "admin"}})(next)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/players", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/players", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/players", nil)
		req.Header.Set("Authorization", "Basic token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		rejecting := Authenticate(stubVerifier{err: errors.New("bad token")})(next)
		req := httptest.NewRequest(http.MethodPost, "/players", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		rejecting.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetRoleFromContextWithoutClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetRoleFromContext(req.Context())
	assert.Error(t, err)
}
