package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) VerifyToken(string) (string, error) {
	return s.userID, s.err
}

func protected(verifier TokenVerifier) (http.Handler, *string) {
	var seen string
	handler := RequireAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r)
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seen
}

func TestRequireAuthMissingHeader(t *testing.T) {
	handler, _ := protected(stubVerifier{userID: "alice"})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	handler, _ := protected(stubVerifier{userID: "alice"})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	handler, _ := protected(stubVerifier{err: errors.New("bad token")})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthPassesIdentity(t *testing.T) {
	handler, seen := protected(stubVerifier{userID: "alice"})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", *seen)
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserID(req))
}
