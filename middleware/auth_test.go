package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineerTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateEngineerToken("alice", "backend", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, UserTypeEngineer, claims.UserType)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "backend", claims.Team)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateEngineerToken("alice", "backend", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateAdminToken(time.Hour)
	require.NoError(t, err)

	SetJWTSecret("other-secret")
	defer SetJWTSecret("test-secret")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestRequireAdminBlocksEngineers(t *testing.T) {
	SetJWTSecret("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(RequireAdmin(next))

	engineerToken, err := GenerateEngineerToken("alice", "backend", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+engineerToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := GenerateAdminToken(time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
