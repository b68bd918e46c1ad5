package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkbio/backend/internal/infrastructure/auth"
	"github.com/linkbio/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	cfg := config.JWTConfig{
		Secret:            "test-secret-key-at-least-32-chars",
		SessionExpiration: time.Hour,
		Issuer:            "test-issuer",
	}
	return auth.NewJWTService(cfg)
}

func newSessionRouter(cfg SessionAuthConfig) *gin.Engine {
	router := gin.New()
	router.Use(SessionAuth(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetSessionUserID(c),
			"email":   GetSessionEmail(c),
		})
	})
	return router
}

func TestSessionAuth_BearerToken(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()
	session, err := jwtService.GenerateSessionToken(userID, "alice@x.com")
	require.NoError(t, err)

	router := newSessionRouter(SessionAuthConfig{JWTService: jwtService})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), "alice@x.com")
}

func TestSessionAuth_Cookie(t *testing.T) {
	jwtService := newTestJWTService()
	session, err := jwtService.GenerateSessionToken(uuid.New(), "alice@x.com")
	require.NoError(t, err)

	router := newSessionRouter(SessionAuthConfig{
		JWTService: jwtService,
		CookieName: "session_token",
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: session.Token})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuth_HeaderWinsOverCookie(t *testing.T) {
	jwtService := newTestJWTService()
	session, err := jwtService.GenerateSessionToken(uuid.New(), "alice@x.com")
	require.NoError(t, err)

	router := newSessionRouter(SessionAuthConfig{
		JWTService: jwtService,
		CookieName: "session_token",
	})

	// A malformed header is rejected even when a valid cookie is present
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	req.AddCookie(&http.Cookie{Name: "session_token", Value: session.Token})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuth_MissingToken(t *testing.T) {
	router := newSessionRouter(SessionAuthConfig{JWTService: newTestJWTService()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Authentication required"}`, rec.Body.String())
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	router := newSessionRouter(SessionAuthConfig{JWTService: newTestJWTService()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuth_BlacklistedToken(t *testing.T) {
	jwtService := newTestJWTService()
	session, err := jwtService.GenerateSessionToken(uuid.New(), "alice@x.com")
	require.NoError(t, err)

	claims, err := jwtService.ValidateSessionToken(session.Token)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	router := newSessionRouter(SessionAuthConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "test-secret-key-at-least-32-chars",
		SessionExpiration: -time.Minute,
		Issuer:            "test-issuer",
	}
	jwtService := auth.NewJWTService(cfg)
	session, err := jwtService.GenerateSessionToken(uuid.New(), "alice@x.com")
	require.NoError(t, err)

	router := newSessionRouter(SessionAuthConfig{JWTService: jwtService})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}
