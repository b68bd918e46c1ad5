package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linkbio/backend/internal/infrastructure/auth"
	"github.com/linkbio/backend/internal/infrastructure/logger"
	"github.com/linkbio/backend/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionClaimsKey = "session_claims"
	SessionUserIDKey = "session_user_id"
	SessionEmailKey  = "session_email"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// SessionAuthConfig holds configuration for the session middleware
type SessionAuthConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional; signed-out tokens are rejected when set
	TokenBlacklist auth.TokenBlacklist
	// CookieName is the session cookie checked when no Authorization header
	// is present
	CookieName string
	// Logger for middleware logging
	Logger *zap.Logger
}

// SessionAuth authenticates requests from the Authorization header or the
// session cookie. The 401 fires before any handler parses the body.
func SessionAuth(cfg SessionAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c, cfg.CookieName)
		if err != nil {
			abortUnauthorized(c, cfg, err, "No session token")
			return
		}

		claims, err := cfg.JWTService.ValidateSessionToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Session token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: a blacklist outage must not take the API down
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if blacklisted {
				abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		c.Set(SessionClaimsKey, claims)
		c.Set(SessionUserIDKey, claims.UserID)
		c.Set(SessionEmailKey, claims.Email)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractToken reads the bearer token, falling back to the session cookie
func extractToken(c *gin.Context, cookieName string) (string, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			return "", auth.ErrInvalidToken
		}
		token := strings.TrimPrefix(authHeader, BearerPrefix)
		if token == "" {
			return "", auth.ErrInvalidToken
		}
		return token, nil
	}

	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token, nil
		}
	}
	return "", auth.ErrInvalidToken
}

func abortUnauthorized(c *gin.Context, cfg SessionAuthConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Debug("Session authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path))
	}

	body := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		body = "Session has expired"
	case auth.ErrTokenBlacklisted:
		body = "Session has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(body))
}

// GetSessionClaims retrieves the session claims from gin.Context
func GetSessionClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(SessionClaimsKey); exists {
		if sessionClaims, ok := claims.(*auth.Claims); ok {
			return sessionClaims
		}
	}
	return nil
}

// GetSessionUserID retrieves the authenticated user ID from gin.Context,
// empty when the request did not pass SessionAuth
func GetSessionUserID(c *gin.Context) string {
	return c.GetString(SessionUserIDKey)
}

// GetSessionEmail retrieves the authenticated email from gin.Context
func GetSessionEmail(c *gin.Context) string {
	return c.GetString(SessionEmailKey)
}
