package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linkbio/backend/internal/application/identity"
	"github.com/linkbio/backend/internal/infrastructure/config"
	"github.com/linkbio/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles signup, signin and signout
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookieCfg   config.CookieConfig
	sessionAuth gin.HandlerFunc
	limiter     gin.HandlerFunc
}

// NewAuthHandler creates a new auth handler. sessionAuth guards signout;
// limiter, when non-nil, throttles the credential endpoints.
func NewAuthHandler(
	authService *identity.AuthService,
	cookieCfg config.CookieConfig,
	sessionAuth gin.HandlerFunc,
	limiter gin.HandlerFunc,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
		sessionAuth: sessionAuth,
		limiter:     limiter,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	if h.limiter != nil {
		auth.POST("/signup", h.limiter, h.Signup)
		auth.POST("/signin", h.limiter, h.Signin)
	} else {
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
	}
	auth.POST("/signout", h.sessionAuth, h.Signout)
}

// Signup registers a new account. All four fields are required; the
// response carries the new user but no session, signin is a separate step.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), identity.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, SignupResponse{
		User: AuthUser{
			ID:        result.User.ID.String(),
			Email:     result.User.Email,
			CreatedAt: result.User.CreatedAt,
		},
	})
}

// Signin authenticates and sets the session cookie alongside the JSON
// session object
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Signin(c.Request.Context(), identity.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)

	h.OK(c, SigninResponse{
		User: AuthUser{
			ID:        result.User.ID.String(),
			Email:     result.User.Email,
			CreatedAt: result.User.CreatedAt,
		},
		Session: SessionInfo{
			AccessToken: result.Token,
			TokenType:   "bearer",
			ExpiresAt:   result.ExpiresAt,
		},
	})
}

// Signout revokes the current session token and clears the cookie
func (h *AuthHandler) Signout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identity.SignoutInput{UserID: userID}
	if claims := middleware.GetSessionClaims(c); claims != nil {
		input.TokenJTI = claims.ID
		input.TokenTTL = claims.GetRemainingTTL()
	}

	if err := h.authService.Signout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearSessionCookie(c)
	h.Success(c)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(sameSiteMode(h.cookieCfg.SameSite))
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.cookieCfg.Name, token, maxAge, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cookieCfg.SameSite))
	c.SetCookie(h.cookieCfg.Name, "", -1, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
