package handler

import (
	"github.com/gin-gonic/gin"

	applinkbio "github.com/linkbio/backend/internal/application/linkbio"
	"github.com/linkbio/backend/internal/interfaces/http/dto"
)

// ProfileHandler handles the signed-in owner's profile endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *applinkbio.ProfileService
	sessionAuth    gin.HandlerFunc
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *applinkbio.ProfileService, sessionAuth gin.HandlerFunc) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		sessionAuth:    sessionAuth,
	}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.sessionAuth, h.Get)
	rg.POST("/profile", h.sessionAuth, h.Update)
}

// UpdateProfileRequest is the request body for profile updates. Pointer
// fields distinguish "absent, leave unchanged" from "present but empty":
// an explicit empty bio or avatarUrl clears the field.
type UpdateProfileRequest struct {
	Username        *string `json:"username"`
	DisplayName     *string `json:"displayName"`
	Bio             *string `json:"bio"`
	AvatarURL       *string `json:"avatarUrl"`
	ThemeColor      *string `json:"themeColor"`
	BackgroundColor *string `json:"backgroundColor"`
}

// Get returns the caller's profile row, or the bare account id and email
// for accounts that never got a profile row
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if view.Profile == nil {
		h.OK(c, dto.AccountStub{ID: view.AccountID, Email: view.Email})
		return
	}
	h.OK(c, dto.NewProfileRow(view.Profile))
}

// Update applies a partial update and returns the resulting row
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, applinkbio.UpdateProfileInput{
		Username:        req.Username,
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		AvatarURL:       req.AvatarURL,
		ThemeColor:      req.ThemeColor,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewProfileRow(profile))
}
