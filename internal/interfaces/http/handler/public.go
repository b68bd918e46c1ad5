package handler

import (
	"github.com/gin-gonic/gin"

	applinkbio "github.com/linkbio/backend/internal/application/linkbio"
	"github.com/linkbio/backend/internal/interfaces/http/dto"
)

// PublicHandler handles the unauthenticated public profile endpoint
type PublicHandler struct {
	BaseHandler
	publicService *applinkbio.PublicProfileService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(publicService *applinkbio.PublicProfileService) *PublicHandler {
	return &PublicHandler{publicService: publicService}
}

// RegisterRoutes registers the public routes
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/public/profile/:username", h.GetProfile)
}

// GetProfile returns the public subset of a profile and its active links
func (h *PublicHandler) GetProfile(c *gin.Context) {
	view, err := h.publicService.GetPublicProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewPublicProfileResponse(view.Profile, view.Links))
}
