package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	applinkbio "github.com/linkbio/backend/internal/application/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
	"github.com/linkbio/backend/internal/interfaces/http/dto"
)

// PageHandler renders the server-side public profile page
type PageHandler struct {
	publicService *applinkbio.PublicProfileService
}

// NewPageHandler creates a new page handler
func NewPageHandler(publicService *applinkbio.PublicProfileService) *PageHandler {
	return &PageHandler{publicService: publicService}
}

// RegisterRoutes registers the browser-facing page routes
func (h *PageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/u/:username", h.ProfilePage)
}

// ProfilePage renders a public profile, or the not-found page for unknown
// usernames and any lookup failure
func (h *PageHandler) ProfilePage(c *gin.Context) {
	username := c.Param("username")

	view, err := h.publicService.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		status := http.StatusNotFound
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "INTERNAL_ERROR" {
			status = http.StatusInternalServerError
		}
		c.HTML(status, "notfound.html", gin.H{
			"Username": username,
		})
		return
	}

	body := dto.NewPublicProfileResponse(view.Profile, view.Links)
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Profile": body.Profile,
		"Links":   body.Links,
		"Initial": avatarInitial(body.Profile.DisplayName, body.Profile.Username),
	})
}

// avatarInitial picks the glyph shown when the avatar image is absent
func avatarInitial(displayName, username string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = username
	}
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
