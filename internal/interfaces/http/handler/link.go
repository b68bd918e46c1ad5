package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applinkbio "github.com/linkbio/backend/internal/application/linkbio"
	"github.com/linkbio/backend/internal/interfaces/http/dto"
)

// LinkHandler handles the owner's link endpoints plus anonymous click
// tracking
type LinkHandler struct {
	BaseHandler
	linkService *applinkbio.LinkService
	sessionAuth gin.HandlerFunc
	limiter     gin.HandlerFunc
}

// NewLinkHandler creates a new link handler. limiter, when non-nil,
// throttles the anonymous click tracker.
func NewLinkHandler(linkService *applinkbio.LinkService, sessionAuth gin.HandlerFunc, limiter gin.HandlerFunc) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		sessionAuth: sessionAuth,
		limiter:     limiter,
	}
}

// RegisterRoutes registers the link routes. The reorder route precedes the
// :id routes so gin does not treat "reorder" as an id.
func (h *LinkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	links := rg.Group("/links", h.sessionAuth)
	links.GET("", h.List)
	links.POST("", h.Create)
	links.PUT("/reorder", h.Reorder)
	links.PUT("/:id", h.Update)
	links.DELETE("/:id", h.Delete)

	if h.limiter != nil {
		rg.POST("/track-click", h.limiter, h.TrackClick)
	} else {
		rg.POST("/track-click", h.TrackClick)
	}
}

// CreateLinkRequest is the request body for creating a link
type CreateLinkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// UpdateLinkRequest is the request body for partial link updates, with the
// same pointer presence convention as profile updates
type UpdateLinkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	OrderIndex  *int    `json:"orderIndex"`
}

// ReorderRequest is the request body for reordering links
type ReorderRequest struct {
	LinkIDs []uuid.UUID `json:"linkIds"`
}

// TrackClickRequest is the request body for click tracking
type TrackClickRequest struct {
	LinkID string `json:"linkId"`
}

// List returns the caller's links ordered by position
func (h *LinkHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	links, err := h.linkService.ListLinks(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewLinkRows(links))
}

// Create inserts a link at the end of the caller's list
func (h *LinkHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkService.CreateLink(c.Request.Context(), userID, applinkbio.CreateLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewLinkRow(link))
}

// Update applies a partial update scoped to the caller's own rows. An id
// the caller does not own matches nothing; the response is still 200 with
// a null body.
func (h *LinkHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid link id")
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkService.UpdateLink(c.Request.Context(), userID, linkID, applinkbio.UpdateLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		IsActive:    req.IsActive,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if link == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	h.OK(c, dto.NewLinkRow(link))
}

// Delete removes a link scoped to the caller's own rows; the response is
// {"success": true} whether or not anything matched
func (h *LinkHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid link id")
		return
	}

	if err := h.linkService.DeleteLink(c.Request.Context(), userID, linkID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c)
}

// Reorder sets each listed link's position to its index in the list
func (h *LinkHandler) Reorder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.linkService.ReorderLinks(c.Request.Context(), userID, req.LinkIDs); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c)
}

// TrackClick bumps a link's click counter. It needs no session; once a
// linkId is supplied the response is success no matter what the increment
// does, a malformed id included.
func (h *LinkHandler) TrackClick(c *gin.Context) {
	var req TrackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.LinkID == "" {
		h.BadRequest(c, "linkId is required")
		return
	}

	h.linkService.TrackClick(c.Request.Context(), req.LinkID)
	h.Success(c)
}
