package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linkbio/backend/internal/domain/shared"
	"github.com/linkbio/backend/internal/interfaces/http/dto"
	"github.com/linkbio/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getUserID extracts the authenticated user ID set by the session middleware
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetSessionUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// OK sends the raw body with a 200. Row responses go through here.
func (h *BaseHandler) OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Success sends {"success": true}
func (h *BaseHandler) Success(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse())
}

// BadRequest sends a 400 with the error message
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// NotFound sends a 404 with the error message
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))
}

// Unauthorized sends a 401 with the error message
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}

// InternalError sends a 500 with the error message
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(message))
}

// HandleError converts application errors to HTTP responses. Domain errors
// map their code to a status; anything else is a 500 whose cause stays in
// the server logs only.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponse(domainErr.Message))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
