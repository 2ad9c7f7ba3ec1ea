package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avikram/studysync/internal/domain/catalog"
	"github.com/avikram/studysync/internal/infrastructure/logging"
	"github.com/avikram/studysync/internal/shared/types"
)

// Handlers contains all HTTP handlers for the session catalog
type Handlers struct {
	catalog *catalog.Manager
	logger  *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(cat *catalog.Manager, logger *logging.Logger) *Handlers {
	return &Handlers{
		catalog: cat,
		logger:  logger,
	}
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "studysync",
		"sessions": h.catalog.Stats(),
	})
}

// ListSessions returns all sessions sorted by date ascending
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.catalog.List(c.Request.Context())
	if sessions == nil {
		sessions = []types.Session{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Session found",
		"sessions": sessions,
	})
}

// CreateSession creates a new session from a draft
func (h *Handlers) CreateSession(c *gin.Context) {
	var draft types.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.catalog.Create(c.Request.Context(), draft)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session Created",
		"session": session,
	})
}

// UpdateSession replaces an existing session's fields
func (h *Handlers) UpdateSession(c *gin.Context) {
	var draft types.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.catalog.Update(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		h.fail(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Session Updated",
		"updatedSession": session,
	})
}

// DeleteSession removes a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session deleted successfully",
		"deleted": true,
	})
}

// ToggleSession flips a session's bookmark flag
func (h *Handlers) ToggleSession(c *gin.Context) {
	session, err := h.catalog.ToggleBookmark(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "toggle", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Session toggled successfully",
		"updatedSession": session,
	})
}

// MarkSession transitions a session to completed
func (h *Handlers) MarkSession(c *gin.Context) {
	session, err := h.catalog.MarkComplete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "mark", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Session marked complete",
		"updatedSession": session,
	})
}

// fail maps catalog errors to HTTP status codes
func (h *Handlers) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidDraft):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("session operation failed",
			zap.String("op", op),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
