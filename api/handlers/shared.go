package handlers

import (
	"net/http"

	"github.com/artmart/backend/internal/collab"
	"github.com/gin-gonic/gin"
)

// SharedFramingHandler exposes the collaborative framing sessions over
// WebSocket endpoints.
type SharedFramingHandler struct {
	collab *collab.Handler
}

// NewSharedFramingHandler creates a new SharedFramingHandler.
func NewSharedFramingHandler(h *collab.Handler) *SharedFramingHandler {
	return &SharedFramingHandler{collab: h}
}

// Create handles WS /framing/shared/create - opens a session as host.
func (h *SharedFramingHandler) Create(c *gin.Context) {
	h.collab.ServeHost(c.Writer, c.Request)
}

// Join handles WS /framing/shared/join/:sessionId - joins a session as
// guest. An unknown session id is rejected before the upgrade.
func (h *SharedFramingHandler) Join(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Session ID is required")
		return
	}
	h.collab.ServeGuest(c.Writer, c.Request, sessionID)
}

// RegisterRoutes registers the shared framing routes on a Gin router group.
func (h *SharedFramingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shared := rg.Group("/framing/shared")
	{
		shared.GET("/create", h.Create)
		shared.GET("/join/:sessionId", h.Join)
	}
}
