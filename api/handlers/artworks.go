package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/artmart/backend/internal/artwork"
	"github.com/artmart/backend/internal/model"
	"github.com/gin-gonic/gin"
)

// ArtworkHandler proxies artwork lookups to the museum collection API.
type ArtworkHandler struct {
	artworks *artwork.Client
}

// NewArtworkHandler creates a new ArtworkHandler.
func NewArtworkHandler(artworks *artwork.Client) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks}
}

// Search handles GET /artworks - searches artworks by free-text query.
// Without a query the curated highlights are returned.
func (h *ArtworkHandler) Search(c *gin.Context) {
	results, err := h.artworks.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		sendError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to search artworks: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, results)
}

// Get handles GET /artworks/:id - returns a single artwork.
func (h *ArtworkHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Artwork ID must be a positive integer")
		return
	}

	art, err := h.artworks.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrArtworkNotFound) {
			sendError(c, http.StatusNotFound, "ARTWORK_NOT_FOUND", "Artwork "+c.Param("id")+" not found")
			return
		}
		sendError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to get artwork: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, art)
}

// RegisterRoutes registers the artwork routes on a Gin router group.
func (h *ArtworkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/artworks", h.Search)
	rg.GET("/artworks/:id", h.Get)
}
