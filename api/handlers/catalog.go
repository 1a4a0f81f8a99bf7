package handlers

import (
	"net/http"

	"github.com/artmart/backend/internal/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the static product catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// Frames handles GET /frames - lists the available frame styles.
func (h *CatalogHandler) Frames(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Frames())
}

// Mats handles GET /mats - lists the available mat colors.
func (h *CatalogHandler) Mats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Mats())
}

// Shipping handles GET /shipping - returns the shipping offer.
func (h *CatalogHandler) Shipping(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ShippingOffer())
}

// RegisterRoutes registers the catalog routes on a Gin router group.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/frames", h.Frames)
	rg.GET("/mats", h.Mats)
	rg.GET("/shipping", h.Shipping)
}
