package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/artmart/backend/internal/artwork"
	"github.com/artmart/backend/internal/catalog"
	"github.com/artmart/backend/internal/model"
	"github.com/artmart/backend/internal/payment"
	"github.com/artmart/backend/internal/pricing"
	"github.com/artmart/backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionCookie is the cookie carrying the shopper's cart session id.
const sessionCookie = "sessionId"

// CartHandler handles the shopping cart and checkout.
type CartHandler struct {
	repo     *repository.CartRepository
	catalog  *catalog.Catalog
	artworks *artwork.Client
	payments *payment.Client
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(repo *repository.CartRepository, cat *catalog.Catalog, artworks *artwork.Client, payments *payment.Client) *CartHandler {
	return &CartHandler{
		repo:     repo,
		catalog:  cat,
		artworks: artworks,
		payments: payments,
	}
}

// AddCartItemRequest represents the request body for adding a cart item.
type AddCartItemRequest struct {
	ArtworkID  int64           `json:"artworkId"`
	PrintSize  model.PrintSize `json:"printSize"`
	FrameStyle string          `json:"frameStyle"`
	FrameWidth int             `json:"frameWidth"`
	MatColor   string          `json:"matColor"`
	MatWidth   int             `json:"matWidth"`
}

// CheckoutResponse carries the created payment intent back to the client.
type CheckoutResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Amount          int    `json:"amount"`
	Currency        string `json:"currency"`
}

// session returns the shopper's session id from the cookie, if present
// and known.
func (h *CartHandler) session(c *gin.Context) (string, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		return "", false
	}
	exists, err := h.repo.SessionExists(c.Request.Context(), id)
	if err != nil || !exists {
		return "", false
	}
	return id, true
}

// requireSession returns the shopper's session id or answers 403. Only
// GET /cart creates sessions; every other cart route requires the cookie.
func (h *CartHandler) requireSession(c *gin.Context) (string, bool) {
	sessionID, ok := h.session(c)
	if !ok {
		sendError(c, http.StatusForbidden, "FORBIDDEN", "No cart session")
		return "", false
	}
	return sessionID, true
}

// List handles GET /cart - lists the cart items. A shopper without a
// cookie gets a fresh session and the cookie; a cookie naming an unknown
// session is rejected.
func (h *CartHandler) List(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		if err := h.repo.CreateSession(c.Request.Context(), sessionID); err != nil {
			sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create cart session: "+err.Error())
			return
		}
	} else {
		exists, err := h.repo.SessionExists(c.Request.Context(), sessionID)
		if err != nil {
			sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up cart session: "+err.Error())
			return
		}
		if !exists {
			sendError(c, http.StatusForbidden, "FORBIDDEN", "No cart session")
			return
		}
	}
	c.SetCookie(sessionCookie, sessionID, 0, "/", "", false, true)

	items, err := h.repo.ListItems(c.Request.Context(), sessionID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list cart items: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

// Add handles POST /cart - puts a framed artwork into the cart. The price
// is computed server side from the catalog.
func (h *CartHandler) Add(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	fields := map[string]string{}
	if req.ArtworkID <= 0 {
		fields["artworkId"] = "must be a positive integer"
	}
	if !req.PrintSize.Valid() {
		fields["printSize"] = "must be one of S, M, L"
	}
	frame, ok := h.catalog.Frame(req.FrameStyle)
	if !ok {
		fields["frameStyle"] = "unknown frame style"
	}
	if req.FrameWidth < model.MinFrameWidth || req.FrameWidth > model.MaxFrameWidth {
		fields["frameWidth"] = fmt.Sprintf("must be between %d and %d", model.MinFrameWidth, model.MaxFrameWidth)
	}
	if req.MatColor != "" {
		if _, ok := h.catalog.Mat(req.MatColor); !ok {
			fields["matColor"] = "unknown mat color"
		}
	}
	if req.MatWidth < model.MinMatWidth || req.MatWidth > model.MaxMatWidth {
		fields["matWidth"] = fmt.Sprintf("must be between %d and %d", model.MinMatWidth, model.MaxMatWidth)
	}
	if len(fields) > 0 {
		sendValidationError(c, http.StatusBadRequest, fields)
		return
	}

	if _, err := h.artworks.Get(c.Request.Context(), req.ArtworkID); err != nil {
		if errors.Is(err, model.ErrArtworkNotFound) {
			sendValidationError(c, http.StatusBadRequest, map[string]string{"artworkId": "artwork does not exist"})
			return
		}
		sendError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to verify artwork: "+err.Error())
		return
	}

	cfg := model.FrameConfig{
		PrintSize:  req.PrintSize,
		FrameStyle: req.FrameStyle,
		FrameWidth: req.FrameWidth,
		MatColor:   req.MatColor,
		MatWidth:   req.MatWidth,
	}
	item := &model.CartItem{
		CartItemID:  req.ArtworkID,
		ArtworkID:   req.ArtworkID,
		Price:       pricing.Price(cfg, frame),
		FrameConfig: cfg,
	}
	if err := h.repo.AddItem(c.Request.Context(), sessionID, item); err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add cart item: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Get handles GET /cart/:id - returns a single cart item.
func (h *CartHandler) Get(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID <= 0 {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cart item ID must be a positive integer")
		return
	}

	item, err := h.repo.GetItem(c.Request.Context(), sessionID, itemID)
	if err != nil {
		if errors.Is(err, model.ErrCartItemNotFound) {
			sendError(c, http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Cart item "+c.Param("id")+" not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get cart item: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /cart/:id - removes a single cart item.
func (h *CartHandler) Delete(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID <= 0 {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cart item ID must be a positive integer")
		return
	}

	if err := h.repo.DeleteItem(c.Request.Context(), sessionID, itemID); err != nil {
		if errors.Is(err, model.ErrCartItemNotFound) {
			sendError(c, http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Cart item "+c.Param("id")+" not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete cart item: "+err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /cart - empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	if err := h.repo.ClearCart(c.Request.Context(), sessionID); err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear cart: "+err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handles POST /cart/checkout - creates a payment intent for the
// cart total plus shipping.
func (h *CartHandler) Checkout(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "is required"
	}
	if !req.ShippingAddress.Complete() {
		fields["shipping_address"] = "all address fields are required"
	}
	var dest catalog.Destination
	if req.ShippingAddress != nil {
		var ok bool
		dest, ok = h.catalog.Destination(req.ShippingAddress.Country)
		if !ok {
			fields["shipping_address"] = "country is not a shipping destination"
		}
	}
	if len(fields) > 0 {
		sendValidationError(c, http.StatusBadRequest, fields)
		return
	}

	items, err := h.repo.ListItems(c.Request.Context(), sessionID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list cart items: "+err.Error())
		return
	}
	if len(items) == 0 {
		sendError(c, http.StatusBadRequest, "CART_EMPTY", "Cannot check out an empty cart")
		return
	}

	subtotal := 0
	for _, item := range items {
		subtotal += item.Price
	}
	total := subtotal + pricing.ShippingCost(subtotal, dest)

	intent, err := h.payments.CreateIntent(c.Request.Context(), total)
	if err != nil {
		sendError(c, http.StatusBadGateway, "PAYMENT_ERROR", "Failed to create payment intent: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	})
}

// RegisterRoutes registers the cart routes on a Gin router group.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.List)
		cart.POST("", h.Add)
		cart.DELETE("", h.Clear)
		cart.POST("/checkout", h.Checkout)
		cart.GET("/:id", h.Get)
		cart.DELETE("/:id", h.Delete)
	}
}
