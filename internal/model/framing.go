package model

// PrintSize is one of the three print sizes a customer can order.
type PrintSize string

const (
	PrintSizeSmall  PrintSize = "S"
	PrintSizeMedium PrintSize = "M"
	PrintSizeLarge  PrintSize = "L"
)

// Valid reports whether the print size is one of S, M or L.
func (s PrintSize) Valid() bool {
	switch s {
	case PrintSizeSmall, PrintSizeMedium, PrintSizeLarge:
		return true
	}
	return false
}

// Frame width and mat width bounds, in millimetres.
const (
	MinFrameWidth = 20
	MaxFrameWidth = 50
	MinMatWidth   = 0
	MaxMatWidth   = 100
)

// FrameConfig is the framing configuration for one artwork: the print size,
// the frame and its width, and the optional mat and its width.
type FrameConfig struct {
	PrintSize  PrintSize `json:"printSize"`
	FrameStyle string    `json:"frameStyle"`
	FrameWidth int       `json:"frameWidth"`
	MatColor   string    `json:"matColor,omitempty"`
	MatWidth   int       `json:"matWidth"`
}

// CartItem is one framed artwork in a shopper's cart. The cart item id is
// the artwork id: a cart holds at most one framing per artwork.
type CartItem struct {
	CartItemID int64 `json:"cartItemId"`
	ArtworkID  int64 `json:"artworkId"`
	Price      int   `json:"price"`
	FrameConfig
}

// ShippingAddress is the destination of a checkout order.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// CheckoutRequest is the request body for POST /cart/checkout.
type CheckoutRequest struct {
	Email           string           `json:"email"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
}

// Complete reports whether all required address fields are present.
func (a *ShippingAddress) Complete() bool {
	if a == nil {
		return false
	}
	return a.Name != "" && a.Address != "" && a.City != "" &&
		a.Country != "" && a.PostalCode != "" && a.Phone != ""
}
