// Package catalog provides the store catalog: frame styles, mat colors
// and shipping destinations. The catalog is static and embedded in the
// binary; it backs both the public catalog endpoints and cart validation.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed resources/*.json
var resources embed.FS

// Frame is one frame style offered by the store. Cost is in cents per
// centimetre of frame width.
type Frame struct {
	Style string `json:"style"`
	Label string `json:"label"`
	Slice int    `json:"slice"`
	Cost  int    `json:"cost"`
}

// Mat is one mat color offered by the store.
type Mat struct {
	Color string `json:"color"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// Destination is one country the store ships to. Price is in cents.
type Destination struct {
	ISOCode              string `json:"isoCode"`
	DisplayName          string `json:"displayName"`
	Price                int    `json:"price"`
	FreeShippingPossible bool   `json:"freeShippingPossible"`
	// FreeShippingThreshold is the cart total (in cents) from which
	// shipping is free. Only meaningful when FreeShippingPossible is set.
	FreeShippingThreshold int `json:"freeShippingThreshold,omitempty"`
}

// Shipping is the full shipping offer returned by GET /shipping.
type Shipping struct {
	Countries []Destination `json:"countries"`
}

// Catalog holds the loaded catalog data with lookup indexes.
type Catalog struct {
	frames   []Frame
	mats     []Mat
	shipping Shipping

	frameIndex map[string]Frame
	matIndex   map[string]Mat
	destIndex  map[string]Destination
}

// Load parses the embedded catalog resources.
func Load() (*Catalog, error) {
	c := &Catalog{
		frameIndex: make(map[string]Frame),
		matIndex:   make(map[string]Mat),
		destIndex:  make(map[string]Destination),
	}

	if err := readResource("resources/frames.json", &c.frames); err != nil {
		return nil, err
	}
	if err := readResource("resources/mat-colors.json", &c.mats); err != nil {
		return nil, err
	}
	if err := readResource("resources/shipping.json", &c.shipping); err != nil {
		return nil, err
	}

	for _, f := range c.frames {
		c.frameIndex[f.Style] = f
	}
	for _, m := range c.mats {
		c.matIndex[m.Color] = m
	}
	for _, d := range c.shipping.Countries {
		c.destIndex[d.ISOCode] = d
	}

	return c, nil
}

func readResource(name string, v any) error {
	data, err := resources.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Frames returns all frame styles in catalog order.
func (c *Catalog) Frames() []Frame {
	return c.frames
}

// Mats returns all mat colors in catalog order.
func (c *Catalog) Mats() []Mat {
	return c.mats
}

// ShippingOffer returns the shipping destinations.
func (c *Catalog) ShippingOffer() Shipping {
	return c.shipping
}

// Frame looks up a frame style by id.
func (c *Catalog) Frame(style string) (Frame, bool) {
	f, ok := c.frameIndex[style]
	return f, ok
}

// Mat looks up a mat color by id.
func (c *Catalog) Mat(color string) (Mat, bool) {
	m, ok := c.matIndex[color]
	return m, ok
}

// Destination looks up a shipping destination by ISO country code.
func (c *Catalog) Destination(isoCode string) (Destination, bool) {
	d, ok := c.destIndex[isoCode]
	return d, ok
}
