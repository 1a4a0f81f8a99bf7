// Package pricing computes prices for framed artwork prints.
package pricing

import (
	"math"

	"github.com/artmart/backend/internal/catalog"
	"github.com/artmart/backend/internal/model"
)

// Base price of a small print before framing, in cents.
const basePrice = 3000

// Per-millimetre mat cost, in cents.
const matCostPerMM = 5

// Price returns the price of a framed print in cents.
//
// The subtotal is the base price plus the frame cost (per centimetre of
// frame width) plus the mat cost (per millimetre of mat width). The print
// size scales the subtotal: S x1, M x2, L x3.5.
func Price(cfg model.FrameConfig, frame catalog.Frame) int {
	subtotal := float64(basePrice)
	subtotal += float64(frame.Cost) * float64(cfg.FrameWidth) / 10.0
	subtotal += float64(matCostPerMM) * float64(cfg.MatWidth)

	switch cfg.PrintSize {
	case model.PrintSizeMedium:
		subtotal *= 2
	case model.PrintSizeLarge:
		subtotal *= 3.5
	}

	return int(math.Round(subtotal))
}

// ShippingCost returns the shipping cost in cents for a cart subtotal
// shipped to the given destination. Shipping is free when the destination
// offers free shipping and the subtotal reaches its threshold.
func ShippingCost(subtotal int, dest catalog.Destination) int {
	if dest.FreeShippingPossible && subtotal >= dest.FreeShippingThreshold {
		return 0
	}
	return dest.Price
}
