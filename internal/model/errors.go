package model

import "errors"

var (
	// ErrCartItemNotFound is returned when a cart item is not found.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrArtworkNotFound is returned when the museum API has no artwork
	// with the requested id.
	ErrArtworkNotFound = errors.New("artwork not found")
)
