package imp

import "errors"

var (
	// ErrInvalidInput is returned when an image is not a non-empty,
	// single-channel 8-bit grid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a location can't be resolved to a
	// decodable image.
	ErrNotFound = errors.New("image not found")
)
