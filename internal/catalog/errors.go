package catalog

import "errors"

var (
	// ErrInvalidBox indicates a box that cannot be added to the catalog.
	ErrInvalidBox = errors.New("invalid box")
	// ErrEmptyCatalog is returned when a replacement catalog contains no boxes.
	ErrEmptyCatalog = errors.New("catalog must contain at least one box")
)
