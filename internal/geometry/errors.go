package geometry

import "errors"

var (
	// ErrMalformedDimensions is returned when a dimension string is not three integers joined by "x".
	ErrMalformedDimensions = errors.New("dimensions must have the form LxWxH")
	// ErrNegativeDimension is returned when any axis is below zero.
	ErrNegativeDimension = errors.New("dimensions must be non-negative integers")
	// ErrDimensionTooLarge is returned when any axis exceeds MaxDimension.
	ErrDimensionTooLarge = errors.New("dimension exceeds the supported maximum")
)
