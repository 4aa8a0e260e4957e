package matcher

import "errors"

var (
	// ErrSidewaysWithoutHeight is returned when sideways rotation is requested for a target without a height.
	ErrSidewaysWithoutHeight = errors.New("sideways rotation requires a target height")
	// ErrInvalidCount is returned when the requested number of results is not positive.
	ErrInvalidCount = errors.New("number of results must be a positive integer")
	// ErrInvalidMode is returned for a mode other than "into" or "over".
	ErrInvalidMode = errors.New("mode must be either \"into\" or \"over\"")
)
