package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDimension bounds each axis so that a volume always fits in an int64.
const MaxDimension = 1_000_000

// Dimensions is an axis-aligned box size. A Height of 0 means the height is
// unconstrained and matches anything.
type Dimensions struct {
	Length int
	Width  int
	Height int
}

// New validates and constructs Dimensions.
func New(length, width, height int) (Dimensions, error) {
	if length < 0 || width < 0 || height < 0 {
		return Dimensions{}, ErrNegativeDimension
	}
	if length > MaxDimension || width > MaxDimension || height > MaxDimension {
		return Dimensions{}, ErrDimensionTooLarge
	}
	return Dimensions{Length: length, Width: width, Height: height}, nil
}

// Parse reads a dimension string of the form "LxWxH".
func Parse(raw string) (Dimensions, error) {
	parts := strings.Split(strings.TrimSpace(raw), "x")
	if len(parts) != 3 {
		return Dimensions{}, fmt.Errorf("%w: %q", ErrMalformedDimensions, raw)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return Dimensions{}, fmt.Errorf("%w: %q", ErrMalformedDimensions, raw)
		}
		values[i] = value
	}

	d, err := New(values[0], values[1], values[2])
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %q", err, raw)
	}
	return d, nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Length, d.Width, d.Height)
}

// MarshalText encodes the dimensions in their "LxWxH" form.
func (d Dimensions) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes an "LxWxH" string.
func (d *Dimensions) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Area is the footprint, length times width.
func (d Dimensions) Area() int64 {
	return int64(d.Length) * int64(d.Width)
}

func (d Dimensions) Volume() int64 {
	return d.Area() * int64(d.Height)
}

// HasHeight reports whether the height is constrained.
func (d Dimensions) HasHeight() bool {
	return d.Height != 0
}

// RotateWidthIntoHeight swaps width and height.
func (d Dimensions) RotateWidthIntoHeight() Dimensions {
	return Dimensions{Length: d.Length, Width: d.Height, Height: d.Width}
}

// RotateLengthIntoHeight swaps length and height.
func (d Dimensions) RotateLengthIntoHeight() Dimensions {
	return Dimensions{Length: d.Height, Width: d.Width, Height: d.Length}
}

// orientations lists the target placements a fit test considers. Only one
// level of rotation is applied; length/width swaps are handled by the
// footprint checks themselves.
func (d Dimensions) orientations(sideways bool) []Dimensions {
	if !sideways {
		return []Dimensions{d}
	}
	return []Dimensions{d, d.RotateWidthIntoHeight(), d.RotateLengthIntoHeight()}
}

// FitsInto reports whether d can be placed inside target. With sideways set,
// the target may also be stood on either of its other two faces.
func (d Dimensions) FitsInto(target Dimensions, sideways bool) bool {
	for _, t := range target.orientations(sideways) {
		if d.fitsInto(t) {
			return true
		}
	}
	return false
}

// FitsOver reports whether d can cover target, the mirror of FitsInto.
func (d Dimensions) FitsOver(target Dimensions, sideways bool) bool {
	for _, t := range target.orientations(sideways) {
		if d.fitsOver(t) {
			return true
		}
	}
	return false
}

func (d Dimensions) fitsInto(t Dimensions) bool {
	heightOK := !t.HasHeight() || !d.HasHeight() || d.Height <= t.Height
	footprintOK := (d.Length <= t.Length && d.Width <= t.Width) ||
		(d.Width <= t.Length && d.Length <= t.Width)
	return heightOK && footprintOK
}

func (d Dimensions) fitsOver(t Dimensions) bool {
	heightOK := !t.HasHeight() || !d.HasHeight() || d.Height >= t.Height
	footprintOK := (d.Length >= t.Length && d.Width >= t.Width) ||
		(d.Width >= t.Length && d.Length >= t.Width)
	return heightOK && footprintOK
}
