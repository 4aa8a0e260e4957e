package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eugenenazirov/boxfit/internal/geometry"
	"github.com/eugenenazirov/boxfit/internal/matcher"
)

// sameAsOuter in the inner column means the box has no usable wall thickness.
const sameAsOuter = "-"

// Box is a catalog entry with its outside and inside measurements.
type Box struct {
	Name  string              `json:"name" yaml:"name"`
	Outer geometry.Dimensions `json:"outer" yaml:"outer"`
	Inner geometry.Dimensions `json:"inner" yaml:"inner"`
}

// Validate checks that the box can take part in matching.
func (b Box) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidBox)
	}
	for _, d := range []geometry.Dimensions{b.Outer, b.Inner} {
		if _, err := geometry.New(d.Length, d.Width, d.Height); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidBox, b.Name, err)
		}
	}
	return nil
}

// Load reads a catalog file from disk.
func Load(path string) ([]Box, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	boxes, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return boxes, nil
}

// Parse reads tab-separated rows of name, outer and inner dimensions.
// Comment rows and rows with fewer than three fields are skipped; a row with
// unparseable dimensions fails the whole catalog.
func Parse(r io.Reader) ([]Box, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var boxes []Box
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		if len(row) < 3 || strings.HasPrefix(row[0], "#") {
			continue
		}

		line, _ := reader.FieldPos(0)
		box, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		boxes = append(boxes, box)
	}

	return boxes, nil
}

func parseRow(row []string) (Box, error) {
	outer, err := geometry.Parse(row[1])
	if err != nil {
		return Box{}, fmt.Errorf("outer dimensions: %w", err)
	}

	inner := outer
	if raw := strings.TrimSpace(row[2]); raw != sameAsOuter {
		inner, err = geometry.Parse(raw)
		if err != nil {
			return Box{}, fmt.Errorf("inner dimensions: %w", err)
		}
	}

	return Box{
		Name:  row[0],
		Outer: outer,
		Inner: inner,
	}, nil
}

// Records selects the dimensions each box is matched by: the inside of the
// box when it has to go over the target, the outside when it has to go into it.
func Records(boxes []Box, mode matcher.Mode) []matcher.Record {
	records := make([]matcher.Record, 0, len(boxes))
	for _, b := range boxes {
		d := b.Inner
		if mode == matcher.Into {
			d = b.Outer
		}
		records = append(records, matcher.Record{Name: b.Name, Dimensions: d})
	}
	return records
}
