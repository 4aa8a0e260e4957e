// Package presenter renders ranked matches for people (aligned text) and for
// other programs (JSON, YAML).
package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/boxfit/internal/matcher"
)

// Format names an output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for an output format that has no renderer.
var ErrUnknownFormat = errors.New("output format must be one of text, json, yaml")

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case Text, JSON, YAML:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Match is the serialised form of a single ranked result. Fill is nil and
// Unbounded is set when the ratio has no finite value, which happens when a
// box with an open height is measured against a target volume.
type Match struct {
	Name       string   `json:"name" yaml:"name"`
	Dimensions string   `json:"dimensions" yaml:"dimensions"`
	Fill       *float64 `json:"fill" yaml:"fill"`
	Unbounded  bool     `json:"unbounded,omitempty" yaml:"unbounded,omitempty"`
}

// Matches converts ranked results into their serialised form, with the fill
// ratio as a percentage rounded to two decimals.
func Matches(results []matcher.Result) []Match {
	out := make([]Match, 0, len(results))
	for _, r := range results {
		m := Match{
			Name:       r.Name,
			Dimensions: r.Dimensions.String(),
		}
		if percent := r.Percent(); math.IsInf(percent, 0) || math.IsNaN(percent) {
			m.Unbounded = true
		} else {
			fill := math.Round(percent*100) / 100
			m.Fill = &fill
		}
		out = append(out, m)
	}
	return out
}

// Render writes results to w in the requested format. An empty result set
// produces no text output and an empty list in JSON and YAML.
func Render(w io.Writer, format Format, results []matcher.Result) error {
	switch format {
	case Text, "":
		return renderText(w, results)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Matches(results))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Matches(results)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func renderText(w io.Writer, results []matcher.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%6.2f%%\n", r.Name, r.Dimensions, r.Percent()); err != nil {
			return err
		}
	}
	return tw.Flush()
}
