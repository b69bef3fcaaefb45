package game

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultColorHex is substituted whenever a caller hands us a color we
// cannot parse. Configuration paths never fail on bad input.
const DefaultColorHex = "#ff0000"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// RGB is a color sample in 8-bit-per-channel RGB space.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Observation is what the on-device vision pipeline reports: a color
// and an opaque quality scalar in [0,1].
type Observation struct {
	RGB        RGB     `json:"rgb"`
	Confidence float64 `json:"confidence"`
}

// ColorDistance returns the Euclidean distance between two colors.
func ColorDistance(a, b RGB) float64 {
	dr := float64(a.R - b.R)
	dg := float64(a.G - b.G)
	db := float64(a.B - b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// NormalizeHex lower-cases and validates a "#rrggbb" color string.
// Anything that doesn't match comes back as DefaultColorHex.
func NormalizeHex(text string) string {
	h := strings.ToLower(strings.TrimSpace(text))
	if !hexColorPattern.MatchString(h) {
		return DefaultColorHex
	}
	return h
}

// ParseHex converts "#rrggbb" (case-insensitive) to an RGB value,
// falling back to the default color on malformed input.
func ParseHex(text string) RGB {
	h := NormalizeHex(text)
	r, _ := strconv.ParseUint(h[1:3], 16, 8)
	g, _ := strconv.ParseUint(h[3:5], 16, 8)
	b, _ := strconv.ParseUint(h[5:7], 16, 8)
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// HexFromRGB renders an RGB value back to its "#rrggbb" form.
func HexFromRGB(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", clampInt(c.R, 0, 255), clampInt(c.G, 0, 255), clampInt(c.B, 0, 255))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
