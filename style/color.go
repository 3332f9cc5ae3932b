// Maps normalized heat intensities to colors, and
// builds the presentation attributes written on SVG shapes.
package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	// ErrIntensityRange is returned for a scale outside [0, 1] (or NaN).
	ErrIntensityRange = errors.New("style: intensity must be in [0, 1]")

	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("style: need a 24-bit hexadecimal string, e.g. #000000")
)

// FormatError reports a string that is not a valid color.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("style: invalid color %q: need a 24-bit hexadecimal string, e.g. #000000", e.Input)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. The alpha channel is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex formats the color as lowercase #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) String() string { return c.Hex() }

// ColorToHex formats c as lowercase #rrggbb.
func ColorToHex(c Color) string { return c.Hex() }

// HexToColor parses a string made of '#' followed by exactly
// 6 hexadecimal digits.
func HexToColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, &FormatError{Input: s}
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return Color{}, &FormatError{Input: s}
		}
		rgb[i] = uint8(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// ParseColor accepts either a #rrggbb string or an SVG color keyword
// such as "orangered". Keywords are case insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return HexToColor(s)
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, &FormatError{Input: s}
	}
	return Color{R: named.R, G: named.G, B: named.B}, nil
}

// Gradient linearly interpolates between two colors.
type Gradient struct {
	From, To Color // colors at scale 0 and 1
}

// DefaultGradient goes from pale grey to deep red-orange.
var DefaultGradient = Gradient{
	From: Color{204, 204, 204}, // #cccccc
	To:   Color{255, 32, 0},    // #ff2000
}

// At returns the color at `scale`, which must be in [0, 1].
// Each channel is from + round(scale * (to - from)), rounding
// half away from zero.
func (g Gradient) At(scale float64) (Color, error) {
	if math.IsNaN(scale) || scale < 0 || scale > 1 {
		return Color{}, fmt.Errorf("%w: got %v", ErrIntensityRange, scale)
	}
	return Color{
		R: lerp(g.From.R, g.To.R, scale),
		G: lerp(g.From.G, g.To.G, scale),
		B: lerp(g.From.B, g.To.B, scale),
	}, nil
}

func lerp(from, to uint8, scale float64) uint8 {
	return uint8(int(from) + int(math.Round(scale*float64(int(to)-int(from)))))
}

// IntensityToColor interpolates `scale` on DefaultGradient:
// 0 gives #cccccc, 1 gives #ff2000 and 0.5 gives #e67666.
func IntensityToColor(scale float64) (Color, error) {
	return DefaultGradient.At(scale)
}
