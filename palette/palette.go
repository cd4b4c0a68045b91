// Package palette holds the particle colour values selectable from the UI.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for strings that are not #rgb or #rrggbb.
var ErrInvalidColor = errors.New("palette: invalid color")

// Color is a parsed sRGB colour with its canonical hex form.
type Color struct {
	Hex     string // Lower-case #rrggbb
	R, G, B uint8
}

// Parse accepts #rrggbb or #rgb, with or without the leading '#'.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %w", ErrInvalidColor, err)
	}
	return fromColorful(c), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{Hex: c.Clamped().Hex(), R: r, G: g, B: b}
}

// Colorful returns the colour in go-colorful form for blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes c toward other in CIE L*a*b*, t in [0, 1].
func (c Color) Blend(other Color, t float64) Color {
	return fromColorful(c.Colorful().BlendLab(other.Colorful(), t))
}

// RGBA returns the channels with the given alpha in [0, 1].
func (c Color) RGBA(alpha float64) (r, g, b, a uint8) {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	return c.R, c.G, c.B, uint8(alpha*255 + 0.5)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex
}

// DefaultSwatches are the preset colours offered by the colour control.
var DefaultSwatches = []string{
	"#ffffff",
	"#ff4d4d",
	"#4da6ff",
	"#ffcc00",
	"#cc33ff",
	"#33ff99",
	"#ff9933",
}

// Swatches returns the default swatches parsed.
func Swatches() []Color {
	out := make([]Color, len(DefaultSwatches))
	for i, s := range DefaultSwatches {
		out[i] = MustParse(s)
	}
	return out
}
