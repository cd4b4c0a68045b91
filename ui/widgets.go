// Package ui draws the on-screen controls and heads-up display with raylib
// and raygui.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/palette"
)

// Theme holds UI styling. Accent follows the active particle colour.
type Theme struct {
	Panel, Border rl.Color
	Header        rl.Color
	Label, Value  rl.Color
	Track         rl.Color
	Accent        rl.Color
	Highlight     rl.Color

	Padding      int32
	Line         int32
	LabelWidth   int32
	TrackHeight  int32
	ButtonHeight int32
	SwatchSize   int32
	Font, Title  int32
}

// DefaultTheme matches the dark gradient background.
func DefaultTheme() Theme {
	return Theme{
		Panel:        rl.Color{R: 17, G: 24, B: 39, A: 210},
		Border:       rl.Color{R: 55, G: 65, B: 81, A: 255},
		Header:       rl.Color{R: 156, G: 163, B: 175, A: 255},
		Label:        rl.Color{R: 209, G: 213, B: 219, A: 255},
		Value:        rl.White,
		Track:        rl.Color{R: 31, G: 41, B: 55, A: 255},
		Accent:       ToRL(palette.MustParse("#4da6ff"), 1),
		Highlight:    rl.White,
		Padding:      10,
		Line:         16,
		LabelWidth:   72,
		TrackHeight:  10,
		ButtonHeight: 24,
		SwatchSize:   24,
		Font:         12,
		Title:        14,
	}
}

// Renderer draws themed widgets. Every Draw* method returns the next free Y.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// SetAccent retints meters and highlights to the particle colour.
func (r *Renderer) SetAccent(c palette.Color) {
	r.Theme.Accent = ToRL(c, 1)
}

// DrawPanel fills a bordered box.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.Panel)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.Border)
}

// DrawSectionHeader draws a small caps title with an accent underline.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.Title, r.Theme.Header)
	w := rl.MeasureText(title, r.Theme.Title)
	rl.DrawLine(x, y+r.Theme.Title+1, x+w, y+r.Theme.Title+1, r.Theme.Accent)
	return y + r.Theme.Line + 4
}

// DrawLabelValue draws "label: value" in two columns.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	r.label(x, y, label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.Font, r.Theme.Value)
	return y + r.Theme.Line
}

// DrawMeter draws a [0, 1] value as a filled track. Inactive meters are
// drawn hollow.
func (r *Renderer) DrawMeter(x, y int32, label string, value float64, width int32, active bool) int32 {
	value = min(max(value, 0), 1)
	t := r.Theme
	trackX := x + t.LabelWidth
	trackW := width - t.LabelWidth - 40

	r.label(x, y, label)
	rl.DrawRectangle(trackX, y+2, trackW, t.TrackHeight, t.Track)
	fill := int32(float64(trackW) * value)
	if active {
		rl.DrawRectangle(trackX, y+2, fill, t.TrackHeight, t.Accent)
	} else {
		rl.DrawRectangleLines(trackX, y+2, fill, t.TrackHeight, t.Header)
	}
	rl.DrawText(fmt.Sprintf("%.2f", value), trackX+trackW+5, y, t.Font, t.Value)
	return y + t.Line + 2
}

// DrawColorSwatch draws a colour square followed by its hex code.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, c palette.Color) int32 {
	t := r.Theme
	r.label(x, y, label)
	sx := x + t.LabelWidth
	rl.DrawRectangle(sx, y+1, t.Font, t.Font, ToRL(c, 1))
	rl.DrawText(c.Hex, sx+t.Font+6, y, t.Font, t.Value)
	return y + t.Line
}

func (r *Renderer) label(x, y int32, text string) {
	rl.DrawText(text+":", x, y, r.Theme.Font, r.Theme.Label)
}

// ToRL converts a palette colour to a raylib colour with alpha in [0, 1].
func ToRL(c palette.Color, alpha float64) rl.Color {
	cr, cg, cb, ca := c.RGBA(alpha)
	return rl.Color{R: cr, G: cg, B: cb, A: ca}
}
