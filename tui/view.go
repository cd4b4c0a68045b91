package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/components"
	"github.com/pthm-cable/morphfield/palette"
	"github.com/pthm-cable/morphfield/scene"
	"github.com/pthm-cable/morphfield/systems"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 0.5

// Stars dimmer than this are not drawn.
const starThreshold = 0.75

var black = palette.MustParse("#000000")

// View draws frames onto a tcell screen. The bottom row is a status line.
type View struct {
	screen tcell.Screen
	canvas *Canvas
	cam    *camera.Camera
}

// NewView creates a view on an initialised screen.
func NewView(screen tcell.Screen, cam *camera.Camera) *View {
	w, h := screen.Size()
	v := &View{screen: screen, canvas: NewCanvas(0, 0), cam: cam}
	v.resize(w, h)
	return v
}

func (v *View) resize(w, h int) {
	if h > 0 {
		h--
	}
	v.canvas.Resize(w, h)
	v.cam.Resize(float64(w), float64(h))
	v.cam.CellAspect = cellAspect
}

// Sync picks up a terminal resize.
func (v *View) Sync() {
	w, h := v.screen.Size()
	v.resize(w, h)
	v.screen.Sync()
}

// Canvas exposes the density grid from the last Draw.
func (v *View) Canvas() *Canvas {
	return v.canvas
}

// Draw renders stars, the field and the status line, then shows the screen.
func (v *View) Draw(frame scene.Frame, backdrop *systems.Backdrop, status string) {
	v.screen.Clear()

	v.drawStars(backdrop)

	v.canvas.Plot(frame.Positions, frame.Rotation, v.cam)
	w, h := v.canvas.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := v.canvas.Glyph(x, y)
			if g == ' ' {
				continue
			}
			shade := black.Blend(frame.Color, 0.35+0.65*v.canvas.Intensity(x, y))
			v.screen.SetContent(x, y, g, nil, styleFor(shade))
		}
	}

	v.drawStatus(h, status)
	v.screen.Show()
}

func (v *View) drawStars(b *systems.Backdrop) {
	if b == nil {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	b.Each(func(pos components.Position, _, brightness float32) {
		if brightness < starThreshold {
			return
		}
		sx, sy, _, ok := v.cam.WorldToScreen(float64(pos.X), float64(pos.Y), float64(pos.Z))
		if !ok || !v.cam.IsVisible(sx, sy) {
			return
		}
		v.screen.SetContent(int(sx), int(sy), '.', nil, style)
	})
}

func (v *View) drawStatus(row int, status string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, r := range []rune(status) {
		v.screen.SetContent(i, row, r, nil, style)
	}
}

func styleFor(c palette.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// StatusLine formats the bottom row.
func StatusLine(frame scene.Frame, shape string, fps float64) string {
	hand := "-"
	if frame.Signal.Detected {
		hand = fmt.Sprintf("%.2f", frame.Signal.Openness)
	}
	return fmt.Sprintf(" %s  %s  hand %s  %.0f fps  [1-7] shape [h] hand [+/-] open [c] colour [arrows] orbit [q] quit",
		shape, frame.Color.Hex, hand, fps)
}
