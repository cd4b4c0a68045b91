package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/palette"
	"github.com/pthm-cable/morphfield/telemetry"
)

// HUDData is one frame of status for the heads-up display.
type HUDData struct {
	Title     string
	Shape     string
	Color     palette.Color
	Openness  float64
	Detected  bool
	Morphing  bool
	Expansion float64
	Tick      int32
	FPS       int32
	Particles int
}

// HUD shows the field status in the top-left corner.
type HUD struct {
	renderer *Renderer
}

func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

func (h *HUD) Draw(d HUDData) {
	r := h.renderer
	r.SetAccent(d.Color)

	rl.DrawText(d.Title, 10, 10, 20, r.Theme.Value)
	rl.DrawText(fmt.Sprintf("%d particles  tick %d  %d fps", d.Particles, d.Tick, d.FPS), 10, 34, 14, r.Theme.Header)

	y := int32(58)
	y = r.DrawLabelValue(10, y, "Shape", d.Shape)
	y = r.DrawColorSwatch(10, y, "Colour", d.Color)
	y = r.DrawLabelValue(10, y, "Hand", handStatus(d.Detected, d.Morphing))
	y = r.DrawMeter(10, y, "Openness", d.Openness, 240, d.Detected)
	r.DrawLabelValue(10, y, "Expansion", fmt.Sprintf("x%.2f", d.Expansion))
}

func handStatus(detected, morphing bool) string {
	switch {
	case !detected:
		return "none"
	case morphing:
		return "open, morphing"
	default:
		return "tracked"
	}
}

// DrawControls prints the key legend along the bottom edge.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-25, 14, h.renderer.Theme.Header)
}

// PerfPanel charts the share of tick time spent in each phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	const width = 260
	r := p.renderer
	phases := telemetry.Phases()
	height := r.Theme.Padding*2 + r.Theme.Line*2 + 4 + int32(len(phases))*(r.Theme.Line+2)

	r.DrawPanel(p.x, p.y, width, height)
	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Tick")
	y = r.DrawLabelValue(x, y, "avg/max", fmt.Sprintf("%s / %s",
		stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)))

	for _, phase := range phases {
		y = r.DrawMeter(x, y, phase, stats.PhasePct[phase]/100, width-r.Theme.Padding*2, true)
	}
}
