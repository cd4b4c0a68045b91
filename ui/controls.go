package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/palette"
)

// ControlsState is what the panel displays.
type ControlsState struct {
	Shapes   []string
	Active   string
	Swatches []palette.Color
	Color    palette.Color
	Openness float32
	HandUp   bool
	Picking  bool
}

// ControlsActions holds what the user clicked this frame.
// Zero values mean no action.
type ControlsActions struct {
	Shape      string
	Color      *palette.Color
	Openness   float32
	HandToggle bool
	OpenPicker bool
}

// ControlsPanel renders the right-side shape and colour controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	shapes   int // Rows drawn last frame
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition moves the panel, for window resizes.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so
// mouse drags there do not orbit the camera.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	return px >= float32(c.x) && px < float32(c.x+c.width) && py >= float32(c.y) && py < float32(c.y+c.height())
}

func (c *ControlsPanel) height() int32 {
	t := c.renderer.Theme
	rows := int32(c.shapes)
	return t.Padding*2 + (t.Line+4)*4 + rows*(t.ButtonHeight+4) + (t.SwatchSize + 8) + (t.ButtonHeight + 8) + 20 + t.ButtonHeight
}

// Draw renders the panel and returns the user's actions.
func (c *ControlsPanel) Draw(st ControlsState) ControlsActions {
	act := ControlsActions{Openness: st.Openness}
	if !c.visible {
		return act
	}

	r := c.renderer
	r.SetAccent(st.Color)
	t := r.Theme
	inner := c.width - t.Padding*2
	x := c.x + t.Padding

	c.shapes = len(st.Shapes)
	r.DrawPanel(c.x, c.y, c.width, c.height())
	y := c.y + t.Padding

	y = r.DrawSectionHeader(x, y, "Shape")
	for _, name := range st.Shapes {
		label := name
		if name == st.Active {
			label = "> " + name
		}
		if gui.Button(rect(x, y, inner, t.ButtonHeight), label) && name != st.Active {
			act.Shape = name
		}
		y += t.ButtonHeight + 4
	}

	y += 4
	y = r.DrawSectionHeader(x, y, "Colour")
	sx := x
	for i := range st.Swatches {
		sw := st.Swatches[i]
		bounds := rect(sx, y, t.SwatchSize, t.SwatchSize)
		if gui.Button(bounds, "") {
			act.Color = &sw
		}
		rl.DrawRectangle(sx+3, y+3, t.SwatchSize-6, t.SwatchSize-6, ToRL(sw, 1))
		if sw.Hex == st.Color.Hex {
			rl.DrawRectangleLines(sx, y, t.SwatchSize, t.SwatchSize, t.Highlight)
		}
		sx += t.SwatchSize + 4
	}
	y += t.SwatchSize + 8

	pickLabel := "Custom..."
	if st.Picking {
		pickLabel = "Choosing..."
	}
	if gui.Button(rect(x, y, inner, t.ButtonHeight), pickLabel) && !st.Picking {
		act.OpenPicker = true
	}
	y += t.ButtonHeight + 8

	y = r.DrawSectionHeader(x, y, "Hand")
	if gui.Button(rect(x, y, inner, t.ButtonHeight), toggleText(st.HandUp, "Lower hand [H]", "Raise hand [H]")) {
		act.HandToggle = true
	}
	y += t.ButtonHeight + 4

	act.Openness = gui.SliderBar(rect(x+40, y, inner-80, 16), "fist", "open", st.Openness, 0, 1)
	rl.DrawText(fmt.Sprintf("%.2f", act.Openness), x+inner-32, y+2, t.Font, t.Value)

	return act
}

func rect(x, y, w, h int32) rl.Rectangle {
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
