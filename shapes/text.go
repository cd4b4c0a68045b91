package shapes

import (
	"fmt"
	"image"
	"math/rand"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/morphfield/config"
)

// Rasterizer renders strings onto a small monochrome canvas and samples the
// lit pixels as particle targets.
type Rasterizer struct {
	width, height int
	threshold     uint8
	scale         float64
	depth         float64
	ttf           *opentype.Font
	face          font.Face
}

// NewRasterizer parses the embedded bold sans-serif face at the configured size.
func NewRasterizer(cfg config.TextConfig) (*Rasterizer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("shapes: parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("shapes: creating face: %w", err)
	}

	return &Rasterizer{
		width:     cfg.CanvasWidth,
		height:    cfg.CanvasHeight,
		threshold: cfg.Threshold,
		scale:     cfg.Scale,
		depth:     cfg.Depth,
		ttf:       f,
		face:      face,
	}, nil
}

// Close releases the font face.
func (r *Rasterizer) Close() error {
	return r.face.Close()
}

// Size returns the canvas dimensions in pixels.
func (r *Rasterizer) Size() (width, height int) {
	return r.width, r.height
}

// Mask draws text white-on-black, horizontally centred with its em box
// vertically centred on the canvas. Runes the face has no glyph for are
// dropped rather than drawn as the placeholder box. Text wider than the
// canvas is clipped at its edges.
func (r *Rasterizer) Mask(text string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.width, r.height))
	text = r.drawable(text)
	if text == "" {
		return img
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: r.face,
	}
	m := r.face.Metrics()
	advance := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(r.width/2) - advance/2,
		Y: fixed.I(r.height/2) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
	return img
}

func (r *Rasterizer) drawable(text string) string {
	return strings.Map(func(c rune) rune {
		if i, err := r.ttf.GlyphIndex(nil, c); err != nil || i == 0 {
			return -1
		}
		return c
	}, text)
}

// Candidates returns every pixel of the rendered text brighter than the threshold,
// in row-major order.
func (r *Rasterizer) Candidates(text string) []image.Point {
	mask := r.Mask(text)
	var pts []image.Point
	for y := 0; y < r.height; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+r.width]
		for x, v := range row {
			if v > r.threshold {
				pts = append(pts, image.Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Rasterize samples n targets from the lit pixels of text, with replacement.
// Pixels map to world units centred on the canvas with y flipped; z gets a thin
// random band. Text with no lit pixels falls back to the unit ball.
func (r *Rasterizer) Rasterize(text string, n int, rng *rand.Rand) Buffer {
	pts := r.Candidates(text)
	if len(pts) == 0 {
		return fallbackBuffer(n, rng)
	}

	halfW := float64(r.width) / 2
	halfH := float64(r.height) / 2
	buf := NewBuffer(n)
	for i := 0; i < n; i++ {
		p := pts[rng.Intn(len(pts))]
		buf.Set(i,
			(float64(p.X)-halfW)*r.scale,
			-(float64(p.Y)-halfH)*r.scale,
			(rng.Float64()-0.5)*r.depth,
		)
	}
	return buf
}
