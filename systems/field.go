package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/shapes"
)

// Frame is the output of one tick, handed to the renderer.
// Positions aliases the field's current buffer and is only valid until the
// next Tick.
type Frame struct {
	Positions     shapes.Buffer
	Rotation      float64 // Accumulated spin about the vertical axis
	RotationDelta float64 // Spin added this tick
	Envelope      Envelope
	Tick          int32
}

// Field owns the live particle buffer and the targets it is drawn toward.
// It is not safe for concurrent use; commands must be applied between ticks.
type Field struct {
	gen    *shapes.Generator
	motion config.MotionConfig
	lerp   float32
	rng    *rand.Rand

	shape   shapes.Shape
	current shapes.Buffer
	target  shapes.Buffer
	morph   shapes.Buffer // nil unless shape is morphable

	// Scratch buffers reused every tick
	blended   []float32
	modulated []float32

	elapsed  float64
	rotation float64
	tick     int32
}

// NewField creates a field showing shape. The current buffer starts equal to
// the initial target.
func NewField(gen *shapes.Generator, motion config.MotionConfig, shape shapes.Shape, rng *rand.Rand) *Field {
	n := gen.Count()
	f := &Field{
		gen:       gen,
		motion:    motion,
		lerp:      float32(motion.LerpFactor),
		rng:       rng,
		blended:   make([]float32, 3*n),
		modulated: make([]float32, 3*n),
	}
	f.regenerate(shape)
	f.current = f.target.Clone()
	copy(f.modulated, f.target)
	return f
}

// SetShape replaces the targets. The current buffer is untouched so particles
// flow from wherever they are.
func (f *Field) SetShape(s shapes.Shape) {
	f.regenerate(s)
}

func (f *Field) regenerate(s shapes.Shape) {
	f.shape = s
	f.target = f.gen.Generate(s)
	f.morph = f.gen.GenerateMorph(s)
}

// Tick advances the field by one frame. The envelope is evaluated at the
// elapsed time before dt is added, so the first tick breathes at t = 0.
func (f *Field) Tick(dt float64, sig gesture.Signal) Frame {
	env := ComputeEnvelope(sig, f.elapsed, f.morph != nil, f.motion)

	src := []float32(f.target)
	if env.Morphing {
		Blend(f.blended, f.target, f.morph, float32(env.Blend))
		src = f.blended
	}

	f.modulate(src, env)
	Lerp(f.current, f.modulated, f.lerp)

	delta := RotationDelta(sig, f.motion)
	f.rotation = math.Mod(f.rotation+delta, 2*math.Pi)
	f.elapsed += dt
	f.tick++

	return Frame{
		Positions:     f.current,
		Rotation:      f.rotation,
		RotationDelta: delta,
		Envelope:      env,
		Tick:          f.tick,
	}
}

// modulate scales src by the expansion and adds symmetric per-axis jitter.
func (f *Field) modulate(src []float32, env Envelope) {
	e := float32(env.Expansion)
	if env.Noise == 0 {
		for i, v := range src {
			f.modulated[i] = v * e
		}
		return
	}
	for i, v := range src {
		f.modulated[i] = v*e + float32((f.rng.Float64()-0.5)*env.Noise)
	}
}

// MeanTargetDistance returns the mean distance between each particle and its
// most recent modulated target.
func (f *Field) MeanTargetDistance() float64 {
	n := f.current.Len()
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		dx := float64(f.modulated[3*i] - f.current[3*i])
		dy := float64(f.modulated[3*i+1] - f.current[3*i+1])
		dz := float64(f.modulated[3*i+2] - f.current[3*i+2])
		sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return sum / float64(n)
}

// Current returns the live position buffer.
func (f *Field) Current() shapes.Buffer { return f.current }

// Target returns the primary target buffer.
func (f *Field) Target() shapes.Buffer { return f.target }

// MorphTarget returns the companion buffer, or nil for non-morphable shapes.
func (f *Field) MorphTarget() shapes.Buffer { return f.morph }

// Modulated returns the targets used by the most recent tick.
func (f *Field) Modulated() []float32 { return f.modulated }

// Shape returns the active shape.
func (f *Field) Shape() shapes.Shape { return f.shape }

// Rotation returns the accumulated spin in radians, wrapped to [0, 2π).
func (f *Field) Rotation() float64 { return f.rotation }

// Elapsed returns the simulated seconds since the field was created.
func (f *Field) Elapsed() float64 { return f.elapsed }

// TickCount returns the number of ticks run.
func (f *Field) TickCount() int32 { return f.tick }
