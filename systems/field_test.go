package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/shapes"
)

const testN = 8000

func testMotion() config.MotionConfig {
	return config.MotionConfig{
		LerpFactor:      0.15,
		BreathAmplitude: 0.1,
		BreathRate:      1.0,
		ExpansionGain:   2.0,
		NoiseGain:       0.3,
		MorphNoiseGain:  0.1,
		BaseSpin:        0.001,
		GestureSpin:     0.01,
	}
}

func newTestField(t testing.TB, n int, shape shapes.Shape, seed int64) *Field {
	t.Helper()
	r, err := shapes.NewRasterizer(config.TextConfig{
		CanvasWidth:  200,
		CanvasHeight: 100,
		FontSize:     50,
		Threshold:    128,
		Scale:        0.1,
		Depth:        0.5,
	})
	if err != nil {
		t.Fatalf("NewRasterizer: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	rng := rand.New(rand.NewSource(seed))
	gen := shapes.NewGenerator(n, r, rng)
	return NewField(gen, testMotion(), shape, rng)
}

func maxAbsDiff(a, b []float32) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(float64(a[i]-b[i])))
	}
	return d
}

func TestNewFieldSeedsCurrentFromTarget(t *testing.T) {
	f := newTestField(t, 1000, shapes.Shape{Name: "Heart", Kind: shapes.Heart}, 1)
	if len(f.Current()) != 3000 {
		t.Fatalf("current len = %d, want 3000", len(f.Current()))
	}
	if d := maxAbsDiff(f.Current(), f.Target()); d != 0 {
		t.Errorf("current differs from target by %v", d)
	}
	if f.MorphTarget() != nil {
		t.Error("heart has a morph target")
	}
}

func TestSetShapeRegeneratesTargets(t *testing.T) {
	cat := shapes.DefaultCatalog()
	f := newTestField(t, 1000, cat.Lookup("Heart"), 2)
	before := f.Current().Clone()

	f.SetShape(cat.Lookup("Ligugu"))
	if f.MorphTarget() == nil {
		t.Fatal("morphable shape has no morph target")
	}
	if f.Shape().Name != "Ligugu" {
		t.Errorf("Shape = %q", f.Shape().Name)
	}
	if d := maxAbsDiff(f.Current(), before); d != 0 {
		t.Errorf("SetShape moved current by %v", d)
	}

	f.SetShape(cat.Lookup("Saturn"))
	if f.MorphTarget() != nil {
		t.Error("morph target survived switch to a plain shape")
	}
}

func TestTickConvergesWithoutOvershoot(t *testing.T) {
	cat := shapes.DefaultCatalog()
	f := newTestField(t, 2000, cat.Lookup("Flower"), 3)
	f.SetShape(cat.Lookup("Fireworks"))

	// A detected closed hand pins expansion at 1 with no jitter: a static target
	sig := gesture.NewSignal(0, true)
	target := f.Target()

	prev := make([]float64, f.Current().Len())
	for i := range prev {
		prev[i] = math.Inf(1)
	}
	for tick := 0; tick < 200; tick++ {
		f.Tick(1.0/60, sig)
		cur := f.Current()
		for i := 0; i < cur.Len(); i++ {
			cx, cy, cz := cur.At(i)
			tx, ty, tz := target.At(i)
			d := math.Sqrt(sq(cx-tx) + sq(cy-ty) + sq(cz-tz))
			if d > prev[i]+1e-5 {
				t.Fatalf("tick %d particle %d moved away from target: %v -> %v", tick, i, prev[i], d)
			}
			prev[i] = d
		}
	}
	if d := maxAbsDiff(f.Current(), target); d > 1e-4 {
		t.Errorf("after 200 ticks max distance %v, want < 1e-4", d)
	}
	if d := f.MeanTargetDistance(); d > 1e-4 {
		t.Errorf("MeanTargetDistance = %v", d)
	}
}

func sq(v float32) float64 { return float64(v) * float64(v) }

func TestSphereFirstTickMovesAtMostLerpFraction(t *testing.T) {
	cat := shapes.DefaultCatalog()
	f := newTestField(t, testN, cat.Lookup("Heart"), 4)
	f.SetShape(cat.Lookup("Sphere"))

	before := f.Current().Clone()
	frame := f.Tick(1.0/60, gesture.Idle)

	if frame.Envelope.Expansion != 1 {
		t.Fatalf("breathing at t=0 = %v, want 1", frame.Envelope.Expansion)
	}
	target := f.Target()
	for i := 0; i < before.Len(); i++ {
		bx, by, bz := before.At(i)
		ax, ay, az := frame.Positions.At(i)
		tx, ty, tz := target.At(i)

		if r := math.Sqrt(sq(tx) + sq(ty) + sq(tz)); r > 4+1e-4 {
			t.Fatalf("target %d at radius %v", i, r)
		}
		moved := math.Sqrt(sq(ax-bx) + sq(ay-by) + sq(az-bz))
		dist := math.Sqrt(sq(tx-bx) + sq(ty-by) + sq(tz-bz))
		if moved > 0.15*dist+1e-4 {
			t.Fatalf("particle %d moved %v, more than 0.15 of %v", i, moved, dist)
		}
	}
}

func TestMorphConvergesToCompanion(t *testing.T) {
	f := newTestField(t, testN, shapes.DefaultCatalog().Lookup("Ligugu"), 5)
	sig := gesture.NewSignal(1, true)

	for tick := 0; tick < 300; tick++ {
		frame := f.Tick(1.0/60, sig)
		if frame.Envelope.Expansion != 1 || !frame.Envelope.Morphing {
			t.Fatalf("tick %d envelope = %+v, want pinned expansion while morphing", tick, frame.Envelope)
		}
	}

	// Residual jitter is at most morph noise/2 per axis, shrunk by the lerp
	if d := maxAbsDiff(f.Current(), f.MorphTarget()); d > 0.06 {
		t.Errorf("current differs from companion by %v", d)
	}
}

func TestDetectedToUndetectedDropsToBreathSameTick(t *testing.T) {
	cat := shapes.DefaultCatalog()
	f := newTestField(t, 1000, cat.Lookup("Saturn"), 6)

	var frame Frame
	for i := 0; i < 30; i++ {
		frame = f.Tick(1.0/60, gesture.NewSignal(0.9, true))
	}
	if frame.Envelope.Expansion < 2.7 {
		t.Fatalf("detected expansion = %v", frame.Envelope.Expansion)
	}

	elapsed := f.Elapsed()
	before := f.Current().Clone()
	frame = f.Tick(1.0/60, gesture.Idle)

	want := Breath(elapsed, testMotion())
	if frame.Envelope.Expansion != want || frame.Envelope.Noise != 0 {
		t.Errorf("envelope after loss = %+v, want expansion %v and no noise", frame.Envelope, want)
	}

	// The jump is bounded by one lerp step toward the idle target
	target := f.Target()
	for i := 0; i < before.Len(); i++ {
		bx, by, bz := before.At(i)
		ax, ay, az := frame.Positions.At(i)
		tx, ty, tz := target.At(i)
		e := float32(want)
		dist := math.Sqrt(sq(tx*e-bx) + sq(ty*e-by) + sq(tz*e-bz))
		moved := math.Sqrt(sq(ax-bx) + sq(ay-by) + sq(az-bz))
		if moved > 0.15*dist+1e-4 {
			t.Fatalf("particle %d jumped %v, more than one lerp step of %v", i, moved, dist)
		}
	}
}

func TestRotationAccumulates(t *testing.T) {
	f := newTestField(t, 100, shapes.Shape{Kind: shapes.Sphere}, 7)

	for i := 0; i < 10; i++ {
		f.Tick(1.0/60, gesture.Idle)
	}
	if got := f.Rotation(); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("idle rotation after 10 ticks = %v, want 0.01", got)
	}

	frame := f.Tick(1.0/60, gesture.NewSignal(0.5, true))
	if math.Abs(frame.RotationDelta-0.006) > 1e-12 {
		t.Errorf("gesture delta = %v, want 0.006", frame.RotationDelta)
	}
	if math.Abs(frame.Rotation-0.016) > 1e-12 {
		t.Errorf("rotation = %v, want 0.016", frame.Rotation)
	}
	if frame.Tick != 11 || f.TickCount() != 11 {
		t.Errorf("tick = %d, want 11", frame.Tick)
	}
	if math.Abs(f.Elapsed()-11.0/60) > 1e-12 {
		t.Errorf("elapsed = %v", f.Elapsed())
	}
}

func TestTickKeepsPositionsFinite(t *testing.T) {
	cat := shapes.DefaultCatalog()
	f := newTestField(t, 500, cat.Lookup("Zen"), 8)
	sweep := gesture.Sweep{Period: 2}

	for i := 0; i < 600; i++ {
		if i%100 == 0 {
			f.SetShape(cat[(i/100)%len(cat)])
		}
		frame := f.Tick(1.0/60, sweep.At(float64(i)/60))
		for j, v := range frame.Positions {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("tick %d component %d = %v", i, j, v)
			}
		}
	}
}

func TestModulatedTargets(t *testing.T) {
	f := newTestField(t, 1000, shapes.Shape{Name: "Sphere", Kind: shapes.Sphere}, 3)
	target := f.Target()

	// Idle at t = 0 breathes at scale 1 with no jitter.
	f.Tick(1.0/60, gesture.Idle)
	if d := maxAbsDiff(f.Modulated(), target); d > 1e-6 {
		t.Errorf("idle modulated differs from target by %v", d)
	}

	// Open hand: doubled radius plus jitter bounded by half the noise amplitude.
	frame := f.Tick(1.0/60, gesture.NewSignal(0.5, true))
	e := frame.Envelope
	for i, v := range f.Modulated() {
		want := float64(target[i]) * e.Expansion
		if math.Abs(float64(v)-want) > e.Noise/2+1e-5 {
			t.Fatalf("modulated[%d] = %v, want %v ± %v", i, v, want, e.Noise/2)
		}
	}
	if d := maxAbsDiff(f.Modulated(), target); d < 1 {
		t.Errorf("open-hand targets barely moved (max diff %v)", d)
	}
}
