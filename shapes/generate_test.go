package shapes

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

const testParticles = 8000

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	return NewGenerator(testParticles, newTestRasterizer(t), rand.New(rand.NewSource(seed)))
}

func radius(x, y, z float32) float64 {
	return math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z))
}

func TestGenerateSizedAndFinite(t *testing.T) {
	gen := newTestGenerator(t, 1)

	for _, s := range DefaultCatalog() {
		t.Run(s.Name, func(t *testing.T) {
			for call := 0; call < 3; call++ {
				buf := gen.Generate(s)
				if len(buf) != 3*testParticles {
					t.Fatalf("len = %d, want %d", len(buf), 3*testParticles)
				}
				for i, v := range buf {
					f := float64(v)
					if math.IsNaN(f) || math.IsInf(f, 0) {
						t.Fatalf("call %d: component %d is %v", call, i, v)
					}
				}
			}
		})
	}
}

func TestGenerateUnknownKindFallsBackToSphere(t *testing.T) {
	gen := newTestGenerator(t, 2)
	buf := gen.Generate(Shape{Name: "Blob", Kind: Kind(99)})
	for i := 0; i < buf.Len(); i++ {
		if r := radius(buf.At(i)); r > sphereRadius+1e-4 {
			t.Fatalf("particle %d at radius %v, want <= %v", i, r, sphereRadius)
		}
	}
}

func TestSphereRadiusDistribution(t *testing.T) {
	gen := NewGenerator(20000, nil, rand.New(rand.NewSource(3)))
	buf := gen.Generate(Shape{Kind: Sphere})

	// (r/R)^3 is uniform on [0,1] for a uniformly filled ball
	u := make([]float64, buf.Len())
	for i := range u {
		r := radius(buf.At(i))
		if r > sphereRadius+1e-4 {
			t.Fatalf("particle %d at radius %v", i, r)
		}
		u[i] = math.Pow(r/sphereRadius, 3)
	}
	sort.Float64s(u)

	ref := distuv.Uniform{Min: 0, Max: 1}
	var d float64
	n := float64(len(u))
	for i, v := range u {
		cdf := ref.CDF(v)
		d = math.Max(d, math.Max(float64(i+1)/n-cdf, cdf-float64(i)/n))
	}
	// 1% critical value of the one-sample KS statistic
	if crit := 1.63 / math.Sqrt(n); d > crit {
		t.Errorf("KS statistic %v exceeds %v", d, crit)
	}
}

func TestHeartBounds(t *testing.T) {
	gen := newTestGenerator(t, 4)
	buf := gen.Generate(Shape{Kind: Heart})

	for i := 0; i < buf.Len(); i++ {
		x, y, z := buf.At(i)
		if math.Abs(float64(x)) > 4+1e-4 {
			t.Fatalf("particle %d: |x| = %v exceeds 4", i, x)
		}
		if y > 3+1e-4 || y < -4.25-1e-4 {
			t.Fatalf("particle %d: y = %v outside curve extent", i, y)
		}
		if bound := HeartDepthBound(float64(y)); math.Abs(float64(z)) > bound+1e-4 {
			t.Fatalf("particle %d: |z| = %v exceeds taper %v at y = %v", i, z, bound, y)
		}
	}
}

func TestSaturnPartition(t *testing.T) {
	gen := NewGenerator(20000, nil, rand.New(rand.NewSource(5)))
	buf := gen.Generate(Shape{Kind: Saturn})

	var ring, body int
	for i := 0; i < buf.Len(); i++ {
		x, y, z := buf.At(i)
		rx, ry := UntiltSaturn(float64(x), float64(y))
		if radius(x, y, z) <= saturnPlanet+1e-4 {
			body++
			continue
		}
		planar := math.Hypot(rx, float64(z))
		if planar < saturnInner-1e-3 || planar > saturnOuter+1e-3 || math.Abs(ry) > 0.1+1e-3 {
			t.Fatalf("particle %d neither ring nor body: planar %v, height %v", i, planar, ry)
		}
		ring++
	}

	share := float64(ring) / float64(buf.Len())
	if math.Abs(share-saturnRingShare) > 0.02 {
		t.Errorf("ring share = %.3f (ring %d, body %d), want ~%.2f", share, ring, body, saturnRingShare)
	}
}

func TestFlowerBounds(t *testing.T) {
	gen := newTestGenerator(t, 6)
	buf := gen.Generate(Shape{Kind: Flower})

	for i := 0; i < buf.Len(); i++ {
		x, y, z := buf.At(i)
		if r := math.Hypot(float64(x), float64(y)); r > 4*flowerSpread+1e-4 {
			t.Fatalf("particle %d: planar radius %v exceeds %v", i, r, 4*flowerSpread)
		}
		if math.Abs(float64(z)) > 2+1e-4 {
			t.Fatalf("particle %d: |z| = %v exceeds 2", i, z)
		}
	}
}

func TestZenStrata(t *testing.T) {
	gen := NewGenerator(20000, nil, rand.New(rand.NewSource(7)))
	buf := gen.Generate(Shape{Kind: Zen})

	var base int
	for i := 0; i < buf.Len(); i++ {
		x, y, z := buf.At(i)
		// Only the base ring reaches beyond the torso's x extent of 2.16
		planar := math.Hypot(float64(x), float64(z)/0.6)
		if y >= -2 && y <= -1.5 && planar >= 2-1e-3 && planar <= 3+1e-3 && math.Abs(float64(x)) > 2.2 {
			base++
		}
		if y > 3.3+1e-4 {
			t.Fatalf("particle %d above the head: y = %v", i, y)
		}
	}
	if base == 0 {
		t.Error("expected particles in the crossed-leg base")
	}
}

func TestFireworksRadii(t *testing.T) {
	gen := newTestGenerator(t, 8)
	buf := gen.Generate(Shape{Kind: Fireworks})

	var inner int
	for i := 0; i < buf.Len(); i++ {
		r := radius(buf.At(i))
		if r < fireworksMin-1e-4 || r > fireworksMin+fireworksLength+1e-4 {
			t.Fatalf("particle %d at distance %v outside [0.2, 6.2]", i, r)
		}
		if r < 3.2 {
			inner++
		}
	}
	// Uniform radii put about half the particles inside the midpoint
	if share := float64(inner) / float64(buf.Len()); math.Abs(share-0.5) > 0.03 {
		t.Errorf("inner share = %.3f, want ~0.5", share)
	}
}

func TestGenerateMorph(t *testing.T) {
	gen := newTestGenerator(t, 9)
	cat := DefaultCatalog()

	if got := gen.GenerateMorph(cat.Lookup("Heart")); got != nil {
		t.Errorf("non-morphable shape returned a morph buffer of len %d", len(got))
	}
	morph := gen.GenerateMorph(cat.Lookup("Ligugu"))
	if len(morph) != 3*testParticles {
		t.Errorf("morph len = %d, want %d", len(morph), 3*testParticles)
	}
}

func TestNilRasterizerFallback(t *testing.T) {
	gen := NewGenerator(500, nil, rand.New(rand.NewSource(10)))
	buf := gen.Generate(Shape{Kind: TextForm, Text: "Hi"})
	for i := 0; i < buf.Len(); i++ {
		if r := radius(buf.At(i)); r > 1+1e-4 {
			t.Fatalf("particle %d at radius %v, want unit ball", i, r)
		}
	}
}
