package shapes

import (
	"math"
	"math/rand"
)

// Layout constants for the procedural forms.
const (
	sphereRadius = 4.0

	heartScale   = 0.25
	heartDepth   = 5.0  // Full z band at the widest point
	heartTaperAt = 20.0 // |y| (unscaled) at which the band would close

	saturnRingShare = 0.6
	saturnInner     = 4.0
	saturnOuter     = 8.0
	saturnRingThick = 0.2
	saturnPlanet    = 2.5
	saturnTilt      = math.Pi / 6

	flowerPetals = 4
	flowerSpread = 0.8

	fireworksMin    = 0.2
	fireworksLength = 6.0
)

// Generator produces target buffers for a fixed particle count.
// It is not safe for concurrent use; the random source is shared.
type Generator struct {
	n    int
	rng  *rand.Rand
	text *Rasterizer
}

// NewGenerator creates a generator for n particles. text may be nil, in which
// case every text form takes the unit-sphere fallback.
func NewGenerator(n int, text *Rasterizer, rng *rand.Rand) *Generator {
	return &Generator{n: n, rng: rng, text: text}
}

// Count returns the particle count every generated buffer is sized for.
func (g *Generator) Count() int {
	return g.n
}

// Generate samples a fresh target buffer for shape. Every particle is drawn
// independently; successive calls for the same shape differ.
func (g *Generator) Generate(s Shape) Buffer {
	if s.Kind == TextForm {
		return g.rasterize(s.Text)
	}

	sample := samplerFor(s.Kind)
	buf := NewBuffer(g.n)
	for i := 0; i < g.n; i++ {
		x, y, z := sample(g.rng)
		buf.Set(i, x, y, z)
	}
	return buf
}

// GenerateMorph samples the companion buffer of a morphable shape.
// Returns nil for every other shape.
func (g *Generator) GenerateMorph(s Shape) Buffer {
	if !s.Morphable() {
		return nil
	}
	return g.rasterize(s.MorphText)
}

func (g *Generator) rasterize(text string) Buffer {
	if g.text == nil {
		return fallbackBuffer(g.n, g.rng)
	}
	return g.text.Rasterize(text, g.n, g.rng)
}

type sampler func(rng *rand.Rand) (x, y, z float64)

func samplerFor(k Kind) sampler {
	switch k {
	case Heart:
		return sampleHeart
	case Flower:
		return sampleFlower
	case Saturn:
		return sampleSaturn
	case Zen:
		return sampleZen
	case Fireworks:
		return sampleFireworks
	default:
		return sampleSphere
	}
}

// randomInSphere returns a point uniformly distributed in the ball of the given radius.
func randomInSphere(rng *rand.Rand, radius float64) (x, y, z float64) {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	r := math.Cbrt(rng.Float64()) * radius
	return r * math.Sin(phi) * math.Cos(theta),
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi)
}

// randomDirection returns a unit vector uniformly distributed on the sphere.
func randomDirection(rng *rand.Rand) (x, y, z float64) {
	theta := 2 * math.Pi * rng.Float64()
	cosPhi := 2*rng.Float64() - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	return sinPhi * math.Cos(theta), sinPhi * math.Sin(theta), cosPhi
}

func sampleSphere(rng *rand.Rand) (x, y, z float64) {
	return randomInSphere(rng, sphereRadius)
}

// HeartDepthBound returns the maximum |z| of a heart particle at height y.
func HeartDepthBound(y float64) float64 {
	hy := y / heartScale
	return heartDepth / 2 * (1 - math.Abs(hy)/heartTaperAt)
}

func sampleHeart(rng *rand.Rand) (x, y, z float64) {
	t := rng.Float64() * 2 * math.Pi
	band := (rng.Float64() - 0.5) * heartDepth

	s := math.Sin(t)
	hx := 16 * s * s * s
	hy := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)

	x = hx * heartScale
	y = hy * heartScale
	z = band * (1 - math.Abs(hy)/heartTaperAt)
	return x, y, z
}

func sampleSaturn(rng *rand.Rand) (x, y, z float64) {
	if rng.Float64() < saturnRingShare {
		theta := rng.Float64() * 2 * math.Pi
		radius := saturnInner + rng.Float64()*(saturnOuter-saturnInner)
		x = radius * math.Cos(theta)
		z = radius * math.Sin(theta)
		y = (rng.Float64() - 0.5) * saturnRingThick
	} else {
		x, y, z = randomInSphere(rng, saturnPlanet)
	}

	// Tilt about the viewing axis
	cosT, sinT := math.Cos(saturnTilt), math.Sin(saturnTilt)
	return x*cosT - y*sinT, x*sinT + y*cosT, z
}

// UntiltSaturn reverses the fixed Saturn tilt, returning ring-plane coordinates.
func UntiltSaturn(x, y float64) (float64, float64) {
	cosT, sinT := math.Cos(-saturnTilt), math.Sin(-saturnTilt)
	return x*cosT - y*sinT, x*sinT + y*cosT
}

func sampleFlower(rng *rand.Rand) (x, y, z float64) {
	theta := rng.Float64() * 2 * math.Pi
	phi := (rng.Float64() - 0.5) * math.Pi
	r := 3*math.Abs(math.Cos(flowerPetals*theta)) + 1

	x = r * math.Cos(theta) * math.Cos(phi) * flowerSpread
	y = r * math.Sin(theta) * math.Cos(phi) * flowerSpread
	z = 2 * math.Sin(phi)
	return x, y, z
}

// sampleZen stacks a head, an oval torso and a flattened ring of crossed legs.
func sampleZen(rng *rand.Rand) (x, y, z float64) {
	part := rng.Float64()
	switch {
	case part < 0.2:
		x, y, z = randomInSphere(rng, 0.8)
		return x, y + 2.5, z
	case part < 0.6:
		x, y, z = randomInSphere(rng, 1.8)
		return x * 1.2, y * 1.4, z * 0.8
	default:
		theta := rng.Float64() * 2 * math.Pi
		rad := 2 + rng.Float64()
		x = rad * math.Cos(theta)
		y = -2 + rng.Float64()*0.5
		z = rad * math.Sin(theta) * 0.6
		return x, y, z
	}
}

// sampleFireworks picks a uniform direction and an independently uniform
// distance, which crowds particles toward the core.
func sampleFireworks(rng *rand.Rand) (x, y, z float64) {
	dx, dy, dz := randomDirection(rng)
	d := fireworksMin + rng.Float64()*fireworksLength
	return dx * d, dy * d, dz * d
}

// fallbackBuffer fills a buffer with points in the unit ball.
func fallbackBuffer(n int, rng *rand.Rand) Buffer {
	buf := NewBuffer(n)
	for i := 0; i < n; i++ {
		x, y, z := randomInSphere(rng, 1)
		buf.Set(i, x, y, z)
	}
	return buf
}
