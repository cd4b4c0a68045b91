package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/morphfield/components"
	"github.com/pthm-cable/morphfield/config"
)

// Star sizing in world units.
const (
	starSizeMin   = 0.2
	starSizeRange = 0.4
	phaseSpread   = 1000.0 // Noise-space distance between star phases
)

// Backdrop is a shell of twinkling stars behind the field.
type Backdrop struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Star, components.Twinkle]
	filter *ecs.Filter3[components.Position, components.Star, components.Twinkle]
	noise  opensimplex.Noise
	speed  float64
	count  int
}

// NewBackdrop scatters cfg.Count stars uniformly in direction between
// cfg.Radius and cfg.Radius+cfg.Depth from the origin.
func NewBackdrop(cfg config.BackdropConfig) *Backdrop {
	world := ecs.NewWorld()
	b := &Backdrop{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Star, components.Twinkle](world),
		filter: ecs.NewFilter3[components.Position, components.Star, components.Twinkle](world),
		noise:  opensimplex.NewNormalized(cfg.Seed),
		speed:  cfg.TwinkleSpeed,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Count; i++ {
		theta := 2 * math.Pi * rng.Float64()
		cosPhi := 2*rng.Float64() - 1
		sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
		r := cfg.Radius + rng.Float64()*cfg.Depth

		pos := components.Position{
			X: float32(r * sinPhi * math.Cos(theta)),
			Y: float32(r * sinPhi * math.Sin(theta)),
			Z: float32(r * cosPhi),
		}
		star := components.Star{
			Size:  float32(starSizeMin + rng.Float64()*starSizeRange),
			Phase: float32(rng.Float64() * phaseSpread),
		}
		tw := components.Twinkle{Brightness: 1}
		b.mapper.NewEntity(&pos, &star, &tw)
		b.count++
	}
	return b
}

// Update recomputes every star's brightness at elapsed seconds.
func (b *Backdrop) Update(elapsed float64) {
	t := elapsed * b.speed
	query := b.filter.Query()
	for query.Next() {
		_, star, tw := query.Get()
		tw.Brightness = float32(b.noise.Eval2(float64(star.Phase), t))
	}
}

// Each calls fn for every star.
func (b *Backdrop) Each(fn func(pos components.Position, size, brightness float32)) {
	query := b.filter.Query()
	for query.Next() {
		pos, star, tw := query.Get()
		fn(*pos, star.Size, tw.Brightness)
	}
}

// Count returns the number of stars.
func (b *Backdrop) Count() int {
	return b.count
}
