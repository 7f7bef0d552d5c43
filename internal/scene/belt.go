package scene

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/catalog"
)

// Belt is a particle annulus rotated as a whole.
type Belt struct {
	Spec *catalog.BeltSpec
	Node NodeID
}

// scatter draws the belt's particles once.
func scatter(spec *catalog.BeltSpec, rng *rand.Rand) ([]r3.Vec, []colorful.Color) {
	base, err := colorful.Hex(spec.Color)
	if err != nil {
		base = colorful.Color{R: 0.67, G: 0.67, B: 0.67}
	}

	points := make([]r3.Vec, spec.Count)
	colors := make([]colorful.Color, spec.Count)
	for i := range points {
		radius := uniform(rng, spec.Inner, spec.Outer)
		theta := uniform(rng, 0, 2*math.Pi)
		y := uniform(rng, -spec.Jitter, spec.Jitter) * catalog.AUScale
		points[i] = r3.Vec{X: radius * math.Cos(theta), Y: y, Z: radius * math.Sin(theta)}

		k := uniform(rng, 0.5, 1)
		colors[i] = colorful.Color{R: base.R * k, G: base.G * k, B: base.B * k}
	}
	return points, colors
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
