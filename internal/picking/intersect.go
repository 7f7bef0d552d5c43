package picking

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/camera"
)

// IntersectSphere returns the smallest t >= 0 at which ray meets the sphere.
// A ray starting inside the sphere reports its exit point.
func IntersectSphere(ray camera.Ray, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(ray.Origin, center)
	b := r3.Dot(oc, ray.Dir)
	c := r3.Norm2(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	if t := -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}

// IntersectPoints returns the ray parameter of the nearest point lying
// within threshold of the ray.
func IntersectPoints(ray camera.Ray, points []r3.Vec, threshold float64) (float64, int, bool) {
	best, idx := math.Inf(1), -1
	th2 := threshold * threshold
	for i, p := range points {
		t := r3.Dot(r3.Sub(p, ray.Origin), ray.Dir)
		if t < 0 || t >= best {
			continue
		}
		if r3.Norm2(r3.Sub(p, ray.At(t))) <= th2 {
			best, idx = t, i
		}
	}
	return best, idx, idx >= 0
}
