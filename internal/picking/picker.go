// Package picking maps pointer positions to scene nodes and manages the
// timed info overlay.
package picking

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/scene"
)

// PointThreshold is how close, in scene units, a ray must pass a belt
// particle to hit it.
const PointThreshold = 1.0

type Hit struct {
	Node     *scene.Node
	Info     catalog.Info
	Distance float64
	Point    r3.Vec
}

// NDC converts viewport pixels to normalized device coordinates.
func NDC(x, y float64, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return x/float64(width)*2 - 1, -(y/float64(height))*2 + 1
}

type Picker struct {
	Scene          *scene.Scene
	Camera         *camera.Perspective
	PointThreshold float64
}

func NewPicker(sc *scene.Scene, cam *camera.Perspective) *Picker {
	return &Picker{Scene: sc, Camera: cam, PointThreshold: PointThreshold}
}

// Pick casts through viewport pixel (x, y).
func (p *Picker) Pick(x, y float64) (Hit, bool) {
	nx, ny := NDC(x, y, p.Camera.Width, p.Camera.Height)
	return p.Cast(p.Camera.Ray(nx, ny))
}

// Cast returns the nearest interactive node along ray.
func (p *Picker) Cast(ray camera.Ray) (Hit, bool) {
	g := p.Scene.Graph
	var best Hit
	found := false

	consider := func(n *scene.Node, t float64) {
		if found && t >= best.Distance {
			return
		}
		best = Hit{Node: n, Distance: t, Point: ray.At(t)}
		if n.Info != nil {
			best.Info = *n.Info
		}
		found = true
	}

	for _, n := range p.Scene.Interactive() {
		world := g.World(n.ID)
		switch n.Kind {
		case scene.Sphere:
			if t, ok := IntersectSphere(ray, world.Origin, n.Radius*world.Scale); ok {
				consider(n, t)
			}
		case scene.Points:
			pts := make([]r3.Vec, len(n.Points))
			for i, q := range n.Points {
				pts[i] = world.Apply(q)
			}
			if t, _, ok := IntersectPoints(ray, pts, p.PointThreshold); ok {
				consider(n, t)
			}
		}
	}
	return best, found
}
