package viz

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/scene"
)

const ringSegments = 48

var (
	pathColor = colorful.Color{R: 0.25, G: 0.25, B: 0.3}
	fallback  = colorful.Color{R: 0.67, G: 0.67, B: 0.67}
)

type disc struct {
	x, y  int
	r     float64
	depth float64
	color colorful.Color
}

// Draw rasterises sc as seen through cam. The camera viewport must match
// the canvas sub-pixel size. Orbit paths and belts are drawn first, then
// spheres from far to near.
func Draw(c *Canvas, sc *scene.Scene, cam *camera.Perspective) {
	c.Clear()
	var discs []disc

	sc.Graph.Walk(func(n *scene.Node, world scene.Frame) {
		if n.ID == sc.Background {
			return
		}
		switch n.Kind {
		case scene.Path:
			drawPath(c, cam, orbitLoop(n.Radius), world, pathColor)
		case scene.Points:
			for i, p := range n.Points {
				x, y, _, ok := cam.Project(world.Apply(p))
				if !ok {
					continue
				}
				col := materialColor(n)
				if i < len(n.Colors) {
					col = n.Colors[i]
				}
				c.Set(int(x), int(y), col)
			}
		case scene.Ring:
			drawPath(c, cam, circle(n.Radius), world, materialColor(n))
			if n.Inner > 0 {
				drawPath(c, cam, circle(n.Inner), world, materialColor(n))
			}
		case scene.Sphere:
			// translucent shells would hide the surface below them
			if n.Material != nil && n.Material.Opacity < 1 {
				return
			}
			x, y, depth, ok := cam.Project(world.Origin)
			if !ok {
				return
			}
			discs = append(discs, disc{
				x:     int(x),
				y:     int(y),
				r:     cam.PixelRadius(n.Radius*world.Scale, depth),
				depth: depth,
				color: materialColor(n),
			})
		}
	})

	sort.Slice(discs, func(i, j int) bool { return discs[i].depth > discs[j].depth })
	for _, d := range discs {
		c.FillCircle(d.x, d.y, d.r, d.color)
	}
}

func drawPath(c *Canvas, cam *camera.Perspective, points []r3.Vec, world scene.Frame, col colorful.Color) {
	if len(points) == 0 {
		return
	}
	var px, py int
	prev := false
	for i := 0; i <= len(points); i++ {
		p := points[i%len(points)]
		x, y, _, ok := cam.Project(world.Apply(p))
		if ok && prev {
			c.DrawLine(px, py, int(x), int(y), col)
		}
		px, py, prev = int(x), int(y), ok
	}
}

// circle samples a closed loop of radius r in the local XY plane, the
// plane rings are built in.
func circle(r float64) []r3.Vec {
	pts := make([]r3.Vec, ringSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ringSegments
		pts[i] = r3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}

// orbitLoop samples a closed loop of radius r in the local XZ plane.
func orbitLoop(r float64) []r3.Vec {
	pts := circle(r)
	for i, p := range pts {
		pts[i] = r3.Vec{X: p.X, Z: p.Y}
	}
	return pts
}

func materialColor(n *scene.Node) colorful.Color {
	if n.Material == nil {
		return fallback
	}
	return n.Material.Color()
}
