// Package camera provides a perspective camera and orbit-style controls
// over gonum vectors.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half line from Origin along the unit vector Dir.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

func (r Ray) At(t float64) r3.Vec { return r3.Add(r.Origin, r3.Scale(t, r.Dir)) }

// Perspective is a pinhole camera looking from Position at Target.
type Perspective struct {
	Position, Target, Up r3.Vec
	// FOV is the vertical field of view in degrees.
	FOV       float64
	Near, Far float64
	Width     int
	Height    int
}

func NewPerspective(width, height int) *Perspective {
	return &Perspective{
		Up:     r3.Vec{Y: 1},
		FOV:    75,
		Near:   0.1,
		Far:    20000,
		Width:  width,
		Height: height,
	}
}

// Resize changes the output dimensions. Zero or negative sizes are ignored.
func (c *Perspective) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width, c.Height = width, height
}

func (c *Perspective) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Perspective) Basis() (forward, right, up r3.Vec) {
	forward = r3.Sub(c.Target, c.Position)
	if r3.Norm2(forward) == 0 {
		forward = r3.Vec{Z: -1}
	}
	forward = r3.Unit(forward)
	right = r3.Cross(forward, c.Up)
	if r3.Norm2(right) < 1e-18 {
		right = r3.Vec{X: 1}
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return forward, right, up
}

func (c *Perspective) tanHalf() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// Ray casts from the camera through a point in normalized device
// coordinates, x and y in [-1, 1] with +y up.
func (c *Perspective) Ray(ndcX, ndcY float64) Ray {
	forward, right, up := c.Basis()
	th := c.tanHalf()
	dir := r3.Add(forward, r3.Add(
		r3.Scale(ndcX*th*c.Aspect(), right),
		r3.Scale(ndcY*th, up),
	))
	return Ray{Origin: c.Position, Dir: r3.Unit(dir)}
}

// Project maps a world point to pixel coordinates. depth is the distance
// along the view axis; ok is false when the point is outside the frustum.
func (c *Perspective) Project(p r3.Vec) (x, y, depth float64, ok bool) {
	forward, right, up := c.Basis()
	v := r3.Sub(p, c.Position)
	depth = r3.Dot(v, forward)
	if depth <= c.Near || depth >= c.Far {
		return 0, 0, depth, false
	}
	th := c.tanHalf()
	nx := r3.Dot(v, right) / (depth * th * c.Aspect())
	ny := r3.Dot(v, up) / (depth * th)
	x = (nx + 1) / 2 * float64(c.Width)
	y = (1 - ny) / 2 * float64(c.Height)
	return x, y, depth, nx >= -1 && nx <= 1 && ny >= -1 && ny <= 1
}

// PixelRadius is the projected size of a sphere of radius r at depth.
func (c *Perspective) PixelRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r / (depth * c.tanHalf()) * float64(c.Height) / 2
}
