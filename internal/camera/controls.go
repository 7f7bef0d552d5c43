package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const minPolar = 1e-6

// OrbitControls moves a camera on a sphere around Target. Input accumulates
// as pending motion that Update releases gradually when Damping is set.
type OrbitControls struct {
	Camera      *Perspective
	Target      r3.Vec
	MinDistance float64
	MaxDistance float64
	// Damping is the fraction of pending motion applied per Update. Zero
	// applies everything at once.
	Damping float64

	dTheta, dPhi float64
	scale        float64
	pan          r3.Vec
}

func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		Camera:      cam,
		Target:      cam.Target,
		MinDistance: 0,
		MaxDistance: math.Inf(1),
		scale:       1,
	}
}

// Rotate queues an azimuth and polar rotation in radians.
func (o *OrbitControls) Rotate(azimuth, polar float64) {
	o.dTheta += azimuth
	o.dPhi += polar
}

// Zoom scales the orbit radius; factors below 1 move closer.
func (o *OrbitControls) Zoom(factor float64) {
	if factor > 0 {
		o.scale *= factor
	}
}

// Pan queues a target translation in camera-right and camera-up units.
func (o *OrbitControls) Pan(dx, dy float64) {
	_, right, up := o.Camera.Basis()
	o.pan = r3.Add(o.pan, r3.Add(r3.Scale(dx, right), r3.Scale(dy, up)))
}

// Snap places the camera and target immediately and drops pending motion.
func (o *OrbitControls) Snap(position, target r3.Vec) {
	o.Camera.Position = position
	o.Target = target
	o.Camera.Target = target
	o.Stop()
}

// Follow moves the target to p and carries the camera along by the same
// offset.
func (o *OrbitControls) Follow(p r3.Vec) {
	delta := r3.Sub(p, o.Target)
	o.Target = p
	o.Camera.Position = r3.Add(o.Camera.Position, delta)
	o.Camera.Target = p
}

func (o *OrbitControls) Stop() {
	o.dTheta, o.dPhi = 0, 0
	o.scale = 1
	o.pan = r3.Vec{}
}

// Distance is the current orbit radius.
func (o *OrbitControls) Distance() float64 {
	return r3.Norm(r3.Sub(o.Camera.Position, o.Target))
}

// Update applies pending motion and the distance bounds.
func (o *OrbitControls) Update() {
	k := 1.0
	if o.Damping > 0 {
		k = o.Damping
	}

	offset := r3.Sub(o.Camera.Position, o.Target)
	radius := r3.Norm(offset)
	moving := o.dTheta != 0 || o.dPhi != 0 || o.scale != 1 || o.pan != (r3.Vec{})
	if !moving && radius >= o.MinDistance && radius <= o.MaxDistance {
		o.Camera.Target = o.Target
		return
	}

	theta, phi := 0.0, math.Pi/2
	if radius > 0 {
		theta = math.Atan2(offset.X, offset.Z)
		phi = math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))
	}
	theta += o.dTheta * k
	phi = math.Max(minPolar, math.Min(math.Pi-minPolar, phi+o.dPhi*k))

	radius *= 1 + (o.scale-1)*k
	radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, radius))

	o.Target = r3.Add(o.Target, r3.Scale(k, o.pan))

	sinPhi := math.Sin(phi)
	o.Camera.Position = r3.Add(o.Target, r3.Vec{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	})
	o.Camera.Target = o.Target

	if o.Damping > 0 {
		o.dTheta *= 1 - k
		o.dPhi *= 1 - k
		o.scale = 1 + (o.scale-1)*(1-k)
		o.pan = r3.Scale(1-k, o.pan)
		if math.Abs(o.dTheta) < 1e-9 && math.Abs(o.dPhi) < 1e-9 && math.Abs(o.scale-1) < 1e-9 && r3.Norm2(o.pan) < 1e-18 {
			o.Stop()
		}
		return
	}
	o.Stop()
}
