// Package kinematics advances orbital phases and spins once per frame.
//
// Every rate is linear in elapsed time and speed, so a run is fully
// determined by its initial angles and the sequence of (elapsed, speed)
// pairs it was fed.
package kinematics

import (
	"math"

	"github.com/san-kum/orrery/internal/scene"
)

// Tuning holds the cosmetic pacing constants.
type Tuning struct {
	// SpeedScale converts the user speed control into the speed passed to Advance.
	SpeedScale float64 `yaml:"speed_scale"`
	KOrbit     float64 `yaml:"k_orbit"`
	KSpin      float64 `yaml:"k_spin"`
	KCloud     float64 `yaml:"k_cloud"`
}

func DefaultTuning() Tuning {
	return Tuning{
		SpeedScale: 0.5,
		KOrbit:     1.0 / 60,
		KSpin:      1.0 / 10,
		KCloud:     1.0 / 15,
	}
}

// OrbitRate is the angular velocity of an orbit with the given period.
func (t Tuning) OrbitRate(period, speed float64) float64 {
	return speed * (2 * math.Pi / period) * t.KOrbit
}

// SpinRate is the signed angular velocity of a surface with the given
// rotation period. Negative periods spin retrograde.
func (t Tuning) SpinRate(period, speed float64) float64 {
	sign := 1.0
	if period < 0 {
		sign = -1
	}
	return speed * (2 * math.Pi / math.Abs(period)) * sign * t.KSpin
}

// CloudRate divides by the signed period and uses KCloud, so cloud layers
// drift against the surface they cover.
func (t Tuning) CloudRate(period, speed float64) float64 {
	return speed * (2 * math.Pi / period) * t.KCloud
}

// Advance moves every body, shell, belt and the star forward by elapsed
// seconds at the given speed.
func Advance(sc *scene.Scene, elapsed, speed float64, t Tuning) {
	g := sc.Graph
	for _, b := range sc.Bodies {
		spec := b.Spec
		b.Angle += elapsed * t.OrbitRate(spec.OrbitalPeriod, speed)

		frame := g.Node(b.Frame)
		frame.Transform.Position.X = spec.Distance * math.Cos(b.Angle)
		frame.Transform.Position.Y = 0
		frame.Transform.Position.Z = spec.Distance * math.Sin(b.Angle)

		g.Node(b.Mesh).Transform.Rotation.Y += elapsed * t.SpinRate(spec.RotationPeriod, speed)

		if clouds := g.Node(b.Clouds); clouds != nil {
			clouds.Transform.Rotation.Y += elapsed * t.CloudRate(spec.RotationPeriod, speed)
		}
	}

	if sc.Star != nil {
		g.Node(sc.Star.Node).Transform.Rotation.Y += elapsed * t.SpinRate(sc.Star.Spec.RotationPeriod, speed)
	}

	for _, belt := range sc.Belts {
		g.Node(belt.Node).Transform.Rotation.Y += elapsed * speed * belt.Spec.Rate
	}
}

// Updater applies Advance from the simulation controls.
type Updater struct {
	Tuning Tuning
}

func NewUpdater(t Tuning) *Updater { return &Updater{Tuning: t} }

// Step advances sc unless paused. speed is the raw user control value.
// It reports whether anything moved.
func (u *Updater) Step(sc *scene.Scene, paused bool, speed, elapsed float64) bool {
	if paused || speed <= 0 || elapsed <= 0 {
		return false
	}
	Advance(sc, elapsed, speed*u.Tuning.SpeedScale, u.Tuning)
	return true
}
