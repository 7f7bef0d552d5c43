package kinematics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/scene"
)

func newScene(t *testing.T, seed int64) *scene.Scene {
	t.Helper()
	sc, err := scene.Build(catalog.Default(), scene.Options{Rand: rand.New(rand.NewSource(seed))})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return sc
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestAdvanceOrbitIncrement(t *testing.T) {
	sc := newScene(t, 1)
	tun := DefaultTuning()
	before := sc.Angles()

	dt, s := 0.016, 1.5
	Advance(sc, dt, s, tun)

	for i, b := range sc.Bodies {
		want := dt * s * (2 * math.Pi / b.Spec.OrbitalPeriod) * tun.KOrbit
		got := b.Angle - before[i]
		if !approx(got, want) {
			t.Errorf("%s: expected increment %g, got %g", b.Name(), want, got)
		}
		if got <= 0 {
			t.Errorf("%s: angle did not increase", b.Name())
		}

		pos := sc.Graph.Node(b.Frame).Transform.Position
		if !approx(pos.X, b.Spec.Distance*math.Cos(b.Angle)) || !approx(pos.Z, b.Spec.Distance*math.Sin(b.Angle)) || pos.Y != 0 {
			t.Errorf("%s: frame position %v inconsistent with angle", b.Name(), pos)
		}
	}
}

func TestMercuryOutpacesNeptune(t *testing.T) {
	sc := newScene(t, 2)
	tun := DefaultTuning()
	mercury, neptune := sc.Body("Mercury"), sc.Body("Neptune")
	m0, n0 := mercury.Angle, neptune.Angle

	Advance(sc, 1, 2, tun)

	dm := mercury.Angle - m0
	dn := neptune.Angle - n0
	if !approx(dm, 2*(2*math.Pi/0.241)*tun.KOrbit) {
		t.Errorf("mercury increment %g", dm)
	}
	if !approx(dn, 2*(2*math.Pi/164.8)*tun.KOrbit) {
		t.Errorf("neptune increment %g", dn)
	}
	if ratio := dm / dn; math.Abs(ratio-684) > 1 {
		t.Errorf("expected ratio ~684, got %f", ratio)
	}
}

func TestShorterPeriodIsFaster(t *testing.T) {
	sc := newScene(t, 3)
	tun := DefaultTuning()
	before := sc.Angles()
	Advance(sc, 0.5, 3, tun)

	for i, a := range sc.Bodies {
		for j, b := range sc.Bodies {
			if a.Spec.OrbitalPeriod >= b.Spec.OrbitalPeriod {
				continue
			}
			if a.Angle-before[i] <= b.Angle-before[j] {
				t.Errorf("%s (%.3f yr) should outpace %s (%.3f yr)", a.Name(), a.Spec.OrbitalPeriod, b.Name(), b.Spec.OrbitalPeriod)
			}
		}
	}
}

func TestPauseAndZeroSpeedFreeze(t *testing.T) {
	tests := []struct {
		name   string
		paused bool
		speed  float64
	}{
		{"paused", true, 2},
		{"zero speed", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene(t, 4)
			u := NewUpdater(DefaultTuning())
			angles, spins := sc.Angles(), sc.Spins()
			belt := sc.Graph.Node(sc.Belts[0].Node).Transform.Rotation.Y

			for i := 0; i < 50; i++ {
				if u.Step(sc, tt.paused, tt.speed, 0.1) {
					t.Fatal("step reported motion")
				}
			}

			for i, a := range sc.Angles() {
				if a != angles[i] || sc.Spins()[i] != spins[i] {
					t.Errorf("%s moved", sc.Bodies[i].Name())
				}
			}
			if sc.Graph.Node(sc.Belts[0].Node).Transform.Rotation.Y != belt {
				t.Error("belt moved")
			}
		})
	}

	sc := newScene(t, 4)
	before := sc.Angles()
	Advance(sc, 10, 0, DefaultTuning())
	for i, a := range sc.Angles() {
		if a != before[i] {
			t.Errorf("speed 0 changed %s", sc.Bodies[i].Name())
		}
	}
}

func TestLinearInSpeed(t *testing.T) {
	tun := DefaultTuning()
	a := newScene(t, 5)
	b := newScene(t, 5)
	a0, as0 := a.Angles(), a.Spins()

	Advance(a, 0.2, 1.25, tun)
	Advance(b, 0.2, 2.5, tun)

	for i := range a.Bodies {
		da := a.Bodies[i].Angle - a0[i]
		db := b.Bodies[i].Angle - a0[i]
		if !approx(db, 2*da) {
			t.Errorf("%s: orbit not linear, %g vs %g", a.Bodies[i].Name(), db, 2*da)
		}
		sa := a.Spins()[i] - as0[i]
		sb := b.Spins()[i] - as0[i]
		if !approx(sb, 2*sa) {
			t.Errorf("%s: spin not linear, %g vs %g", a.Bodies[i].Name(), sb, 2*sa)
		}
	}
}

func TestRetrogradeSpin(t *testing.T) {
	sc := newScene(t, 6)
	spins := sc.Spins()
	Advance(sc, 1, 1, DefaultTuning())

	delta := func(name string) float64 {
		for i, b := range sc.Bodies {
			if b.Name() == name {
				return sc.Spins()[i] - spins[i]
			}
		}
		t.Fatalf("no body %s", name)
		return 0
	}

	for _, name := range []string{"Venus", "Uranus"} {
		if delta(name) >= 0 {
			t.Errorf("%s should spin negative, got %g", name, delta(name))
		}
	}
	for _, name := range []string{"Earth", "Mars", "Jupiter"} {
		if delta(name) <= 0 {
			t.Errorf("%s should spin positive, got %g", name, delta(name))
		}
	}
}

func TestCloudsDecoupledFromSurface(t *testing.T) {
	sc := newScene(t, 7)
	tun := DefaultTuning()
	earth := sc.Body("Earth")
	surface := sc.Graph.Node(earth.Mesh)
	clouds := sc.Graph.Node(earth.Clouds)

	Advance(sc, 1, 1, tun)

	ratio := clouds.Transform.Rotation.Y / surface.Transform.Rotation.Y
	if !approx(ratio, tun.KCloud/tun.KSpin) {
		t.Errorf("expected cloud/surface ratio %f, got %f", tun.KCloud/tun.KSpin, ratio)
	}
}

func TestBeltsAndStarRotate(t *testing.T) {
	sc := newScene(t, 8)
	tun := DefaultTuning()
	Advance(sc, 2, 3, tun)

	for _, belt := range sc.Belts {
		got := sc.Graph.Node(belt.Node).Transform.Rotation.Y
		if !approx(got, 2*3*belt.Spec.Rate) {
			t.Errorf("%s: expected %g, got %g", belt.Spec.Name, 2*3*belt.Spec.Rate, got)
		}
	}
	if sc.Graph.Node(sc.Star.Node).Transform.Rotation.Y <= 0 {
		t.Error("star should spin prograde")
	}
}

func TestReplayDeterminism(t *testing.T) {
	steps := []struct{ dt, speed float64 }{
		{0.016, 1}, {0.017, 1}, {0.5, 4}, {0.001, 0.25}, {0.033, 0}, {0.1, 10},
	}
	run := func() ([]float64, []float64) {
		sc := newScene(t, 42)
		u := NewUpdater(DefaultTuning())
		for i := 0; i < 20; i++ {
			for _, s := range steps {
				u.Step(sc, false, s.speed, s.dt)
			}
		}
		return sc.Angles(), sc.Spins()
	}

	a1, s1 := run()
	a2, s2 := run()
	for i := range a1 {
		if a1[i] != a2[i] || s1[i] != s2[i] {
			t.Fatalf("replay diverged at body %d", i)
		}
	}
}

func TestSatelliteFollowsHost(t *testing.T) {
	sc := newScene(t, 9)
	earth, moon := sc.Body("Earth"), sc.Body("Moon")

	for i := 0; i < 10; i++ {
		Advance(sc, 0.5, 5, DefaultTuning())
		ep := sc.WorldPosition(earth)
		mp := sc.WorldPosition(moon)
		d := math.Sqrt((mp.X-ep.X)*(mp.X-ep.X) + (mp.Y-ep.Y)*(mp.Y-ep.Y) + (mp.Z-ep.Z)*(mp.Z-ep.Z))
		if math.Abs(d-3) > 1e-9 {
			t.Fatalf("moon drifted from earth: distance %f", d)
		}
	}
}

func TestUpdaterAppliesSpeedScale(t *testing.T) {
	tun := DefaultTuning()
	a := newScene(t, 10)
	b := newScene(t, 10)

	NewUpdater(tun).Step(a, false, 2, 0.1)
	Advance(b, 0.1, 2*tun.SpeedScale, tun)

	for i := range a.Bodies {
		if a.Bodies[i].Angle != b.Bodies[i].Angle {
			t.Errorf("%s: updater and Advance disagree", a.Bodies[i].Name())
		}
	}
}
