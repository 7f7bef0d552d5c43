package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec, tol float64) bool { return r3.Norm(r3.Sub(a, b)) < tol }

func testCamera() *Perspective {
	c := NewPerspective(800, 600)
	c.Position = r3.Vec{Z: 10}
	return c
}

func TestRayThroughCenter(t *testing.T) {
	c := testCamera()
	r := c.Ray(0, 0)
	if !near(r.Dir, r3.Vec{Z: -1}, 1e-12) {
		t.Errorf("expected -Z, got %v", r.Dir)
	}
	if !near(r.At(10), r3.Vec{}, 1e-12) {
		t.Errorf("ray should pass through target, got %v", r.At(10))
	}
}

func TestRayEdgeMatchesFOV(t *testing.T) {
	c := testCamera()
	r := c.Ray(0, 1)
	angle := math.Acos(r3.Dot(r.Dir, r3.Vec{Z: -1}))
	if math.Abs(angle-c.FOV/2*math.Pi/180) > 1e-9 {
		t.Errorf("top edge should be half the FOV off axis, got %f rad", angle)
	}
	if r.Dir.Y <= 0 {
		t.Error("positive ndc y should point up")
	}
	if c.Ray(1, 0).Dir.X <= 0 {
		t.Error("positive ndc x should point right")
	}
}

func TestProjectInvertsRay(t *testing.T) {
	c := testCamera()
	c.Position = r3.Vec{X: 3, Y: 40, Z: 80}
	c.Target = r3.Vec{X: 1, Z: -2}

	for _, ndc := range [][2]float64{{0, 0}, {0.5, -0.25}, {-0.9, 0.9}} {
		p := c.Ray(ndc[0], ndc[1]).At(25)
		x, y, _, ok := c.Project(p)
		if !ok {
			t.Fatalf("point for ndc %v not visible", ndc)
		}
		wantX := (ndc[0] + 1) / 2 * 800
		wantY := (1 - ndc[1]) / 2 * 600
		if math.Abs(x-wantX) > 1e-6 || math.Abs(y-wantY) > 1e-6 {
			t.Errorf("ndc %v projected to (%f,%f), want (%f,%f)", ndc, x, y, wantX, wantY)
		}
	}
}

func TestProjectBehindCamera(t *testing.T) {
	c := testCamera()
	if _, _, _, ok := c.Project(r3.Vec{Z: 20}); ok {
		t.Error("point behind camera should not be visible")
	}
}

func TestResize(t *testing.T) {
	c := testCamera()
	c.Resize(1920, 1080)
	if math.Abs(c.Aspect()-16.0/9) > 1e-12 {
		t.Errorf("unexpected aspect %f", c.Aspect())
	}
	c.Resize(0, 100)
	if c.Width != 1920 {
		t.Error("zero width should be ignored")
	}
}

func TestZoomClampsToBounds(t *testing.T) {
	c := testCamera()
	o := NewOrbitControls(c)
	o.MinDistance, o.MaxDistance = 1, 20

	o.Zoom(10)
	o.Update()
	if math.Abs(o.Distance()-20) > 1e-9 {
		t.Errorf("expected clamp to 20, got %f", o.Distance())
	}

	o.Zoom(0.001)
	o.Update()
	if math.Abs(o.Distance()-1) > 1e-9 {
		t.Errorf("expected clamp to 1, got %f", o.Distance())
	}
}

func TestTighterBoundPullsCameraIn(t *testing.T) {
	c := testCamera()
	c.Position = r3.Vec{Y: 100, Z: 200}
	o := NewOrbitControls(c)
	o.MaxDistance = 10
	o.Update()

	if math.Abs(o.Distance()-10) > 1e-9 {
		t.Errorf("expected distance 10, got %f", o.Distance())
	}
	dir := r3.Unit(c.Position)
	if !near(dir, r3.Unit(r3.Vec{Y: 100, Z: 200}), 1e-9) {
		t.Errorf("clamping should keep direction, got %v", dir)
	}
}

func TestDampingSpreadsMotion(t *testing.T) {
	c := testCamera()
	o := NewOrbitControls(c)
	o.Damping = 0.05

	o.Rotate(math.Pi/2, 0)
	o.Update()
	first := math.Atan2(c.Position.X, c.Position.Z)
	if math.Abs(first-math.Pi/2*0.05) > 1e-9 {
		t.Errorf("expected 5%% of the rotation, got %f", first)
	}

	for i := 0; i < 1000; i++ {
		o.Update()
	}
	final := math.Atan2(c.Position.X, c.Position.Z)
	if math.Abs(final-math.Pi/2) > 1e-6 {
		t.Errorf("expected rotation to settle at pi/2, got %f", final)
	}
	if math.Abs(o.Distance()-10) > 1e-9 {
		t.Errorf("rotation should keep distance, got %f", o.Distance())
	}
}

func TestPanMovesTarget(t *testing.T) {
	c := testCamera()
	o := NewOrbitControls(c)
	o.Pan(2, 1)
	o.Update()

	if !near(o.Target, r3.Vec{X: 2, Y: 1}, 1e-9) {
		t.Errorf("expected target (2,1,0), got %v", o.Target)
	}
	if !near(c.Position, r3.Vec{X: 2, Y: 1, Z: 10}, 1e-9) {
		t.Errorf("camera should move with target, got %v", c.Position)
	}
}

func TestFollowKeepsOffset(t *testing.T) {
	c := testCamera()
	o := NewOrbitControls(c)
	o.Follow(r3.Vec{X: 5, Z: 5})

	if !near(r3.Sub(c.Position, o.Target), r3.Vec{Z: 10}, 1e-12) {
		t.Errorf("offset changed: %v", r3.Sub(c.Position, o.Target))
	}
	if c.Target != o.Target {
		t.Error("camera target not synced")
	}
}

func TestSnapDropsPendingMotion(t *testing.T) {
	c := testCamera()
	o := NewOrbitControls(c)
	o.Damping = 0.05
	o.Rotate(1, 0.5)
	o.Zoom(3)

	o.Snap(r3.Vec{Y: 100, Z: 200}, r3.Vec{})
	o.Update()
	if c.Position != (r3.Vec{Y: 100, Z: 200}) {
		t.Errorf("snap position altered by stale motion: %v", c.Position)
	}
}
