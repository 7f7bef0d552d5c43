// Package view switches the camera between following the home body and a
// wide overview of the system.
package view

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/scene"
)

var (
	FollowOffset     = r3.Vec{Z: 3}
	OverviewPosition = r3.Vec{Y: 100, Z: 200}
	OverviewTarget   = r3.Vec{}
)

const (
	FollowMaxDistance   = 10.0
	OverviewMaxDistance = 2000.0
	MinDistance         = 1.0
	Damping             = 0.05
)

type Controller struct {
	controls *camera.OrbitControls
	sc       *scene.Scene
	mode     Mode
}

// New configures controls and starts in Follow on the scene's home body.
func New(controls *camera.OrbitControls, sc *scene.Scene) *Controller {
	controls.MinDistance = MinDistance
	controls.Damping = Damping
	c := &Controller{controls: controls, sc: sc, mode: Follow}
	c.enter(Follow)
	return c
}

func (c *Controller) Mode() Mode                      { return c.mode }
func (c *Controller) Controls() *camera.OrbitControls { return c.controls }

// HomePosition is the home body's current world position, or the origin
// when the scene has no home body.
func (c *Controller) HomePosition() r3.Vec {
	if c.sc.Home == nil {
		return r3.Vec{}
	}
	return c.sc.WorldPosition(c.sc.Home)
}

// SetMode snaps the camera to m. Setting the current mode does nothing.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	c.enter(m)
}

func (c *Controller) Toggle() Mode {
	if c.mode == Follow {
		c.SetMode(Overview)
	} else {
		c.SetMode(Follow)
	}
	return c.mode
}

func (c *Controller) enter(m Mode) {
	c.mode = m
	switch m {
	case Overview:
		c.controls.MaxDistance = OverviewMaxDistance
		c.controls.Snap(OverviewPosition, OverviewTarget)
	default:
		home := c.HomePosition()
		c.controls.MaxDistance = FollowMaxDistance
		c.controls.Snap(r3.Add(home, FollowOffset), home)
	}
}

// Update runs once per frame after kinematics. In Follow the target is
// re-synced to the home body before damping is applied.
func (c *Controller) Update() {
	if c.mode == Follow {
		c.controls.Follow(c.HomePosition())
	}
	c.controls.Update()
}
