package sim

import (
	"github.com/san-kum/orrery/internal/view"
)

// Command mutates driver or state on the frame goroutine.
type Command interface {
	Apply(d *Driver, s *State)
}

type CommandFunc func(d *Driver, s *State)

func (f CommandFunc) Apply(d *Driver, s *State) { f(d, s) }

func SetSpeed(v float64) Command {
	return CommandFunc(func(_ *Driver, s *State) {
		if v >= 0 {
			s.Speed = v
		}
	})
}

func SetPaused(p bool) Command {
	return CommandFunc(func(_ *Driver, s *State) { s.Paused = p })
}

func TogglePause() Command {
	return CommandFunc(func(_ *Driver, s *State) { s.Paused = !s.Paused })
}

func SetMode(m view.Mode) Command {
	return CommandFunc(func(_ *Driver, s *State) { s.Mode = m })
}

func ToggleMode() Command {
	return CommandFunc(func(_ *Driver, s *State) {
		if s.Mode == view.Follow {
			s.Mode = view.Overview
		} else {
			s.Mode = view.Follow
		}
	})
}

// PointerDown picks at viewport pixel (x, y).
func PointerDown(x, y float64) Command {
	return CommandFunc(func(d *Driver, _ *State) { d.pointerDown(x, y) })
}

// Select shows the info overlay for the named object as if it had been
// picked. Unknown names are ignored.
func Select(name string) Command {
	return CommandFunc(func(d *Driver, _ *State) { d.selectByName(name) })
}

func Resize(width, height int) Command {
	return CommandFunc(func(d *Driver, _ *State) { d.Resize(width, height) })
}

func Orbit(azimuth, polar float64) Command {
	return CommandFunc(func(d *Driver, _ *State) { d.controls.Rotate(azimuth, polar) })
}

func Zoom(factor float64) Command {
	return CommandFunc(func(d *Driver, _ *State) { d.controls.Zoom(factor) })
}

func Pan(dx, dy float64) Command {
	return CommandFunc(func(d *Driver, _ *State) { d.controls.Pan(dx, dy) })
}
