package stream

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/sim"
)

type Vec [3]float64

func vec(v r3.Vec) Vec { return Vec{v.X, v.Y, v.Z} }

type Body struct {
	Name     string  `json:"name"`
	Position Vec     `json:"position"`
	Radius   float64 `json:"radius"`
	Angle    float64 `json:"angle"`
	Spin     float64 `json:"spin"`
}

type Camera struct {
	Position Vec `json:"position"`
	Target   Vec `json:"target"`
}

type Overlay struct {
	Visible   bool    `json:"visible"`
	Text      string  `json:"text,omitempty"`
	Remaining float64 `json:"remaining,omitempty"`
}

// Snapshot is an immutable copy of one frame, safe to hand to other
// goroutines.
type Snapshot struct {
	Frame   uint64   `json:"frame"`
	SimTime float64  `json:"sim_time"`
	Speed   float64  `json:"speed"`
	Paused  bool     `json:"paused"`
	Mode    string   `json:"mode"`
	Camera  Camera   `json:"camera"`
	Star    Body     `json:"star"`
	Bodies  []Body   `json:"bodies"`
	Picks   []string `json:"picks,omitempty"`
	Overlay Overlay  `json:"overlay"`
}

// Capture reads the driver's scene. Call it on the frame goroutine only.
func Capture(d *sim.Driver, f sim.Frame) Snapshot {
	sc := d.Scene()
	snap := Snapshot{
		Frame:   f.Index,
		SimTime: f.SimTime,
		Speed:   f.State.Speed,
		Paused:  f.State.Paused,
		Mode:    f.State.Mode.String(),
		Camera: Camera{
			Position: vec(d.Camera().Position),
			Target:   vec(d.Controls().Target),
		},
		Bodies: make([]Body, 0, len(sc.Bodies)),
	}
	if len(f.Picks) > 0 {
		snap.Picks = append([]string(nil), f.Picks...)
	}

	if sc.Star != nil {
		n := sc.Graph.Node(sc.Star.Node)
		snap.Star = Body{
			Name:     sc.Star.Spec.Name,
			Position: vec(sc.Graph.WorldPosition(sc.Star.Node)),
			Radius:   sc.Star.Spec.Radius,
			Spin:     n.Transform.Rotation.Y,
		}
	}
	for _, b := range sc.Bodies {
		snap.Bodies = append(snap.Bodies, Body{
			Name:     b.Name(),
			Position: vec(sc.WorldPosition(b)),
			Radius:   b.Spec.Radius,
			Angle:    b.Angle,
			Spin:     sc.Graph.Node(b.Mesh).Transform.Rotation.Y,
		})
	}

	panel := d.Panel()
	if panel.Visible() {
		snap.Overlay = Overlay{
			Visible:   true,
			Text:      panel.Render(),
			Remaining: panel.Remaining(d.Clock().Now()).Seconds(),
		}
	}
	return snap
}
