package storage

import (
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
)

// Run is a recorded trajectory: one row per frame, one column per body.
type Run struct {
	Bodies  []string    `json:"bodies"`
	Times   []float64   `json:"times"`
	Speeds  []float64   `json:"speeds"`
	Angles  [][]float64 `json:"angles"`
	Spins   [][]float64 `json:"spins"`
	Elapsed []float64   `json:"elapsed"`
}

func (r *Run) Len() int { return len(r.Times) }

// Column returns one body's orbital phase over time.
func (r *Run) Column(body int) []float64 {
	out := make([]float64, len(r.Angles))
	for i, row := range r.Angles {
		out[i] = row[body]
	}
	return out
}

func (r *Run) Index(name string) int {
	for i, b := range r.Bodies {
		if b == name {
			return i
		}
	}
	return -1
}

// Recorder captures body angles after every frame.
type Recorder struct {
	sc  *scene.Scene
	run *Run
}

func NewRecorder(sc *scene.Scene) *Recorder {
	names := make([]string, len(sc.Bodies))
	for i, b := range sc.Bodies {
		names[i] = b.Name()
	}
	r := &Recorder{sc: sc, run: &Run{Bodies: names}}
	r.capture(0, 0, 0)
	return r
}

func (r *Recorder) OnFrame(f sim.Frame) {
	r.capture(f.SimTime, f.Elapsed, f.State.Speed)
}

func (r *Recorder) capture(t, elapsed, speed float64) {
	r.run.Times = append(r.run.Times, t)
	r.run.Elapsed = append(r.run.Elapsed, elapsed)
	r.run.Speeds = append(r.run.Speeds, speed)
	r.run.Angles = append(r.run.Angles, r.sc.Angles())
	r.run.Spins = append(r.run.Spins, r.sc.Spins())
}

func (r *Recorder) Run() *Run { return r.run }
