// Package sim drives the model one frame at a time.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/orrery/internal/view"
)

// State is the user-controlled simulation state. The driver receives it
// explicitly on every tick.
type State struct {
	Paused bool      `json:"paused" yaml:"paused"`
	Speed  float64   `json:"speed" yaml:"speed"`
	Mode   view.Mode `json:"mode" yaml:"mode"`
}

func (s State) Validate() error {
	if s.Speed < 0 || math.IsNaN(s.Speed) || math.IsInf(s.Speed, 0) {
		return fmt.Errorf("speed must be a finite value >= 0, got %v", s.Speed)
	}
	if s.Mode != view.Follow && s.Mode != view.Overview {
		return fmt.Errorf("unknown view mode %d", int(s.Mode))
	}
	return nil
}

// Frame summarises one tick for renderers and observers.
type Frame struct {
	Index    uint64
	Elapsed  float64
	SimTime  float64
	State    State
	Moved    bool
	Textures int
	Commands int
	Picks    []string
	Overlay  bool
	Duration time.Duration
}

type Renderer interface {
	Render(f Frame)
}

type Observer interface {
	OnFrame(f Frame)
}

// Textures is drained on the frame goroutine; completion callbacks run
// inside Drain.
type Textures interface {
	Drain() int
}

type Clock interface {
	Now() time.Time
}

type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	t time.Time
}

func NewManualClock(t time.Time) *ManualClock { return &ManualClock{t: t} }

func (c *ManualClock) Now() time.Time          { return c.t }
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
