package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/view"
)

var (
	ErrUnknownOp = errors.New("stream: unknown op")
	ErrBadValue  = errors.New("stream: bad value")
)

// Message is a control message sent by a browser client, e.g.
// {"op":"speed","value":1.5} or {"op":"pick","x":10,"y":20}.
type Message struct {
	Op     string          `json:"op"`
	Value  json.RawMessage `json:"value,omitempty"`
	X      float64         `json:"x,omitempty"`
	Y      float64         `json:"y,omitempty"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
}

// ParseCommand decodes a control message into a driver command.
func ParseCommand(data []byte) (sim.Command, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return msg.Command()
}

func (m Message) Command() (sim.Command, error) {
	switch m.Op {
	case "speed":
		var v float64
		if err := json.Unmarshal(m.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: speed: %v", ErrBadValue, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: speed %v", ErrBadValue, v)
		}
		return sim.SetSpeed(v), nil

	case "pause":
		if len(m.Value) == 0 {
			return sim.TogglePause(), nil
		}
		var p bool
		if err := json.Unmarshal(m.Value, &p); err != nil {
			return nil, fmt.Errorf("%w: pause: %v", ErrBadValue, err)
		}
		return sim.SetPaused(p), nil

	case "view":
		if len(m.Value) == 0 {
			return sim.ToggleMode(), nil
		}
		var s string
		if err := json.Unmarshal(m.Value, &s); err != nil {
			return nil, fmt.Errorf("%w: view: %v", ErrBadValue, err)
		}
		mode, err := view.ParseMode(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return sim.SetMode(mode), nil

	case "pick":
		return sim.PointerDown(m.X, m.Y), nil

	case "select":
		var name string
		if err := json.Unmarshal(m.Value, &name); err != nil || name == "" {
			return nil, fmt.Errorf("%w: select", ErrBadValue)
		}
		return sim.Select(name), nil

	case "resize":
		if m.Width <= 0 || m.Height <= 0 {
			return nil, fmt.Errorf("%w: viewport %dx%d", ErrBadValue, m.Width, m.Height)
		}
		return sim.Resize(m.Width, m.Height), nil

	case "orbit":
		return sim.Orbit(m.X, m.Y), nil

	case "zoom":
		var f float64
		if err := json.Unmarshal(m.Value, &f); err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: zoom", ErrBadValue)
		}
		return sim.Zoom(f), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOp, m.Op)
}
