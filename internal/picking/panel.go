package picking

import (
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/catalog"
)

const DefaultDuration = 10 * time.Second

// Panel is the info overlay. Each Show restarts its countdown.
type Panel struct {
	Duration time.Duration

	info     catalog.Info
	visible  bool
	deadline time.Time
}

func NewPanel(d time.Duration) *Panel {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Panel{Duration: d}
}

func (p *Panel) Show(info catalog.Info, now time.Time) {
	p.info = info
	p.visible = true
	p.deadline = now.Add(p.Duration)
}

// Expire hides the panel once its deadline has passed and reports whether
// it did so on this call.
func (p *Panel) Expire(now time.Time) bool {
	if !p.visible || now.Before(p.deadline) {
		return false
	}
	p.visible = false
	return true
}

func (p *Panel) Visible() bool       { return p.visible }
func (p *Panel) Info() catalog.Info  { return p.info }
func (p *Panel) Deadline() time.Time { return p.deadline }

func (p *Panel) Remaining(now time.Time) time.Duration {
	if !p.visible {
		return 0
	}
	return max(0, p.deadline.Sub(now))
}

// Lines is the overlay content, name first.
func (p *Panel) Lines() []string {
	i := p.info
	return []string{
		i.Name,
		i.SizeComparison,
		i.MassComparison,
		"Diameter: " + i.Diameter,
		"Distance from Sun: " + i.DistSun,
		"Year Length: " + i.OrbPeriod,
		"Day Length: " + i.RotPeriod,
		"Moons: " + i.Moons,
		"Fun Fact: " + i.FunFact,
	}
}

// Render returns the content as text, or "" while hidden.
func (p *Panel) Render() string {
	if !p.visible {
		return ""
	}
	return strings.Join(p.Lines(), "\n") + "\n"
}
