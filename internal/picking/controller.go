package picking

import (
	"time"

	"github.com/go-logr/logr"
)

// Controller routes pointer presses to the picker and the overlay.
type Controller struct {
	Picker *Picker
	Panel  *Panel

	now func() time.Time
	log logr.Logger
}

func NewController(p *Picker, panel *Panel, now func() time.Time, log logr.Logger) *Controller {
	if now == nil {
		now = time.Now
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Controller{Picker: p, Panel: panel, now: now, log: log.WithName("picking")}
}

// PointerDown shows the nearest hit's metadata. A miss leaves the overlay
// untouched.
func (c *Controller) PointerDown(x, y float64) (Hit, bool) {
	hit, ok := c.Picker.Pick(x, y)
	if !ok {
		c.log.V(2).Info("pick missed", "x", x, "y", y)
		return hit, false
	}
	c.Panel.Show(hit.Info, c.now())
	c.log.V(1).Info("picked", "name", hit.Info.Name, "distance", hit.Distance)
	return hit, true
}

// Expire hides the overlay when its time is up.
func (c *Controller) Expire() bool { return c.Panel.Expire(c.now()) }
