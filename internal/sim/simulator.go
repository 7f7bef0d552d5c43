package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/kinematics"
	"github.com/san-kum/orrery/internal/picking"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/view"
)

type Options struct {
	Width, Height int
	Tuning        kinematics.Tuning
	InfoDuration  time.Duration
	Clock         Clock
	Textures      Textures
	Logger        logr.Logger
	// QueueSize bounds pending commands from other goroutines.
	QueueSize int
}

// Driver owns the scene and every controller acting on it. All methods
// except Enqueue must be called from the frame goroutine.
type Driver struct {
	scene    *scene.Scene
	camera   *camera.Perspective
	controls *camera.OrbitControls
	view     *view.Controller
	picking  *picking.Controller
	updater  *kinematics.Updater
	textures Textures
	clock    Clock
	log      logr.Logger

	commands  chan Command
	renderers []Renderer
	observers []Observer

	frame   uint64
	simTime float64
	picks   []string
}

func NewDriver(sc *scene.Scene, opts Options) *Driver {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Tuning == (kinematics.Tuning{}) {
		opts.Tuning = kinematics.DefaultTuning()
	}
	if opts.Clock == nil {
		opts.Clock = WallClock{}
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	cam := camera.NewPerspective(opts.Width, opts.Height)
	controls := camera.NewOrbitControls(cam)
	d := &Driver{
		scene:    sc,
		camera:   cam,
		controls: controls,
		view:     view.New(controls, sc),
		updater:  kinematics.NewUpdater(opts.Tuning),
		textures: opts.Textures,
		clock:    opts.Clock,
		log:      log.WithName("driver"),
		commands: make(chan Command, opts.QueueSize),
	}
	d.picking = picking.NewController(
		picking.NewPicker(sc, cam),
		picking.NewPanel(opts.InfoDuration),
		opts.Clock.Now,
		log,
	)
	return d
}

func (d *Driver) AddRenderer(r Renderer) { d.renderers = append(d.renderers, r) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Scene() *scene.Scene             { return d.scene }
func (d *Driver) Camera() *camera.Perspective     { return d.camera }
func (d *Driver) Controls() *camera.OrbitControls { return d.controls }
func (d *Driver) View() *view.Controller          { return d.view }
func (d *Driver) Panel() *picking.Panel           { return d.picking.Panel }
func (d *Driver) Tuning() kinematics.Tuning       { return d.updater.Tuning }
func (d *Driver) Clock() Clock                    { return d.clock }

// Enqueue hands cmd to the frame goroutine. It never blocks and reports
// false when the queue is full.
func (d *Driver) Enqueue(cmd Command) bool {
	select {
	case d.commands <- cmd:
		return true
	default:
		d.log.V(1).Info("command dropped, queue full")
		return false
	}
}

// Resize recomputes the projection for a new viewport.
func (d *Driver) Resize(width, height int) {
	d.camera.Resize(width, height)
	d.log.V(1).Info("resized", "width", d.camera.Width, "height", d.camera.Height)
}

func (d *Driver) pointerDown(x, y float64) {
	if hit, ok := d.picking.PointerDown(x, y); ok {
		d.picks = append(d.picks, hit.Info.Name)
	}
}

func (d *Driver) selectByName(name string) {
	n := d.scene.Find(name)
	if n == nil || n.Info == nil {
		d.log.V(1).Info("select ignored", "name", name)
		return
	}
	d.picking.Panel.Show(*n.Info, d.clock.Now())
	d.picks = append(d.picks, n.Info.Name)
}

// Tick runs one frame: texture completions, queued commands, kinematics,
// camera, overlay expiry, then renderers and observers.
func (d *Driver) Tick(state *State, elapsed float64) Frame {
	start := time.Now()
	if elapsed < 0 {
		elapsed = 0
	}
	d.picks = d.picks[:0]

	textures := 0
	if d.textures != nil {
		textures = d.textures.Drain()
	}

	commands := 0
drain:
	for {
		select {
		case cmd := <-d.commands:
			cmd.Apply(d, state)
			commands++
		default:
			break drain
		}
	}

	d.view.SetMode(state.Mode)

	moved := d.updater.Step(d.scene, state.Paused, state.Speed, elapsed)
	if moved {
		d.simTime += elapsed * state.Speed * d.updater.Tuning.SpeedScale
	}

	d.view.Update()
	d.picking.Expire()

	d.frame++
	f := Frame{
		Index:    d.frame,
		Elapsed:  elapsed,
		SimTime:  d.simTime,
		State:    *state,
		Moved:    moved,
		Textures: textures,
		Commands: commands,
		Overlay:  d.picking.Panel.Visible(),
	}
	if len(d.picks) > 0 {
		f.Picks = append([]string(nil), d.picks...)
	}

	for _, r := range d.renderers {
		r.Render(f)
	}
	f.Duration = time.Since(start)
	for _, o := range d.observers {
		o.OnFrame(f)
	}
	return f
}

// Run ticks at fps until ctx is done, measuring elapsed time with the
// driver's clock.
func (d *Driver) Run(ctx context.Context, state *State, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	if err := state.Validate(); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := d.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := d.clock.Now()
			d.Tick(state, now.Sub(last).Seconds())
			last = now
		}
	}
}
