package sim

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/view"
)

// delayedTextures completes every request on a fixed drain call.
type delayedTextures struct {
	at      int
	drains  int
	pending []func()
}

func (d *delayedTextures) Load(path string, done func(*assets.Texture)) {
	d.pending = append(d.pending, func() { done(&assets.Texture{Path: path, Width: 1, Height: 1}) })
}

func (d *delayedTextures) Drain() int {
	d.drains++
	if d.drains != d.at {
		return 0
	}
	n := len(d.pending)
	for _, fn := range d.pending {
		fn()
	}
	d.pending = nil
	return n
}

type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) OnFrame(f Frame) { r.frames = append(r.frames, f) }
func (r *frameRecorder) Render(f Frame)  {}

func newScene(t *testing.T, seed int64, loader scene.TextureLoader) *scene.Scene {
	t.Helper()
	sc, err := scene.Build(catalog.Default(), scene.Options{Rand: rand.New(rand.NewSource(seed)), Loader: loader})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return sc
}

func TestTickAdvancesAndPauses(t *testing.T) {
	d := NewDriver(newScene(t, 1, nil), Options{Logger: testr.New(t)})
	state := &State{Speed: 1}
	before := d.Scene().Angles()

	f := d.Tick(state, 0.016)
	if !f.Moved || f.Index != 1 {
		t.Errorf("unexpected frame %+v", f)
	}
	moved := d.Scene().Angles()
	for i := range moved {
		if moved[i] <= before[i] {
			t.Errorf("body %d did not advance", i)
		}
	}

	state.Paused = true
	for i := 0; i < 10; i++ {
		d.Tick(state, 0.016)
	}
	for i, a := range d.Scene().Angles() {
		if a != moved[i] {
			t.Errorf("body %d moved while paused", i)
		}
	}
}

func TestTextureCompletionIsolatedToItsFrame(t *testing.T) {
	loader := &delayedTextures{at: 5}
	d := NewDriver(newScene(t, 1, loader), Options{Textures: loader})
	ref := NewDriver(newScene(t, 1, nil), Options{})
	earth := d.Scene().Find("Earth")

	state, refState := &State{Speed: 1}, &State{Speed: 1}
	for i := 1; i <= 8; i++ {
		f := d.Tick(state, 0.02)
		ref.Tick(refState, 0.02)

		if i < 5 && earth.Material.Textured() {
			t.Fatalf("frame %d: texture applied early", i)
		}
		if i == 5 && (f.Textures == 0 || !earth.Material.Textured()) {
			t.Fatalf("frame 5: expected textures to land, got %d", f.Textures)
		}
		if i != 5 && f.Textures != 0 {
			t.Fatalf("frame %d: unexpected texture completions", i)
		}

		got, want := d.Scene().Angles(), ref.Scene().Angles()
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("frame %d: texture load changed body %d", i, j)
			}
		}
	}
	// color, normal and specular maps
	if earth.Material.Revision != 3 {
		t.Errorf("expected three material updates, got %d", earth.Material.Revision)
	}
}

func TestCommandsApplyOnTick(t *testing.T) {
	d := NewDriver(newScene(t, 2, nil), Options{})
	state := &State{Speed: 1}

	var wg sync.WaitGroup
	for _, cmd := range []Command{SetSpeed(4), ToggleMode(), Resize(640, 480)} {
		wg.Add(1)
		go func(c Command) {
			defer wg.Done()
			d.Enqueue(c)
		}(cmd)
	}
	wg.Wait()

	if state.Speed != 1 || d.Camera().Width != 1280 {
		t.Fatal("commands applied before tick")
	}

	f := d.Tick(state, 0.01)
	if f.Commands != 3 {
		t.Errorf("expected 3 commands, got %d", f.Commands)
	}
	if state.Speed != 4 || state.Mode != view.Overview {
		t.Errorf("unexpected state %+v", state)
	}
	if d.View().Mode() != view.Overview {
		t.Error("view controller not reconciled with state")
	}
	if d.Camera().Width != 640 || d.Camera().Height != 480 {
		t.Errorf("resize not applied: %dx%d", d.Camera().Width, d.Camera().Height)
	}
}

func TestEnqueueFullQueue(t *testing.T) {
	d := NewDriver(newScene(t, 2, nil), Options{QueueSize: 1})
	if !d.Enqueue(TogglePause()) {
		t.Fatal("first enqueue should succeed")
	}
	if d.Enqueue(TogglePause()) {
		t.Error("second enqueue should be dropped")
	}
}

func TestOverlayExpiresOnTick(t *testing.T) {
	clock := NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	d := NewDriver(newScene(t, 3, nil), Options{Clock: clock, Width: 800, Height: 600})
	state := &State{Speed: 1, Mode: view.Overview}
	d.Tick(state, 0)

	// look straight down at the star
	d.Camera().Position.X, d.Camera().Position.Y, d.Camera().Position.Z = 0, 30, 0

	d.Enqueue(PointerDown(400, 300))
	state.Paused = true
	f := d.Tick(state, 0)
	if len(f.Picks) != 1 || f.Picks[0] != "Sun" || !f.Overlay {
		t.Fatalf("expected sun pick, got %+v", f)
	}

	clock.Advance(9 * time.Second)
	if !d.Tick(state, 0).Overlay {
		t.Error("overlay hid early")
	}
	clock.Advance(time.Second)
	if d.Tick(state, 0).Overlay {
		t.Error("overlay should hide after ten seconds")
	}
}

func TestObserversAndRenderers(t *testing.T) {
	d := NewDriver(newScene(t, 4, nil), Options{})
	rec := &frameRecorder{}
	d.AddObserver(rec)
	d.AddRenderer(rec)

	state := &State{Speed: 2}
	for i := 0; i < 3; i++ {
		d.Tick(state, 0.5)
	}
	if len(rec.frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(rec.frames))
	}
	for i, f := range rec.frames {
		if f.Index != uint64(i+1) {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
	}
	want := 3 * 0.5 * 2 * d.Tuning().SpeedScale
	if got := rec.frames[2].SimTime; got < want-1e-12 || got > want+1e-12 {
		t.Errorf("expected sim time %f, got %f", want, got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := NewDriver(newScene(t, 5, nil), Options{})
	rec := &frameRecorder{}
	d.AddObserver(rec)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := d.Run(ctx, &State{Speed: 1}, 100)
	if err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if len(rec.frames) == 0 {
		t.Error("expected at least one frame")
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	d := NewDriver(newScene(t, 5, nil), Options{})
	if err := d.Run(context.Background(), &State{Speed: 1}, 0); err == nil {
		t.Error("expected error for zero fps")
	}
	if err := d.Run(context.Background(), &State{Speed: -1}, 30); err == nil {
		t.Error("expected error for negative speed")
	}
}

func TestSelectShowsOverlay(t *testing.T) {
	d := NewDriver(newScene(t, 5, nil), Options{})
	state := &State{Speed: 1}

	d.Enqueue(Select("Jupiter"))
	f := d.Tick(state, 0.016)
	if !f.Overlay || len(f.Picks) != 1 || f.Picks[0] != "Jupiter" {
		t.Fatalf("expected jupiter overlay, got %+v", f)
	}
	if d.Panel().Info().Name != "Jupiter" {
		t.Errorf("panel shows %q", d.Panel().Info().Name)
	}

	d.Enqueue(Select("Vulcan"))
	f = d.Tick(state, 0.016)
	if len(f.Picks) != 0 || d.Panel().Info().Name != "Jupiter" {
		t.Errorf("unknown name changed the overlay: %+v", f)
	}
}
