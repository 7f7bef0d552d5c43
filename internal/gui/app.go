// Package gui renders a running driver in a native raylib window.
package gui

import (
	"fmt"
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-logr/logr"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
)

var (
	ColBg      = rl.NewColor(5, 5, 12, 255)
	ColAccent  = rl.NewColor(255, 216, 102, 255)
	ColText    = rl.NewColor(200, 200, 210, 255)
	ColTextDim = rl.NewColor(90, 90, 110, 255)
	ColPanel   = rl.NewColor(10, 10, 20, 200)
	ColPath    = rl.NewColor(255, 255, 255, 60)
)

const telemetryCapacity = 300

type Options struct {
	Width, Height int
	Title         string
	FPS           int
	FontPath      string
	Logger        logr.Logger
}

type App struct {
	driver *sim.Driver
	state  *sim.State
	camera rl.Camera3D
	font   rl.Font
	log    logr.Logger

	// GPU copies of decoded textures, keyed by the decoded texture.
	textures map[*assets.Texture]rl.Texture2D
	spheres  map[scene.NodeID]*sphere

	telemetry []float64
}

// sphere is the GPU model of one sphere node. revision tracks the
// material revision its textures were bound at.
type sphere struct {
	model    rl.Model
	revision int
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func loadFont(path string) rl.Font {
	if _, err := os.Stat(path); path == "" || err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(d *sim.Driver, state *sim.State, opts Options) *App {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &App{
		driver:    d,
		state:     state,
		font:      loadFont(opts.FontPath),
		log:       log.WithName("gui"),
		textures:  make(map[*assets.Texture]rl.Texture2D),
		spheres:   make(map[scene.NodeID]*sphere),
		telemetry: make([]float64, 0, telemetryCapacity),
		camera: rl.Camera3D{
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       float32(d.Camera().FOV),
			Projection: rl.CameraPerspective,
		},
	}
}

// Run opens the window and blocks until it is closed.
func Run(d *sim.Driver, state *sim.State, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "orrery"
	}
	if err := state.Validate(); err != nil {
		return fmt.Errorf("gui: %w", err)
	}

	initWindow(opts)
	defer rl.CloseWindow()

	d.Resize(opts.Width, opts.Height)
	app := NewApp(d, state, opts)
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Close releases every GPU resource the app uploaded.
func (a *App) Close() {
	for _, s := range a.spheres {
		rl.UnloadModel(s.model)
	}
	for _, t := range a.textures {
		rl.UnloadTexture(t)
	}
	a.spheres = nil
	a.textures = nil
}

// Update turns input into driver commands and ticks one frame. It reports
// false when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsWindowResized() {
		a.driver.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	d := a.driver
	if rl.IsKeyPressed(rl.KeySpace) {
		d.Enqueue(sim.TogglePause())
	}
	if rl.IsKeyPressed(rl.KeyV) || rl.IsKeyPressed(rl.KeyTab) {
		d.Enqueue(sim.ToggleMode())
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		next := a.state.Speed * 2
		if next == 0 {
			next = 0.5
		}
		d.Enqueue(sim.SetSpeed(next))
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		d.Enqueue(sim.SetSpeed(a.state.Speed / 2))
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		d.Enqueue(sim.SetSpeed(0))
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		d.Enqueue(sim.SetSpeed(1))
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		d.Enqueue(sim.PointerDown(float64(pos.X), float64(pos.Y)))
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		d.Enqueue(sim.Orbit(-float64(delta.X)*0.005, -float64(delta.Y)*0.005))
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		scale := d.Controls().Distance() * 0.002
		d.Enqueue(sim.Pan(-float64(delta.X)*scale, float64(delta.Y)*scale))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		d.Enqueue(sim.Zoom(1 - float64(wheel)*0.1))
	}

	d.Tick(a.state, float64(rl.GetFrameTime()))

	a.telemetry = append(a.telemetry, a.state.Speed)
	if len(a.telemetry) > telemetryCapacity {
		a.telemetry = a.telemetry[1:]
	}
	return true
}

func (a *App) Draw() {
	a.syncCamera()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.camera)
	a.drawScene()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) syncCamera() {
	c := a.driver.Camera()
	a.camera.Position = vec3(c.Position)
	a.camera.Target = vec3(c.Target)
	a.camera.Up = vec3(c.Up)
	a.camera.Fovy = float32(c.FOV)
}

func (a *App) DrawHUD() {
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()

	a.drawText("orrery", 30, 30, 24, ColAccent)
	a.drawText(fmt.Sprintf(":: %s", a.state.Mode), 130, 34, 16, ColText)

	status, col := "RUNNING", ColText
	if a.state.Paused {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, int(w)-130, 30, 16, col)
	a.drawText(fmt.Sprintf("speed %.2fx", a.state.Speed), int(w)-130, 52, 14, ColText)

	a.DrawTelemetry(30, int(h)-110, 300, 50)
	a.drawText("[SPACE] PAUSE  [+/-] SPEED  [V] VIEW  [RMB] ORBIT  [Q] QUIT", int(w)-560, int(h)-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, int(h)-30, 14, ColTextDim)

	a.drawInfoPanel(int(w))
}

func (a *App) drawInfoPanel(screenW int) {
	panel := a.driver.Panel()
	if !panel.Visible() {
		return
	}
	lines := panel.Lines()
	x, y := screenW-430, 90
	height := 24*len(lines) + 30
	rl.DrawRectangle(int32(x), int32(y), 400, int32(height), ColPanel)
	rl.DrawRectangleLines(int32(x), int32(y), 400, int32(height), ColAccent)
	for i, line := range lines {
		size, c := 14, ColText
		if i == 0 {
			size, c = 20, ColAccent
		}
		a.drawText(line, x+12, y+10+i*24, size, c)
	}

	frac := panel.Remaining(a.driver.Clock().Now()).Seconds() / panel.Duration.Seconds()
	rl.DrawRectangle(int32(x), int32(y+height-4), int32(400*frac), 4, ColAccent)
}

func (a *App) drawText(text string, x, y int, size int, c color.RGBA) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
}

func (a *App) DrawTelemetry(x, y, width, height int) {
	if len(a.telemetry) < 2 {
		return
	}
	lo, hi := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, v := range a.telemetry {
		px := float32(x) + float32(i)/float32(len(a.telemetry))*float32(width)
		py := float32(y+height) - float32((v-lo)/(hi-lo))*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("speed %.2f", a.telemetry[len(a.telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}
