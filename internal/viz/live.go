package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/sim"
)

const (
	sidebarWidth    = 40
	historyCapacity = 240
	maxElapsed      = 0.25
)

type TickMsg time.Time

type Options struct {
	FPS   int
	Theme string
	// GIFPath is where the g key writes recordings.
	GIFPath string
	Logger  logr.Logger
}

// Model is the terminal front end of a driver. Bubble Tea calls Update on
// a single goroutine, which is also the frame goroutine.
type Model struct {
	driver *sim.Driver
	state  *sim.State
	canvas *Canvas
	theme  Theme
	styles styles
	fps    int
	last   time.Time
	log    logr.Logger

	frame      sim.Frame
	speeds     []float64
	frameTimes []float64

	menu     *menu
	recorder *gifRecorder
	gifPath  string
	showHelp bool
	status   string
}

func NewModel(d *sim.Driver, state *sim.State, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "orrery.gif"
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	theme := GetTheme(opts.Theme)
	m := Model{
		driver:     d,
		state:      state,
		canvas:     NewCanvas(80, 24),
		theme:      theme,
		styles:     newStyles(theme),
		fps:        opts.FPS,
		log:        log.WithName("tui"),
		speeds:     make([]float64, 0, historyCapacity),
		frameTimes: make([]float64, 0, historyCapacity),
		gifPath:    opts.GIFPath,
	}
	d.Resize(m.canvas.PixelWidth(), m.canvas.PixelHeight())
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.canvas.Resize(w-sidebarWidth-3, h-1)
	m.driver.Resize(m.canvas.PixelWidth(), m.canvas.PixelHeight())
}

func (m *Model) step(now time.Time) {
	elapsed := 0.0
	if !m.last.IsZero() {
		elapsed = min(now.Sub(m.last).Seconds(), maxElapsed)
	}
	m.last = now

	m.frame = m.driver.Tick(m.state, elapsed)
	m.speeds = appendCapped(m.speeds, m.state.Speed)
	m.frameTimes = appendCapped(m.frameTimes, float64(m.frame.Duration.Microseconds())/1000)

	Draw(m.canvas, m.driver.Scene(), m.driver.Camera())
	if m.recorder != nil {
		m.recorder.Capture(m.canvas)
	}
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu != nil {
		if name, done := m.menu.key(msg.String()); done {
			if name != "" {
				m.driver.Enqueue(sim.Select(name))
			}
			m.menu = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.recorder != nil {
			m.saveGIF()
		}
		return m, tea.Quit
	case " ":
		m.driver.Enqueue(sim.TogglePause())
	case "+", "=":
		next := m.state.Speed * 2
		if next == 0 {
			next = 0.5
		}
		m.driver.Enqueue(sim.SetSpeed(next))
	case "-", "_":
		m.driver.Enqueue(sim.SetSpeed(m.state.Speed / 2))
	case "0":
		m.driver.Enqueue(sim.SetSpeed(0))
	case "1":
		m.driver.Enqueue(sim.SetSpeed(1))
	case "v", "tab":
		m.driver.Enqueue(sim.ToggleMode())
	case "left", "h":
		m.driver.Enqueue(sim.Orbit(-0.1, 0))
	case "right", "l":
		m.driver.Enqueue(sim.Orbit(0.1, 0))
	case "up", "k":
		m.driver.Enqueue(sim.Orbit(0, -0.1))
	case "down", "j":
		m.driver.Enqueue(sim.Orbit(0, 0.1))
	case "[":
		m.driver.Enqueue(sim.Zoom(0.8))
	case "]":
		m.driver.Enqueue(sim.Zoom(1.25))
	case "b":
		m.menu = newMenu(m.driver.Scene())
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "g":
		if m.recorder != nil {
			m.saveGIF()
		} else {
			m.recorder = newGIFRecorder(m.fps)
			m.status = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) saveGIF() {
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.log.Error(err, "saving recording failed", "path", m.gifPath)
		m.status = "recording failed"
	} else {
		m.log.Info("recording saved", "path", m.gifPath, "frames", m.recorder.Len())
		m.status = "saved " + m.gifPath
	}
	m.recorder = nil
}

// handleMouse maps terminal cells to the centre of their dot block, the
// same pixel space the camera renders into.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.X >= m.canvas.Width || msg.Y >= m.canvas.Height {
		return
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.driver.Enqueue(sim.PointerDown(float64(msg.X*2+1), float64(msg.Y*4+2)))
	case msg.Button == tea.MouseButtonWheelUp:
		m.driver.Enqueue(sim.Zoom(0.9))
	case msg.Button == tea.MouseButtonWheelDown:
		m.driver.Enqueue(sim.Zoom(1.1))
	}
}

func (m Model) View() string {
	st := m.styles
	var s strings.Builder

	from, _ := colorful.Hex(string(m.theme.Primary))
	to, _ := colorful.Hex(string(m.theme.Accent))
	s.WriteString(st.header.Render(GradientText("ORRERY", from, to)) + "\n")

	if m.state.Paused {
		s.WriteString(st.paused.Render("PAUSED"))
	} else {
		s.WriteString(st.running.Render("RUNNING"))
	}
	if m.recorder != nil {
		s.WriteString("  " + st.paused.Render("● REC"))
	} else if m.status != "" {
		s.WriteString("  " + st.label.Render(m.status))
	}
	s.WriteString("\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Speed", fmt.Sprintf("%.2fx", m.state.Speed))
	row("View", m.state.Mode.String())
	row("Time", fmt.Sprintf("%.1fs", m.frame.SimTime))
	row("Frame", fmt.Sprintf("%d", m.frame.Index))

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(3), asciigraph.Width(sidebarWidth-12), asciigraph.Caption("speed"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if len(m.frameTimes) > 0 {
		s.WriteString(st.label.Render("ms/frame") + st.graph.Render(Sparkline(m.frameTimes, sidebarWidth-14)) + "\n")
	}

	panel := m.driver.Panel()
	if panel.Visible() {
		remaining := panel.Remaining(m.driver.Clock().Now())
		text := strings.TrimRight(panel.Render(), "\n")
		bar := ProgressBar(remaining.Seconds()/panel.Duration.Seconds(), sidebarWidth-8)
		s.WriteString("\n" + st.info.Render(text+"\n"+bar) + "\n")
	}

	if m.menu != nil {
		s.WriteString("\n" + m.menu.view(st) + "\n")
	}

	if m.showHelp {
		s.WriteString(st.help.Render(helpText))
	} else {
		s.WriteString(st.help.Render("SP:Pause +/-:Speed V:View\nB:Bodies ?:Help Q:Quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.Render()),
		st.sidebar.Render(s.String()),
	)
}

const helpText = `Space   pause / resume
+ -     double / halve speed
0 1     stop / normal speed
V Tab   follow / overview
Arrows  orbit camera
[ ]     zoom in / out
Click   show body info
B       body list
T       cycle theme
G       record GIF
Q       quit`

// Run starts the terminal view and blocks until the user quits or ctx is
// done.
func Run(ctx context.Context, d *sim.Driver, state *sim.State, opts Options) error {
	p := tea.NewProgram(NewModel(d, state, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
