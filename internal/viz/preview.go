package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgeist/flyby/internal/catalog"
	"github.com/mgeist/flyby/internal/scene"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

const tickRate = time.Second / 12

// Model is the terminal frame scrubber: it plays the assembled frames back
// and lets the viewer rotate and zoom the projection.
type Model struct {
	scene   *scene.Scene
	camera  *Camera
	canvas  *Canvas
	frame   int
	playing bool
	width   int
	height  int
}

func NewModel(s *scene.Scene) Model {
	cam := NewCamera()
	cam.Fit(s.Trajectory)
	return Model{
		scene:   s,
		camera:  cam,
		canvas:  NewCanvas(80, 24),
		playing: true,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := msg.Width, msg.Height-4
		if w < 20 {
			w = 20
		}
		if h < 8 {
			h = 8
		}
		m.canvas = NewCanvas(w, h)
	case tickMsg:
		if m.playing {
			m.frame = (m.frame + 1) % len(m.scene.Frames)
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "[":
			m.playing = false
			m.frame = (m.frame - 1 + len(m.scene.Frames)) % len(m.scene.Frames)
		case "]":
			m.playing = false
			m.frame = (m.frame + 1) % len(m.scene.Frames)
		case "c":
			m.playing = false
			m.frame = m.scene.Closest
		case "left":
			m.camera.Yaw -= 0.1
		case "right":
			m.camera.Yaw += 0.1
		case "up":
			m.camera.Pitch += 0.1
		case "down":
			m.camera.Pitch -= 0.1
		case "+", "=":
			m.camera.Zoom *= 1.25
		case "-":
			m.camera.Zoom /= 1.25
		}
	}
	return m, nil
}

// Draw renders the current frame onto the canvas. Split out from View so the
// SVG exporter can reuse it.
func Draw(cv *Canvas, cam *Camera, s *scene.Scene, frame int) {
	cv.Clear()
	for _, sp := range s.Spheres {
		x, y := cam.Project(sp.Center, cv)
		r := cam.ProjectRadius(sp.Radius, cv)
		if r < 1 {
			r = 1
		}
		cv.Circle(x, y, r)
	}
	f := s.Frames[frame]
	for i := 1; i < len(f.Trace); i++ {
		x0, y0 := cam.Project(f.Trace[i-1], cv)
		x1, y1 := cam.Project(f.Trace[i], cv)
		cv.Line(x0, y0, x1, y1)
	}
	x, y := cam.Project(f.Position, cv)
	cv.Cross(x, y, 3)
}

func (m Model) View() string {
	Draw(m.canvas, m.camera, m.scene, m.frame)
	f := m.scene.Frames[m.frame]
	state := "playing"
	if !m.playing {
		state = "paused"
	}
	status := fmt.Sprintf("frame %d/%d | %s | %s | %s",
		m.frame+1, len(m.scene.Frames), f.Label(), catalog.SpacecraftName, state)
	help := "space play/pause  [ ] step  c closest  arrows rotate  +/- zoom  q quit"
	return titleStyle.Render("Neptune flyby preview") + "\n" +
		m.canvas.String() +
		statusStyle.Render(status) + "\n" +
		helpStyle.Render(help)
}

// Run starts the interactive preview.
func Run(s *scene.Scene) error {
	_, err := tea.NewProgram(NewModel(s), tea.WithAltScreen()).Run()
	return err
}
