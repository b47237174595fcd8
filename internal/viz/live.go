// Package viz renders a running simulation as a terminal view: the
// body cloud on a braille canvas next to live diagnostics. It is a
// driver for the physics core, not a scene renderer; it owns the frame
// loop and feeds dt into the pipeline like any other caller.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/phys"
)

const (
	canvasWidth  = 70
	canvasHeight = 24
	historyCap   = 240
)

type TickMsg time.Time

// Model is the bubbletea model for the live view.
type Model struct {
	pipeline *phys.Pipeline
	reg      *body.Registry
	initial  *body.Registry
	dt       float64
	name     string

	t        float64
	steps    int
	contacts int
	running  bool
	zoom     float64
	canvas   *Canvas

	keHistory      []float64
	contactHistory []float64
}

func NewModel(name string, reg *body.Registry, pipeline *phys.Pipeline, dt float64) Model {
	return Model{
		pipeline: pipeline,
		reg:      reg,
		initial:  reg.Clone(),
		dt:       dt,
		name:     name,
		running:  true,
		zoom:     1.0,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.zoom *= 1.2
		case "-", "_":
			m.zoom /= 1.2
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	contacts := m.pipeline.Step(m.reg, m.dt)
	m.t += m.dt
	m.steps++
	m.contacts = len(contacts)

	m.keHistory = append(m.keHistory, m.reg.TotalKineticEnergy())
	if len(m.keHistory) > historyCap {
		m.keHistory = m.keHistory[1:]
	}
	m.contactHistory = append(m.contactHistory, float64(len(contacts)))
	if len(m.contactHistory) > historyCap {
		m.contactHistory = m.contactHistory[1:]
	}
}

func (m *Model) reset() {
	m.reg = m.initial.Clone()
	m.t = 0
	m.steps = 0
	m.contacts = 0
	m.keHistory = m.keHistory[:0]
	m.contactHistory = m.contactHistory[:0]
}

// draw projects the cloud onto the x/y plane. World units map to
// sub-pixels through the zoom factor; body radii map the same way so
// the planets read larger than the debris.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := canvasWidth*2, canvasHeight*4
	scale := float64(ch) / 14.0 * m.zoom

	m.reg.Each(func(i int, b *body.Body) {
		px := cw/2 + int(b.Pos.X*scale)
		py := ch/2 - int(b.Pos.Y*scale)
		r := int(b.Radius * scale)
		m.canvas.FillCircle(px, py, r)
	})
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.reg.Len())) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", m.contacts)) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.zoom)) + "\n")

	if len(m.keHistory) > 1 {
		chart := asciigraph.Plot(m.keHistory,
			asciigraph.Height(4),
			asciigraph.Width(32),
			asciigraph.Caption("kinetic energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if len(m.contactHistory) > 1 {
		chart := asciigraph.Plot(m.contactHistory,
			asciigraph.Height(4),
			asciigraph.Width(32),
			asciigraph.Caption("contacts/step"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause  R:Reset  +/-:Zoom  Q:Quit"))

	return joinPanels(canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
}
