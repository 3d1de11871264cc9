package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/sim"
)

// Simulate produces a trajectory from a clicked initial condition.
type Simulate func(ctx context.Context, x0 dynamo.State) (*sim.Result, error)

type FrameMsg time.Time

const (
	headerRows = 2
	footerRows = 2
	frameRate  = time.Second / 60
)

func frameTick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

type orbit struct {
	points []dynamo.Point
	closed bool
}

// Clicker is the click-to-simulate view: a left click inside the plot
// picks an initial condition, the run is revealed skip points per frame
// and finished orbits stay on screen.
type Clicker struct {
	simulate Simulate
	xlim     []float64
	ylim     []float64
	skip     int
	view     Viewport

	orbits []orbit
	active *orbit
	frames []int
	frame  int

	last   string
	err    error
	theme  int
	width  int
	height int
}

func NewClicker(simulate Simulate, xlim, ylim []float64, skip int) Clicker {
	m := Clicker{
		simulate: simulate,
		xlim:     xlim,
		ylim:     ylim,
		skip:     max(skip, 1),
		width:    80,
		height:   24,
	}
	m.view = m.viewport()
	return m
}

func (m Clicker) viewport() Viewport {
	return NewViewport(m.xlim, m.ylim, m.width, m.height-headerRows-footerRows)
}

func (m Clicker) Init() tea.Cmd { return nil }

func (m Clicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view = m.viewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "c":
			m.orbits, m.active, m.frames = nil, nil, nil
			m.last, m.err = "", nil
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col, row := msg.X, msg.Y-headerRows
		if !m.view.Contains(col, row) {
			return m, nil
		}
		p := m.view.ToWorld(col, row)
		return m.launch(dynamo.State{p.X, p.Y})

	case FrameMsg:
		if m.active == nil {
			return m, nil
		}
		m.frame++
		if m.frame >= len(m.frames)-1 {
			m.finish()
			return m, nil
		}
		return m, frameTick()
	}
	return m, nil
}

// launch runs a simulation from x0 and starts revealing it. An animation
// still in progress is completed instantly.
func (m Clicker) launch(x0 dynamo.State) (Clicker, tea.Cmd) {
	if m.active != nil {
		m.finish()
	}

	res, err := m.simulate(context.Background(), x0)
	if err != nil {
		m.err = err
		m.last = ""
		return m, nil
	}
	m.err = nil

	stream := sim.NewPointStream(res, 0, 1)
	m.active = &orbit{points: stream.Take(stream.Remaining()), closed: res.Closed}
	m.frames = sim.FrameIndices(res.Len(), m.skip)
	m.frame = 0

	state := "open"
	if res.Closed {
		state = fmt.Sprintf("closed at step %d", res.ClosedAt)
	}
	m.last = fmt.Sprintf("x0=(%.3f, %.3f)  %d points  %s", x0[0], x0[1], res.Len(), state)

	if len(m.frames) <= 1 {
		m.finish()
		return m, nil
	}
	return m, frameTick()
}

func (m *Clicker) finish() {
	m.orbits = append(m.orbits, *m.active)
	m.active = nil
	m.frames = nil
	m.frame = 0
}

// Animating reports whether an orbit is still being revealed.
func (m Clicker) Animating() bool { return m.active != nil }

// Orbits returns the number of fully drawn orbits.
func (m Clicker) Orbits() int { return len(m.orbits) }

// Revealed is the number of points of the active orbit on screen.
func (m Clicker) Revealed() int {
	if m.active == nil {
		return 0
	}
	return m.frames[m.frame] + 1
}

func (m Clicker) Err() error { return m.err }

func (m Clicker) View() string {
	st := newStyles(Themes[m.theme])

	var b strings.Builder
	title := fmt.Sprintf("rkloop  x∈[%g, %g]  y∈[%g, %g]", m.view.XLim[0], m.view.XLim[1], m.view.YLim[0], m.view.YLim[1])
	b.WriteString(st.header.Width(max(m.width-1, 1)).Render(title))
	b.WriteByte('\n')

	done := NewCanvas(m.view)
	for _, o := range m.orbits {
		done.Path(o.points)
	}
	live := NewCanvas(m.view)
	if m.active != nil {
		live.Path(m.active.points[:m.Revealed()])
	}
	b.WriteString(compose(done, live, st))

	switch {
	case m.err != nil:
		b.WriteString(st.err.Render(m.err.Error()))
	case m.active != nil:
		frac := float64(m.frame+1) / float64(len(m.frames))
		b.WriteString(st.warn.Render("animating ") + ProgressBar(frac, 20) + "  " + st.muted.Render(m.last))
	case m.last != "":
		b.WriteString(st.ok.Render("done ") + st.muted.Render(m.last))
	default:
		b.WriteString(metric("orbits", fmt.Sprint(len(m.orbits))))
	}
	b.WriteByte('\n')
	b.WriteString(KeyHint.Render("click: simulate  c: clear  t: theme  q: quit"))
	return b.String()
}

// compose overlays the live canvas on the finished one, styling runs of
// cells by which layer they belong to.
func compose(done, live *Canvas, st styles) string {
	var b strings.Builder
	for r := range done.Grid {
		var run []rune
		layer := 0
		flush := func() {
			if len(run) == 0 {
				return
			}
			s := string(run)
			switch layer {
			case 1:
				s = st.orbit.Render(s)
			case 2:
				s = st.active.Render(s)
			}
			b.WriteString(s)
			run = run[:0]
		}
		for c, d := range done.Grid[r] {
			l := live.Grid[r][c]
			cell, kind := d, 0
			switch {
			case l != blank:
				cell, kind = l|d, 2
			case d != blank:
				kind = 1
			}
			if kind != layer {
				flush()
				layer = kind
			}
			run = append(run, cell)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// RunClicker starts the click view on the alternate screen with mouse
// reporting enabled.
func RunClicker(m Clicker) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
