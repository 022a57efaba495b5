package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odeivp/internal/ivp"
)

const (
	replayFPS      = 30
	maxReplaySpeed = 64
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/replayFPS, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay steps through a finished trajectory, revealing speed samples per
// frame. It keeps its own copy of the samples.
type Replay struct {
	title    string
	tr       *ivp.Trajectory
	exact    []float64
	shown    int
	speed    int
	running  bool
	theme    Theme
	width    int
	height   int
	warning  string
	quitting bool
}

func NewReplay(title string, tr *ivp.Trajectory, exact []float64) Replay {
	if len(exact) != tr.Len() {
		exact = nil
	}
	return Replay{
		title:   title,
		tr:      tr.Clone(),
		exact:   exact,
		shown:   1,
		speed:   1,
		running: true,
		theme:   ThemeCyberpunk,
		width:   60,
		height:  10,
	}
}

// WithWarning shows a banner, e.g. for a partial trajectory.
func (m Replay) WithWarning(msg string) Replay {
	m.warning = msg
	return m
}

// WithTheme selects one of ThemeNames.
func (m Replay) WithTheme(name string) (Replay, error) {
	theme, err := LookupTheme(name)
	if err != nil {
		return m, err
	}
	m.theme = theme
	return m, nil
}

func (m Replay) Theme() string { return m.theme.Name }

func (m Replay) Init() tea.Cmd {
	return tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.shown = 1
			m.running = true
		case "+", "=":
			m.speed = min(m.speed*2, maxReplaySpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "t":
			m.theme = m.theme.next()
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-12, 20)
		m.height = max(msg.Height-14, 5)
	case TickMsg:
		if m.running {
			m.shown = min(m.shown+m.speed, m.tr.Len())
			if m.Done() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

// Done reports whether every sample has been revealed.
func (m Replay) Done() bool {
	return m.shown >= m.tr.Len()
}

func (m Replay) Shown() int { return m.shown }

func (m Replay) Running() bool { return m.running }

func (m Replay) Speed() int { return m.speed }

func (m Replay) View() string {
	if m.quitting {
		return ""
	}
	theme := m.theme

	var b strings.Builder
	b.WriteString(theme.title().Render(m.title))
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(StatusWarning.Render("! " + m.warning))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := &ivp.Trajectory{T: m.tr.T[:m.shown], X: m.tr.X[:m.shown]}
	var exact []float64
	if m.exact != nil {
		exact = m.exact[:m.shown]
	}
	b.WriteString(PlotSolution(visible, exact, PlotOptions{Width: m.width, Height: m.height}))
	b.WriteString("\n")
	b.WriteString(Separator(m.width))
	b.WriteString("\n")

	t, x := m.tr.At(m.shown - 1)
	status := StatusRunning.Render("running")
	if !m.running {
		status = StatusPaused.Render("paused")
	}
	if m.Done() {
		status = theme.accent().Render("done")
	}

	fmt.Fprintf(&b, "%s  %s  %d/%d  x%d\n", status,
		ProgressBar(float64(m.shown)/float64(m.tr.Len()), 30), m.shown, m.tr.Len(), m.speed)
	fmt.Fprintf(&b, "%s %s  %s %s",
		MetricLabel.Render("t"), MetricValue.Render(fmt.Sprintf("%.6f", t)),
		MetricLabel.Render("x"), MetricValue.Render(fmt.Sprintf("%.8f", x)))
	if m.exact != nil {
		fmt.Fprintf(&b, "  %s %s", MetricLabel.Render("err"),
			MetricValue.Render(fmt.Sprintf("%.3e", x-m.exact[m.shown-1])))
	}
	b.WriteString("\n\n")
	b.WriteString(KeyHint.Render("space pause · r restart · +/- speed · t theme · q quit"))
	b.WriteString("  ")
	b.WriteString(theme.muted().Render(theme.Name))
	b.WriteString("\n")
	return b.String()
}

// RunReplay blocks until the user quits.
func RunReplay(m Replay) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
