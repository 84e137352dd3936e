package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mandelview/internal/analysis"
	"github.com/san-kum/mandelview/internal/mandel"
	"github.com/san-kum/mandelview/internal/storage"
)

const (
	panelWidth     = 34
	defaultPixels  = 64
	maxHistoryPlot = 60
)

// renderedMsg carries a finished render back into the update loop.
type renderedMsg struct {
	view    mandel.Viewport
	grid    *mandel.Grid
	summary analysis.Summary
	elapsed time.Duration
}

type savedMsg struct {
	id  string
	err error
}

// Model is the explorer state. The viewport shown on screen is always the
// result of the commands applied so far; renders trail behind it.
type Model struct {
	renderer *mandel.Renderer
	cfg      mandel.Config
	store    *storage.Store
	canvas   *BlockCanvas

	view    mandel.Viewport
	history []mandel.Viewport
	pos     int

	grid      *mandel.Grid
	gridView  mandel.Viewport
	summary   analysis.Summary
	elapsed   time.Duration
	inSetHist []float64

	rendering bool
	pending   bool

	pixels        int
	width, height int
	theme         Theme
	st            styles
	showHelp      bool
	status        string
}

// NewModel builds an explorer starting at start. store may be nil, in which
// case snapshots are disabled.
func NewModel(r *mandel.Renderer, store *storage.Store, start mandel.Viewport) Model {
	theme := ThemeGoldenrod
	return Model{
		renderer:  r,
		cfg:       r.Config(),
		store:     store,
		canvas:    NewBlockCanvas(),
		view:      start,
		history:   []mandel.Viewport{start},
		pixels:    defaultPixels,
		rendering: true,
		width:     80,
		height:    24,
		theme:     theme,
		st:        newStyles(theme),
	}
}

// Init issues the first render; NewModel already marks it in flight.
func (m Model) Init() tea.Cmd {
	return m.renderCmd(m.view)
}

// Viewport returns the viewport the explorer is currently positioned at.
func (m Model) Viewport() mandel.Viewport { return m.view }

func (m Model) renderCmd(v mandel.Viewport) tea.Cmd {
	r, size := m.renderer, m.pixels
	return func() tea.Msg {
		start := time.Now()
		counts := r.Counts(v, size, size)
		return renderedMsg{
			view:    v,
			grid:    r.Colorize(counts),
			summary: analysis.Summarize(counts),
			elapsed: time.Since(start),
		}
	}
}

// requestRender starts a render unless one is already running, in which
// case the latest viewport is rendered once the current one lands.
func (m *Model) requestRender() tea.Cmd {
	if m.rendering {
		m.pending = true
		return nil
	}
	m.rendering = true
	return m.renderCmd(m.view)
}

func (m *Model) navigate(cmd mandel.Command) tea.Cmd {
	m.view = m.cfg.Apply(m.view, cmd)
	m.history = append(m.history[:m.pos+1], m.view)
	m.pos = len(m.history) - 1
	m.status = cmd.String()
	return m.requestRender()
}

func (m *Model) seek(delta int) tea.Cmd {
	next := m.pos + delta
	if next < 0 || next >= len(m.history) {
		return nil
	}
	m.pos = next
	m.view = m.history[next]
	m.status = fmt.Sprintf("history %d/%d", next+1, len(m.history))
	return m.requestRender()
}

func (m Model) saveCmd() tea.Cmd {
	if m.store == nil {
		return func() tea.Msg { return savedMsg{err: fmt.Errorf("no store configured")} }
	}
	r, st, v, cfg := m.renderer, m.store, m.view, m.cfg
	return func() tea.Msg {
		start := time.Now()
		counts := r.Counts(v, cfg.Width, cfg.Height)
		id, err := st.Save(&storage.Render{
			Name:     "snapshot",
			Viewport: v,
			Config:   cfg,
			Counts:   counts,
			Grid:     r.Colorize(counts),
			Elapsed:  time.Since(start),
			Stats:    analysis.Summarize(counts).Map(),
		})
		return savedMsg{id: id, err: err}
	}
}

// keyCommands maps explorer keys onto viewport commands.
var keyCommands = map[string]mandel.Command{
	"w":     mandel.CmdUp,
	"up":    mandel.CmdUp,
	"s":     mandel.CmdDown,
	"down":  mandel.CmdDown,
	"a":     mandel.CmdLeft,
	"left":  mandel.CmdLeft,
	"d":     mandel.CmdRight,
	"right": mandel.CmdRight,
	"+":     mandel.CmdZoomIn,
	"=":     mandel.CmdZoomIn,
	"-":     mandel.CmdZoomOut,
	"_":     mandel.CmdZoomOut,
	"r":     mandel.CmdReset,
}

// CommandForKey reports the viewport command bound to a key, if any.
func CommandForKey(key string) (mandel.Command, bool) {
	cmd, ok := keyCommands[key]
	return cmd, ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if m.showHelp {
			m.showHelp = false
			if key != "q" && key != "ctrl+c" {
				return m, nil
			}
		}
		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "[":
			return m, m.seek(-1)
		case "]":
			return m, m.seek(1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
			m.status = "theme " + m.theme.Name
			return m, nil
		case "p":
			m.status = "saving..."
			return m, m.saveCmd()
		}
		if cmd, ok := CommandForKey(key); ok {
			return m, m.navigate(cmd)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.pixels = canvasPixels(msg.Width, msg.Height)
		return m, m.requestRender()

	case renderedMsg:
		m.rendering = false
		m.grid = msg.grid
		m.gridView = msg.view
		m.summary = msg.summary
		m.elapsed = msg.elapsed
		m.inSetHist = append(m.inSetHist, msg.summary.InSetFraction*100)
		if len(m.inSetHist) > maxHistoryPlot {
			m.inSetHist = m.inSetHist[len(m.inSetHist)-maxHistoryPlot:]
		}
		if m.pending {
			m.pending = false
			return m, m.requestRender()
		}

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.id
		}
	}
	return m, nil
}

// canvasPixels picks the largest square grid that fits next to the panel.
// Each terminal row holds two pixels.
func canvasPixels(width, height int) int {
	w := width - panelWidth - 4
	h := (height - 1) * 2
	n := min(w, h)
	if n < 8 {
		return 8
	}
	return n
}

func (m Model) View() string {
	if m.showHelp {
		return m.viewHelp()
	}
	canvas := m.canvas.Render(m.grid)
	if canvas == "" {
		canvas = m.st.muted.Render("rendering...")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, "  ", m.viewPanel())
}

func (m Model) viewPanel() string {
	st := m.st
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(st.label.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(st.value.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(GradientText("MANDELVIEW", m.cfg.Base, m.cfg.Accent))
	b.WriteString("\n")
	if m.rendering {
		b.WriteString(st.busy.Render("● rendering"))
	} else {
		b.WriteString(st.ready.Render("● ready"))
	}
	b.WriteString("\n\n")

	row("real", fmt.Sprintf("%.10g", m.view.Corner.Re))
	row("imag", fmt.Sprintf("%.10g", m.view.Corner.Im))
	row("side", fmt.Sprintf("%.6g", m.view.SideLength))
	row("zoom", fmt.Sprintf("%.4gx", m.view.Magnification()))
	row("grid", fmt.Sprintf("%dx%d", m.pixels, m.pixels))
	row("history", fmt.Sprintf("%d/%d", m.pos+1, len(m.history)))
	b.WriteString("\n")

	if m.grid != nil {
		row("in set", fmt.Sprintf("%.1f%%", m.summary.InSetFraction*100))
		row("mean", fmt.Sprintf("%.2f", m.summary.MeanEscape))
		row("bands", fmt.Sprintf("%d", m.summary.Bands))
		row("time", fmt.Sprintf("%dms", m.elapsed.Milliseconds()))
		b.WriteString("\n")
	}

	if len(m.inSetHist) > 1 {
		b.WriteString(asciigraph.Plot(m.inSetHist,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-10),
			asciigraph.Caption("in set %")))
		b.WriteString("\n")
	} else {
		b.WriteString(SparklineChart(m.inSetHist, panelWidth-4, st.value))
		b.WriteString("\n")
	}

	b.WriteString(Separator(panelWidth-4, st.label))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(st.warning.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(st.muted.Render("wasd pan  +/- zoom  ? help"))

	return st.panel.Width(panelWidth).Render(b.String())
}

func (m Model) viewHelp() string {
	lines := []string{
		m.st.title.Render("KEYS"),
		"",
		"w a s d / arrows   pan",
		"+ / -              zoom in / out",
		"r                  reset",
		"[ / ]              back / forward",
		"p                  save snapshot",
		"t                  cycle theme (" + m.theme.Name + ")",
		"?                  help",
		"q / esc            quit",
		"",
		m.st.muted.Render("press any key"),
	}
	box := m.st.help.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// RunExplorer opens the explorer in the alternate screen and blocks until
// the user quits.
func RunExplorer(r *mandel.Renderer, store *storage.Store, start mandel.Viewport) error {
	_, err := tea.NewProgram(NewModel(r, store, start), tea.WithAltScreen()).Run()
	return err
}
