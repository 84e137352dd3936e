package viz

import (
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mandelview/internal/mandel"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	r, err := mandel.NewRenderer(mandel.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(r, nil, mandel.DefaultViewport())
	m.pixels = 16
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key  string
		want mandel.Command
	}{
		{"w", mandel.CmdUp},
		{"up", mandel.CmdUp},
		{"s", mandel.CmdDown},
		{"a", mandel.CmdLeft},
		{"right", mandel.CmdRight},
		{"+", mandel.CmdZoomIn},
		{"-", mandel.CmdZoomOut},
		{"r", mandel.CmdReset},
	}
	for _, tt := range tests {
		got, ok := CommandForKey(tt.key)
		if !ok || got != tt.want {
			t.Errorf("CommandForKey(%q) = %v, %v; want %v", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := CommandForKey("x"); ok {
		t.Error("unbound key should not map to a command")
	}
}

func TestBlockCanvasShape(t *testing.T) {
	g := mandel.NewGrid(4, 3)
	for i := range g.Pix {
		g.Pix[i] = color.RGBA{R: uint8(i * 20), A: 255}
	}
	out := NewBlockCanvas().Render(g)
	lines := strings.Split(out, "\n")
	if len(lines) != Rows(3) {
		t.Fatalf("lines = %d, want %d", len(lines), Rows(3))
	}
	if n := strings.Count(out, upperHalf); n != 4*2 {
		t.Errorf("cells = %d, want 8", n)
	}
	// the odd last row fills both halves with its own color
	c := NewBlockCanvas()
	c.Render(g)
	for x := 0; x < g.Width; x++ {
		last := g.At(x, 2)
		if _, ok := c.styles[cellKey{last, last}]; !ok {
			t.Errorf("column %d: last row not drawn as a solid cell", x)
		}
	}
	if NewBlockCanvas().Render(nil) != "" {
		t.Error("nil grid should render empty")
	}
}

func TestRenderIsCoalesced(t *testing.T) {
	m := newTestModel(t)
	first := m.Init()
	if first == nil || !m.rendering {
		t.Fatal("expected initial render in flight")
	}

	m, cmd := update(t, m, runes("w"))
	if cmd != nil {
		t.Fatal("second render issued while one is in flight")
	}
	if !m.pending {
		t.Fatal("command should leave a pending render")
	}
	m, cmd = update(t, m, runes("+"))
	if cmd != nil {
		t.Fatal("second render issued while one is in flight")
	}

	want := m.cfg.ApplyAll(mandel.DefaultViewport(), mandel.CmdUp, mandel.CmdZoomIn)
	if m.Viewport() != want {
		t.Fatalf("viewport = %v, want %v", m.Viewport(), want)
	}

	m, cmd = update(t, m, first())
	if m.grid == nil {
		t.Fatal("grid not stored")
	}
	if cmd == nil || m.pending || !m.rendering {
		t.Fatal("pending render should start after the first lands")
	}
	msg := cmd().(renderedMsg)
	if msg.view != want {
		t.Errorf("follow-up rendered %v, want %v", msg.view, want)
	}
	m, cmd = update(t, m, msg)
	if cmd != nil || m.rendering {
		t.Error("no render should remain in flight")
	}
	if m.gridView != want {
		t.Errorf("grid view = %v, want %v", m.gridView, want)
	}
}

func TestHistorySeek(t *testing.T) {
	m := newTestModel(t)
	m.rendering = false
	home := m.Viewport()

	m, _ = update(t, m, runes("d"))
	m, _ = update(t, m, runes("d"))
	twice := m.Viewport()
	if len(m.history) != 3 {
		t.Fatalf("history len = %d, want 3", len(m.history))
	}

	m.rendering = false
	m, _ = update(t, m, runes("["))
	m, _ = update(t, m, runes("["))
	if m.Viewport() != home {
		t.Fatalf("back twice = %v, want %v", m.Viewport(), home)
	}
	if _, cmd := update(t, m, runes("[")); cmd != nil {
		t.Error("seeking before the start should do nothing")
	}

	m, _ = update(t, m, runes("]"))
	m, _ = update(t, m, runes("]"))
	if m.Viewport() != twice {
		t.Fatalf("forward twice = %v, want %v", m.Viewport(), twice)
	}

	// navigating from the middle drops the forward entries
	m, _ = update(t, m, runes("["))
	m, _ = update(t, m, runes("s"))
	if len(m.history) != 3 || m.pos != 2 {
		t.Errorf("history len = %d pos = %d, want 3 and 2", len(m.history), m.pos)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestModel(t)
		_, cmd := update(t, m, msg)
		if cmd == nil {
			t.Fatalf("%s: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected quit", msg)
		}
	}
}

func TestThemeCycleAndSaveWithoutStore(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, runes("t"))
	if m.theme.Name != Themes[1].Name {
		t.Errorf("theme = %s, want %s", m.theme.Name, Themes[1].Name)
	}

	m, cmd := update(t, m, runes("p"))
	if cmd == nil {
		t.Fatal("save should return a command")
	}
	m, _ = update(t, m, cmd())
	if !strings.HasPrefix(m.status, "save failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestCanvasPixels(t *testing.T) {
	tests := []struct {
		w, h, want int
	}{
		{120, 40, 78},
		{200, 30, 58},
		{20, 5, 8},
	}
	for _, tt := range tests {
		if got := canvasPixels(tt.w, tt.h); got != tt.want {
			t.Errorf("canvasPixels(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestViewShowsViewport(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, m.Init()())
	out := m.View()
	if !strings.Contains(out, "-2.3") || !strings.Contains(out, "3.6") {
		t.Error("panel should show the viewport corner and side")
	}
	m, _ = update(t, m, runes("?"))
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("help overlay missing")
	}
}
