package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mandelview/internal/mandel"
)

// styles are derived from the active theme so cycling themes restyles the
// whole panel.
type styles struct {
	panel   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	busy    lipgloss.Style
	ready   lipgloss.Style
	warning lipgloss.Style
	help    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		label:   lipgloss.NewStyle().Foreground(t.Muted),
		value:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		muted:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		busy:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		ready:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		warning: lipgloss.NewStyle().Foreground(t.Warning),
		help: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Accent).
			Padding(1, 2),
	}
}

// GradientText colors each rune along the palette gradient from a to b.
func GradientText(text string, a, b color.RGBA) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := mandel.Interpolate(a, b, t)
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex(c))).Render(string(r)))
	}
	return out.String()
}

// SparklineChart renders a mini sparkline from values, sampled to width.
func SparklineChart(values []float64, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return style.Render(strings.Repeat("─", width))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// keep the most recent values
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return style.Render(b.String())
}

func Separator(width int, style lipgloss.Style) string {
	if width < 7 {
		return style.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return style.Render(left + " ◆ " + right)
}
