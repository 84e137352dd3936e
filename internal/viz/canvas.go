package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mandelview/internal/mandel"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in
// the background, so one terminal cell shows two vertically stacked pixels.
const upperHalf = "▀"

type cellKey struct {
	top, bottom color.RGBA
}

// BlockCanvas turns a color grid into terminal text. Styles are cached per
// color pair since a render has few distinct colors.
type BlockCanvas struct {
	styles map[cellKey]lipgloss.Style
}

func NewBlockCanvas() *BlockCanvas {
	return &BlockCanvas{styles: make(map[cellKey]lipgloss.Style)}
}

// Rows returns the number of terminal lines needed for a grid of height h.
func Rows(h int) int {
	return (h + 1) / 2
}

func (c *BlockCanvas) style(top, bottom color.RGBA) lipgloss.Style {
	key := cellKey{top, bottom}
	if s, ok := c.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(top))).
		Background(lipgloss.Color(hex(bottom)))
	c.styles[key] = s
	return s
}

// Render draws g. An odd last row repeats its own color in the lower half.
func (c *BlockCanvas) Render(g *mandel.Grid) string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	for row := 0; row < Rows(g.Height); row++ {
		y := row * 2
		for x := 0; x < g.Width; {
			top := g.At(x, y)
			bottom := top
			if y+1 < g.Height {
				bottom = g.At(x, y+1)
			}
			// run-length encode cells sharing a style
			run := 1
			for x+run < g.Width {
				nt := g.At(x+run, y)
				nb := nt
				if y+1 < g.Height {
					nb = g.At(x+run, y+1)
				}
				if nt != top || nb != bottom {
					break
				}
				run++
			}
			b.WriteString(c.style(top, bottom).Render(strings.Repeat(upperHalf, run)))
			x += run
		}
		if row < Rows(g.Height)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
