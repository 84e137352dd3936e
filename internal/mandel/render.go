package mandel

import (
	"image"
	"image/color"
)

// Counts holds raw iteration counts in row-major order.
type Counts struct {
	Width, Height int
	MaxIterations int
	Data          []int
}

// NewCounts treats negative dimensions as zero.
func NewCounts(w, h, maxIter int) *Counts {
	w, h = max(w, 0), max(h, 0)
	return &Counts{Width: w, Height: h, MaxIterations: maxIter, Data: make([]int, w*h)}
}

func (c *Counts) At(x, y int) int {
	return c.Data[y*c.Width+x]
}

func (c *Counts) Set(x, y, n int) {
	c.Data[y*c.Width+x] = n
}

// Grid is the rendered color buffer in row-major order.
type Grid struct {
	Width, Height int
	Pix           []color.RGBA
}

// NewGrid treats negative dimensions as zero.
func NewGrid(w, h int) *Grid {
	w, h = max(w, 0), max(h, 0)
	return &Grid{Width: w, Height: h, Pix: make([]color.RGBA, w*h)}
}

func (g *Grid) At(x, y int) color.RGBA {
	return g.Pix[y*g.Width+x]
}

func (g *Grid) Set(x, y int, c color.RGBA) {
	g.Pix[y*g.Width+x] = c
}

// Image copies the grid into an RGBA image.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, g.At(x, y))
		}
	}
	return img
}

// Renderer evaluates every pixel of a grid for a viewport.
type Renderer struct {
	cfg       Config
	evaluator Evaluator
	palette   Palette
}

func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		cfg:       cfg,
		evaluator: cfg.Evaluator(),
		palette:   cfg.Palette(),
	}, nil
}

func (r *Renderer) Config() Config       { return r.cfg }
func (r *Renderer) Evaluator() Evaluator { return r.evaluator }
func (r *Renderer) Palette() Palette     { return r.palette }

// Counts evaluates every pixel of a width x height grid.
func (r *Renderer) Counts(v Viewport, width, height int) *Counts {
	counts := NewCounts(width, height, r.evaluator.MaxIterations)
	r.CountsInto(counts, v)
	return counts
}

// CountsInto evaluates every pixel of dst, overwriting its contents.
func (r *Renderer) CountsInto(dst *Counts, v Viewport) {
	width, height := dst.Width, dst.Height
	dst.MaxIterations = r.evaluator.MaxIterations
	rows := func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				dst.Set(x, y, r.evaluator.Iterate(v.PointAt(x, y, height)))
			}
		}
	}
	if r.cfg.Workers > 1 {
		ParallelFor(height, r.cfg.Workers, 1, rows)
	} else {
		rows(0, height)
	}
}

// Colorize maps counts through the palette.
func (r *Renderer) Colorize(counts *Counts) *Grid {
	grid := NewGrid(counts.Width, counts.Height)
	r.ColorizeInto(grid, counts)
	return grid
}

// ColorizeInto maps counts through the palette into dst, which must have
// the same dimensions.
func (r *Renderer) ColorizeInto(dst *Grid, counts *Counts) {
	for i, n := range counts.Data {
		dst.Pix[i] = r.palette.ColorFor(n)
	}
}

// Render produces the full color grid for v. Every pixel is recomputed.
func (r *Renderer) Render(v Viewport, width, height int) *Grid {
	return r.Colorize(r.Counts(v, width, height))
}

// RenderDefault renders v at the configured grid size.
func (r *Renderer) RenderDefault(v Viewport) *Grid {
	return r.Render(v, r.cfg.Width, r.cfg.Height)
}
