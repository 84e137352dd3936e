package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/mandelview/internal/mandel"
)

// ErrNoFrames is returned when encoding an empty animation.
var ErrNoFrames = errors.New("export: animation has no frames")

// Animation collects rendered grids as GIF frames.
type Animation struct {
	frames []*image.Paletted
	delays []int
}

func NewAnimation() *Animation {
	return &Animation{}
}

// AddFrame appends g, shown for delay hundredths of a second.
func (a *Animation) AddFrame(g *mandel.Grid, delay int) {
	a.frames = append(a.frames, Paletted(g))
	a.delays = append(a.delays, delay)
}

func (a *Animation) Len() int {
	return len(a.frames)
}

func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for i, frame := range a.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, a.delays[i])
	}
	return gif.EncodeAll(w, &anim)
}

func (a *Animation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Paletted converts the grid to a paletted image. Grids with at most 256
// distinct colors keep them exactly; larger ones are dithered onto Plan9.
func Paletted(g *mandel.Grid) *image.Paletted {
	bounds := image.Rect(0, 0, g.Width, g.Height)

	index := make(map[color.RGBA]uint8)
	pal := make(color.Palette, 0, 16)
	for _, c := range g.Pix {
		if _, ok := index[c]; ok {
			continue
		}
		if len(pal) == 256 {
			pal = nil
			break
		}
		index[c] = uint8(len(pal))
		pal = append(pal, c)
	}

	if pal == nil {
		img := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(img, bounds, g.Image(), image.Point{})
		return img
	}

	img := image.NewPaletted(bounds, pal)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetColorIndex(x, y, index[g.At(x, y)])
		}
	}
	return img
}

// Record renders frames+1 images starting at v, applying cmd between
// frames, and returns the animation together with the final viewport.
func Record(r *mandel.Renderer, v mandel.Viewport, cmd mandel.Command, frames, width, height, delay int) (*Animation, mandel.Viewport) {
	cfg := r.Config()
	anim := NewAnimation()
	anim.AddFrame(r.Render(v, width, height), delay)
	for i := 0; i < frames; i++ {
		v = cfg.Apply(v, cmd)
		anim.AddFrame(r.Render(v, width, height), delay)
	}
	return anim, v
}
