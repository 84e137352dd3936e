package export

import (
	"image/png"
	"io"
	"os"

	"github.com/san-kum/mandelview/internal/mandel"
)

// WritePNG encodes the grid as a PNG image.
func WritePNG(w io.Writer, g *mandel.Grid) error {
	return png.Encode(w, g.Image())
}

func SavePNG(path string, g *mandel.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
