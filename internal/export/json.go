package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/mandelview/internal/mandel"
	"github.com/san-kum/mandelview/internal/storage"
)

// ExportData is a saved render with its counts inlined, one slice per row.
type ExportData struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Viewport      storage.ViewportMeta `json:"viewport"`
	Width         int                  `json:"width"`
	Height        int                  `json:"height"`
	MaxIterations int                  `json:"max_iterations"`
	Banding       string               `json:"banding"`
	Stats         map[string]float64   `json:"stats"`
	Counts        [][]int              `json:"counts"`
}

func NewExportData(meta *storage.RenderMetadata, counts *mandel.Counts) *ExportData {
	data := &ExportData{
		ID:            meta.ID,
		Name:          meta.Name,
		Viewport:      meta.Viewport,
		Width:         counts.Width,
		Height:        counts.Height,
		MaxIterations: counts.MaxIterations,
		Banding:       meta.Banding,
		Stats:         meta.Stats,
		Counts:        make([][]int, counts.Height),
	}
	for y := range data.Counts {
		data.Counts[y] = counts.Data[y*counts.Width : (y+1)*counts.Width]
	}
	return data
}

func WriteJSON(w io.Writer, data *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
