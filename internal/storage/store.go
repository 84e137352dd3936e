package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mandelview/internal/mandel"
)

const (
	metadataFile = "metadata.json"
	countsFile   = "counts.csv"
	imageFile    = "image.png"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

type ViewportMeta struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
	Side float64 `json:"side"`
}

type RenderMetadata struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Timestamp           time.Time          `json:"timestamp"`
	Viewport            ViewportMeta       `json:"viewport"`
	Width               int                `json:"width"`
	Height              int                `json:"height"`
	MaxIterations       int                `json:"max_iterations"`
	Radius              float64            `json:"radius"`
	InterpolateConstant int                `json:"interpolate_constant"`
	Banding             string             `json:"banding"`
	ElapsedMs           float64            `json:"elapsed_ms"`
	Stats               map[string]float64 `json:"stats"`
}

func (m *RenderMetadata) View() mandel.Viewport {
	return mandel.Viewport{
		Corner:     mandel.NewComplex(m.Viewport.Real, m.Viewport.Imag),
		SideLength: m.Viewport.Side,
	}
}

// Render is one finished frame ready to persist.
type Render struct {
	Name     string
	Viewport mandel.Viewport
	Config   mandel.Config
	Counts   *mandel.Counts
	Grid     *mandel.Grid
	Elapsed  time.Duration
	Stats    map[string]float64
}

// Save writes metadata, counts and image under a fresh run directory and
// returns its id.
func (s *Store) Save(r *Render) (string, error) {
	if r.Counts == nil || r.Grid == nil {
		return "", fmt.Errorf("storage: render %q has no data", r.Name)
	}

	name := r.Name
	if name == "" {
		name = "render"
	}
	id := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := RenderMetadata{
		ID:        id,
		Name:      name,
		Timestamp: time.Now(),
		Viewport: ViewportMeta{
			Real: r.Viewport.Corner.Re,
			Imag: r.Viewport.Corner.Im,
			Side: r.Viewport.SideLength,
		},
		Width:               r.Counts.Width,
		Height:              r.Counts.Height,
		MaxIterations:       r.Config.MaxIterations,
		Radius:              r.Config.Radius,
		InterpolateConstant: r.Config.InterpolateConstant,
		Banding:             r.Config.Banding.String(),
		ElapsedMs:           float64(r.Elapsed.Microseconds()) / 1000,
		Stats:               r.Stats,
	}

	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCounts(filepath.Join(dir, countsFile), r.Counts); err != nil {
		return "", err
	}
	if err := writePNG(filepath.Join(dir, imageFile), r.Grid); err != nil {
		return "", err
	}

	return id, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCounts(path string, counts *mandel.Counts) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := make([]string, counts.Width)
	for y := 0; y < counts.Height; y++ {
		for x := 0; x < counts.Width; x++ {
			row[x] = strconv.Itoa(counts.At(x, y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writePNG(path string, grid *mandel.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, grid.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns all stored renders, oldest first.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &meta, nil
}

// LoadCounts reads the iteration counts back. MaxIterations is taken from
// the metadata.
func (s *Store) LoadCounts(id string) (*mandel.Counts, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, id, countsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = meta.Width

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	if len(records) != meta.Height {
		return nil, fmt.Errorf("storage: %s: expected %d rows, got %d", id, meta.Height, len(records))
	}

	counts := mandel.NewCounts(meta.Width, meta.Height, meta.MaxIterations)
	for y, record := range records {
		for x, field := range record {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("storage: %s: row %d col %d: %w", id, y, x, err)
			}
			counts.Set(x, y, n)
		}
	}
	return counts, nil
}

func (s *Store) ImagePath(id string) string {
	return filepath.Join(s.baseDir, id, imageFile)
}
