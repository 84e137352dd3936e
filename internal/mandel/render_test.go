package mandel

import (
	"errors"
	"math"
	"testing"
)

func TestViewport_PointAt(t *testing.T) {
	v := DefaultViewport()

	p := v.PointAt(0, 0, 600)
	if math.Abs(p.Re-(-2.3)) > 1e-12 || math.Abs(p.Im-1.794) > 1e-12 {
		t.Errorf("PointAt(0,0) = %v, want (-2.3+1.794i)", p)
	}

	p = v.PointAt(10, 599, 600)
	if math.Abs(p.Re-(-2.24)) > 1e-12 || math.Abs(p.Im-(-1.8)) > 1e-12 {
		t.Errorf("PointAt(10,599) = %v, want (-2.24-1.8i)", p)
	}
}

func TestRenderer_DefaultViewport(t *testing.T) {
	cfg := DefaultConfig()
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	grid := r.Render(DefaultViewport(), cfg.Width, cfg.Height)

	if grid.Width != 600 || grid.Height != 600 || len(grid.Pix) != 600*600 {
		t.Fatalf("unexpected grid size %dx%d (%d pixels)", grid.Width, grid.Height, len(grid.Pix))
	}

	// Pixel (383, 299) maps to roughly (-0.002, 0).
	if got := grid.At(383, 299); got != Blue {
		t.Errorf("pixel near origin = %v, want in-set color", got)
	}
	if got := grid.At(0, 0); got == Blue {
		t.Errorf("corner pixel is in-set colored")
	}
	if got := grid.At(0, 0); got != Goldenrod {
		t.Errorf("corner pixel = %v, want base color", got)
	}
}

func TestRenderer_ParallelMatchesSerial(t *testing.T) {
	serialCfg := DefaultConfig()
	parallelCfg := DefaultConfig()
	parallelCfg.Workers = 4

	serial, err := NewRenderer(serialCfg)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := NewRenderer(parallelCfg)
	if err != nil {
		t.Fatal(err)
	}

	v := Viewport{Corner: Complex{-0.8, 0.15}, SideLength: 0.1}
	a := serial.Counts(v, 97, 61)
	b := parallel.Counts(v, 97, 61)

	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("pixel %d differs: serial %d, parallel %d", i, a.Data[i], b.Data[i])
		}
	}
}

func TestRenderer_NonSquareGrid(t *testing.T) {
	r, err := NewRenderer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	grid := r.Render(DefaultViewport(), 40, 20)
	img := grid.Image()
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("image bounds %v, want 40x20", b)
	}
	if img.RGBAAt(0, 0) != grid.At(0, 0) {
		t.Error("image pixel does not match grid")
	}
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }, "max_iterations"},
		{"negative radius", func(c *Config) { c.Radius = -2 }, "radius"},
		{"zoom of one", func(c *Config) { c.ZoomAmount = 1 }, "zoom_amount"},
		{"zero interpolate constant", func(c *Config) { c.InterpolateConstant = 0 }, "interpolate_constant"},
		{"bad home", func(c *Config) { c.Home.SideLength = 0 }, "home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(&cfg)

			_, err := NewRenderer(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) || cerr.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		seen := make([]int, 50)
		ParallelFor(len(seen), workers, 4, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, n := range seen {
			if n != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, n)
			}
		}
	}
}

func TestRenderer_NegativeSizeIsEmpty(t *testing.T) {
	for _, workers := range []int{1, 4} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		r, err := NewRenderer(cfg)
		if err != nil {
			t.Fatal(err)
		}

		g := r.Render(DefaultViewport(), -1, 5)
		if g.Width != 0 || g.Height != 5 || len(g.Pix) != 0 {
			t.Errorf("workers=%d: grid %dx%d len %d, want empty", workers, g.Width, g.Height, len(g.Pix))
		}
		if c := r.Counts(DefaultViewport(), 3, -2); c.Height != 0 || len(c.Data) != 0 {
			t.Errorf("workers=%d: counts %dx%d len %d, want empty", workers, c.Width, c.Height, len(c.Data))
		}
		if b := g.Image().Bounds(); b.Dx() != 0 {
			t.Errorf("workers=%d: image bounds %v", workers, b)
		}
	}
}

func TestRenderer_RenderDefaultUsesConfiguredSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 30, 20
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g := r.RenderDefault(DefaultViewport())
	if g.Width != 30 || g.Height != 20 {
		t.Errorf("grid %dx%d, want 30x20", g.Width, g.Height)
	}
}
