package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/san-kum/mandelview/internal/analysis"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/mandel"
	"github.com/san-kum/mandelview/internal/storage"
	"gopkg.in/yaml.v3"
)

// Tour is a scripted navigation sequence.
type Tour struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Preset      string                 `yaml:"preset"`
	Start       *config.ViewportConfig `yaml:"start"`
	Width       int                    `yaml:"width"`
	Height      int                    `yaml:"height"`
	Steps       []TourStep             `yaml:"steps"`
}

// TourStep applies Command Repeat times (at least once) and renders the
// resulting viewport. Frames of steps with SaveAs set go to the store.
type TourStep struct {
	Command string `yaml:"command"`
	Repeat  int    `yaml:"repeat"`
	SaveAs  string `yaml:"save_as"`
}

// Frame is the outcome of one tour step.
type Frame struct {
	Step     int
	Command  mandel.Command
	Viewport mandel.Viewport
	Summary  analysis.Summary
	Elapsed  time.Duration
	SavedID  string
}

func LoadTour(path string) (*Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTour(data)
}

func ParseTour(data []byte) (*Tour, error) {
	var tour Tour
	if err := yaml.Unmarshal(data, &tour); err != nil {
		return nil, err
	}
	if err := tour.Validate(); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (t *Tour) Validate() error {
	if len(t.Steps) == 0 {
		return fmt.Errorf("tour %q has no steps", t.Name)
	}
	if t.Preset != "" {
		if _, ok := config.GetPreset(t.Preset); !ok {
			return fmt.Errorf("tour %q: unknown preset %q", t.Name, t.Preset)
		}
	}
	for i, step := range t.Steps {
		if _, err := mandel.ParseCommand(step.Command); err != nil {
			return fmt.Errorf("tour %q step %d: %w", t.Name, i+1, err)
		}
		if step.Repeat < 0 {
			return fmt.Errorf("tour %q step %d: negative repeat", t.Name, i+1)
		}
	}
	return nil
}

// StartViewport resolves the explicit start, then the preset, then home.
func (t *Tour) StartViewport(home mandel.Viewport) mandel.Viewport {
	if t.Start != nil {
		return mandel.Viewport{
			Corner:     mandel.NewComplex(t.Start.Real, t.Start.Imag),
			SideLength: t.Start.Side,
		}
	}
	if v, ok := config.GetPreset(t.Preset); ok {
		return v
	}
	return home
}

// RunTour executes every step in order. Progress lines go to out when it is
// non-nil; st may be nil to skip saving. Cancellation is checked between
// steps and the frames finished so far are returned with the error.
func RunTour(ctx context.Context, tour *Tour, r *mandel.Renderer, st *storage.Store, out io.Writer) ([]Frame, error) {
	if out == nil {
		out = io.Discard
	}
	cfg := r.Config()
	width, height := cfg.Width, cfg.Height
	if tour.Width > 0 {
		width = tour.Width
	}
	if tour.Height > 0 {
		height = tour.Height
	}

	v := tour.StartViewport(cfg.Home)
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("tour %q: %w", tour.Name, err)
	}

	frames := make([]Frame, 0, len(tour.Steps))
	for i, step := range tour.Steps {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		cmd, err := mandel.ParseCommand(step.Command)
		if err != nil {
			return frames, fmt.Errorf("step %d: %w", i+1, err)
		}
		repeat := step.Repeat
		if repeat < 1 {
			repeat = 1
		}
		for j := 0; j < repeat; j++ {
			v = cfg.Apply(v, cmd)
		}

		start := time.Now()
		counts := r.Counts(v, width, height)
		elapsed := time.Since(start)

		frame := Frame{
			Step:     i + 1,
			Command:  cmd,
			Viewport: v,
			Summary:  analysis.Summarize(counts),
			Elapsed:  elapsed,
		}

		if step.SaveAs != "" && st != nil {
			id, err := st.Save(&storage.Render{
				Name:     step.SaveAs,
				Viewport: v,
				Config:   cfg,
				Counts:   counts,
				Grid:     r.Colorize(counts),
				Elapsed:  elapsed,
				Stats:    frame.Summary.Map(),
			})
			if err != nil {
				return frames, fmt.Errorf("step %d save: %w", i+1, err)
			}
			frame.SavedID = id
		}

		fmt.Fprintf(out, "step %d/%d: %s x%d -> %v (%.1f%% in set)\n",
			i+1, len(tour.Steps), cmd, repeat, v, frame.Summary.InSetFraction*100)

		frames = append(frames, frame)
	}

	return frames, nil
}
