package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/mandelview/internal/mandel"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBase   = "#daa520"
	DefaultAccent = "#00ffff"
	DefaultInSet  = "#0000ff"
)

type Config struct {
	Width               int            `yaml:"width"`
	Height              int            `yaml:"height"`
	MaxIterations       int            `yaml:"max_iterations"`
	Radius              float64        `yaml:"radius"`
	MoveAmount          float64        `yaml:"move_amount"`
	ZoomAmount          float64        `yaml:"zoom_amount"`
	InterpolateConstant int            `yaml:"interpolate_constant"`
	Banding             string         `yaml:"banding"`
	MinSideLength       float64        `yaml:"min_side_length"`
	Workers             int            `yaml:"workers"`
	Colors              ColorConfig    `yaml:"colors"`
	View                ViewportConfig `yaml:"viewport"`
}

type ColorConfig struct {
	Base   string `yaml:"base"`
	Accent string `yaml:"accent"`
	InSet  string `yaml:"in_set"`
}

type ViewportConfig struct {
	Real float64 `yaml:"real"`
	Imag float64 `yaml:"imag"`
	Side float64 `yaml:"side"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:               mandel.DefaultWidth,
		Height:              mandel.DefaultHeight,
		MaxIterations:       mandel.DefaultMaxIterations,
		Radius:              mandel.DefaultRadius,
		MoveAmount:          mandel.DefaultMoveAmount,
		ZoomAmount:          mandel.DefaultZoomAmount,
		InterpolateConstant: mandel.DefaultInterpolateConstant,
		Banding:             mandel.BandingStepped.String(),
		Workers:             1,
		Colors: ColorConfig{
			Base:   DefaultBase,
			Accent: DefaultAccent,
			InSet:  DefaultInSet,
		},
		View: ViewportConfig{
			Real: mandel.DefaultCornerReal,
			Imag: mandel.DefaultCornerImag,
			Side: mandel.DefaultSideLength,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Viewport returns the configured starting viewport.
func (c *Config) Viewport() mandel.Viewport {
	return mandel.Viewport{
		Corner:     mandel.NewComplex(c.View.Real, c.View.Imag),
		SideLength: c.View.Side,
	}
}

func (c *Config) SetViewport(v mandel.Viewport) {
	c.View = ViewportConfig{Real: v.Corner.Re, Imag: v.Corner.Im, Side: v.SideLength}
}

// Engine converts the file representation into a validated engine config.
// The configured viewport becomes the reset target.
func (c *Config) Engine() (mandel.Config, error) {
	banding, err := mandel.ParseBanding(c.Banding)
	if err != nil {
		return mandel.Config{}, err
	}
	base, err := ParseHexColor(c.Colors.Base)
	if err != nil {
		return mandel.Config{}, fmt.Errorf("colors.base: %w", err)
	}
	accent, err := ParseHexColor(c.Colors.Accent)
	if err != nil {
		return mandel.Config{}, fmt.Errorf("colors.accent: %w", err)
	}
	inSet, err := ParseHexColor(c.Colors.InSet)
	if err != nil {
		return mandel.Config{}, fmt.Errorf("colors.in_set: %w", err)
	}

	eng := mandel.Config{
		Width:               c.Width,
		Height:              c.Height,
		MaxIterations:       c.MaxIterations,
		Radius:              c.Radius,
		MoveAmount:          c.MoveAmount,
		ZoomAmount:          c.ZoomAmount,
		InterpolateConstant: c.InterpolateConstant,
		Banding:             banding,
		Base:                base,
		Accent:              accent,
		InSet:               inSet,
		Home:                c.Viewport(),
		MinSideLength:       c.MinSideLength,
		Workers:             c.Workers,
	}
	if err := eng.Validate(); err != nil {
		return mandel.Config{}, err
	}
	return eng, nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func HexColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
