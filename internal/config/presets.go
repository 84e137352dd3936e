package config

import (
	"math"
	"sort"

	"github.com/san-kum/mandelview/internal/mandel"
)

// Region is an axis-aligned rectangle on the plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport returns the square window anchored at the region's top-left
// whose side covers the larger of the two extents.
func (r Region) Viewport() mandel.Viewport {
	return mandel.Viewport{
		Corner:     mandel.NewComplex(r.Xmin, r.Ymax),
		SideLength: math.Max(r.Xmax-r.Xmin, r.Ymax-r.Ymin),
	}
}

// Classic landmarks of the Mandelbrot set. "home" is the default window;
// seahorse has dense repeating curls, elephant a bulb with trunk-like
// tendrils, minibrot a self-similar copy inside a spiral arm.
var Presets = map[string]Region{
	"home":     {Xmin: -2.3, Xmax: 1.3, Ymin: -1.8, Ymax: 1.8},
	"seahorse": {Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15},
	"elephant": {Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02},
	"spiral":   {Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325},
	"triple":   {Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980},
	"dragon":   {Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850},
	"minibrot": {Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220},
}

// GetPreset returns the named viewport.
func GetPreset(name string) (mandel.Viewport, bool) {
	r, ok := Presets[name]
	if !ok {
		return mandel.Viewport{}, false
	}
	return r.Viewport(), true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
