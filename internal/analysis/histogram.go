package analysis

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mandelview/internal/mandel"
)

// Histogram returns len MaxIterations+1 bins; the last bin counts in-set
// pixels.
func Histogram(counts *mandel.Counts) []int {
	bins := make([]int, counts.MaxIterations+1)
	for _, n := range counts.Data {
		if n < 0 {
			n = 0
		}
		if n > counts.MaxIterations {
			n = counts.MaxIterations
		}
		bins[n]++
	}
	return bins
}

// Summary describes the escape distribution of one render.
type Summary struct {
	Pixels        int
	InSet         int
	InSetFraction float64
	MeanEscape    float64
	StdDevEscape  float64
	MinEscape     int
	MaxEscape     int
	// Bands is the number of distinct escape counts present.
	Bands int
}

func Summarize(counts *mandel.Counts) Summary {
	s := Summary{Pixels: len(counts.Data), MinEscape: -1, MaxEscape: -1}
	if s.Pixels == 0 {
		return s
	}

	bins := Histogram(counts)
	s.InSet = bins[counts.MaxIterations]
	s.InSetFraction = float64(s.InSet) / float64(s.Pixels)

	escaped := 0
	sum, sumSq := 0.0, 0.0
	for n, c := range bins[:counts.MaxIterations] {
		if c == 0 {
			continue
		}
		if s.MinEscape < 0 {
			s.MinEscape = n
		}
		s.MaxEscape = n
		s.Bands++
		escaped += c
		sum += float64(n * c)
		sumSq += float64(n*n) * float64(c)
	}

	if escaped > 0 {
		s.MeanEscape = sum / float64(escaped)
		variance := sumSq/float64(escaped) - s.MeanEscape*s.MeanEscape
		s.StdDevEscape = math.Sqrt(math.Max(variance, 0))
	}
	return s
}

// Map flattens the summary for storage metadata.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"pixels":          float64(s.Pixels),
		"in_set":          float64(s.InSet),
		"in_set_fraction": s.InSetFraction,
		"mean_escape":     s.MeanEscape,
		"stddev_escape":   s.StdDevEscape,
		"min_escape":      float64(s.MinEscape),
		"max_escape":      float64(s.MaxEscape),
		"bands":           float64(s.Bands),
	}
}

// PlotHistogram charts the escaping bins on a log scale so the first few
// counts do not flatten the tail. The in-set bin is excluded.
func PlotHistogram(bins []int, width, height int) string {
	if len(bins) < 2 {
		return ""
	}
	data := make([]float64, len(bins)-1)
	for i, c := range bins[:len(bins)-1] {
		data[i] = math.Log10(1 + float64(c))
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10(pixels) per escape count"),
	)
}
