// Package analysis summarizes escape-time renders.
//
// The package works on raw iteration counts rather than colors:
//
//   - [Histogram]: number of pixels per iteration count
//   - [Summarize]: in-set fraction, escape-count moments and band count
//   - [PlotHistogram]: ASCII chart of the escape distribution
//
// # Example
//
//	counts := renderer.Counts(v, 600, 600)
//	s := analysis.Summarize(counts)
//	fmt.Println(analysis.PlotHistogram(analysis.Histogram(counts), 60, 12))
package analysis
