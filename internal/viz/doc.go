// Package viz provides a terminal explorer for the Mandelbrot set.
//
// The explorer is a Bubble Tea program that draws renders with half-block
// characters, two pixels per cell:
//
//   - [Model]: explorer state, render scheduling and navigation history
//   - [BlockCanvas]: color grid to styled terminal text
//   - Theme selection with 4 built-in panel color schemes
//
// # Key Bindings
//
//	W/A/S/D, arrows - Pan
//	+ / -           - Zoom in / out
//	R               - Reset to the home viewport
//	[ / ]           - Back / forward through visited viewports
//	P               - Save a full-size snapshot to the store
//	T               - Cycle panel themes
//	?               - Show help overlay
//	Q / Esc         - Quit
//
// At most one render is in flight; commands issued meanwhile update the
// viewport and trigger a single follow-up render of the latest state.
package viz
