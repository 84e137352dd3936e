// Package mandel provides the numeric engine for rendering the Mandelbrot set.
//
// The package is a pure in-memory computation with no I/O:
//
//   - [Complex]: value-type complex arithmetic
//   - [Evaluator]: escape-time iteration of z = z*z + c
//   - [Palette]: iteration count to color mapping
//   - [Viewport]: square window onto the plane with pan/zoom transforms
//   - [Renderer]: drives the evaluator and palette across a pixel grid
//   - [BufferPool]: reusable count and color buffers for repeated renders
//
// # Example
//
//	cfg := mandel.DefaultConfig()
//	r, _ := mandel.NewRenderer(cfg)
//	v := mandel.DefaultViewport()
//	grid := r.Render(v, cfg.Width, cfg.Height)
//	v = cfg.Apply(v, mandel.CmdZoomIn)
//
// # Thread Safety
//
// Renderer values are immutable after construction and may be shared.
// Each call to Render is independent; hosts are expected to wait for a
// render to finish before requesting the next one.
package mandel
