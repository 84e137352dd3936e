package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/mandelview/internal/mandel"
)

var (
	ColButton      = rl.NewColor(250, 235, 200, 255)
	ColButtonHover = rl.NewColor(255, 250, 235, 255)
	ColBorder      = rl.NewColor(120, 90, 20, 255)
	ColText        = rl.NewColor(40, 30, 10, 255)
)

// App is the desktop explorer window. Every command re-renders the full
// image synchronously before the next frame is drawn.
type App struct {
	Renderer *mandel.Renderer
	Config   mandel.Config
	View     mandel.Viewport
	Layout   Layout

	Background rl.Color
	Texture    rl.Texture2D
	Elapsed    time.Duration
	quit       bool
}

// keyCommands binds keys to viewport commands. Escape is handled as exit.
var keyCommands = []struct {
	key int32
	cmd mandel.Command
}{
	{rl.KeyW, mandel.CmdUp},
	{rl.KeyUp, mandel.CmdUp},
	{rl.KeyS, mandel.CmdDown},
	{rl.KeyDown, mandel.CmdDown},
	{rl.KeyA, mandel.CmdLeft},
	{rl.KeyLeft, mandel.CmdLeft},
	{rl.KeyD, mandel.CmdRight},
	{rl.KeyRight, mandel.CmdRight},
	{rl.KeyEqual, mandel.CmdZoomIn},
	{rl.KeyKpAdd, mandel.CmdZoomIn},
	{rl.KeyMinus, mandel.CmdZoomOut},
	{rl.KeyKpSubtract, mandel.CmdZoomOut},
	{rl.KeyR, mandel.CmdReset},
}

func initWindow(l Layout) {
	rl.InitWindow(int32(l.Width), int32(l.Height), "Mandelbrot Set")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens the window at start and blocks until it is closed.
func Run(r *mandel.Renderer, start mandel.Viewport) {
	cfg := r.Config()
	layout := NewLayout(cfg.Width, cfg.Height)
	initWindow(layout)
	defer rl.CloseWindow()

	app := &App{
		Renderer:   r,
		Config:     cfg,
		View:       start,
		Layout:     layout,
		Background: rl.NewColor(cfg.Base.R, cfg.Base.G, cfg.Base.B, 255),
	}
	app.loadTexture()
	defer rl.UnloadTexture(app.Texture)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) loadTexture() {
	grid := a.render()
	img := rl.NewImageFromImage(grid.Image())
	a.Texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

func (a *App) render() *mandel.Grid {
	start := time.Now()
	grid := a.Renderer.RenderDefault(a.View)
	a.Elapsed = time.Since(start)
	return grid
}

// apply moves the viewport and refreshes the texture in place.
func (a *App) apply(cmd mandel.Command) {
	a.View = a.Config.Apply(a.View, cmd)
	rl.UpdateTexture(a.Texture, a.render().Pix)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	for _, kc := range keyCommands {
		if rl.IsKeyPressed(kc.key) {
			a.apply(kc.cmd)
			return
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if b, ok := a.Layout.ButtonAt(rl.GetMousePosition()); ok {
			if b.Exit {
				a.quit = true
				return
			}
			a.apply(b.Command)
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.Background)

	rl.DrawTextureV(a.Texture, a.Layout.Image, rl.White)

	mouse := rl.GetMousePosition()
	for _, b := range a.Layout.Buttons {
		a.drawButton(b, rl.CheckCollisionPointRec(mouse, b.Bounds))
	}

	status := fmt.Sprintf("%s  zoom %.3gx  %dms", a.View, a.View.Magnification(), a.Elapsed.Milliseconds())
	rl.DrawText(status, int32(a.Layout.Label.X), int32(a.Layout.Label.Y), 16, ColText)

	rl.EndDrawing()
}

func (a *App) drawButton(b Button, hover bool) {
	fill := ColButton
	if hover {
		fill = ColButtonHover
	}
	rl.DrawRectangleRec(b.Bounds, fill)
	rl.DrawRectangleLinesEx(b.Bounds, 2, ColBorder)

	w := rl.MeasureText(b.Label, fontSize)
	x := int32(b.Bounds.X) + (int32(b.Bounds.Width)-w)/2
	y := int32(b.Bounds.Y) + (int32(b.Bounds.Height)-fontSize)/2
	rl.DrawText(b.Label, x, y, fontSize, ColText)
}
