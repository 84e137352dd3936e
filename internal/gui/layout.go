package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/mandelview/internal/mandel"
)

const (
	toolbarWidth = 120
	buttonHeight = 44
	buttonGap    = 12
	margin       = 20
	labelHeight  = 30
	fontSize     = 20
)

// Button is a toolbar entry. Exit buttons close the window instead of
// applying a command.
type Button struct {
	Label   string
	Command mandel.Command
	Exit    bool
	Bounds  rl.Rectangle
}

// Layout places the image between two toolbars: zoom, reset and exit on the
// left, panning on the right.
type Layout struct {
	Width, Height int
	Image         rl.Vector2
	Buttons       []Button
	Label         rl.Vector2
}

func NewLayout(imgWidth, imgHeight int) Layout {
	l := Layout{
		Width:  imgWidth + 2*(toolbarWidth+2*margin),
		Height: imgHeight + 2*margin + labelHeight,
		Image:  rl.NewVector2(float32(toolbarWidth+2*margin), margin),
		Label:  rl.NewVector2(float32(toolbarWidth+2*margin), float32(imgHeight+margin+8)),
	}

	left := []Button{
		{Label: "Zoom In", Command: mandel.CmdZoomIn},
		{Label: "Zoom Out", Command: mandel.CmdZoomOut},
		{Label: "Reset", Command: mandel.CmdReset},
		{Label: "Exit", Exit: true},
	}
	right := []Button{
		{Label: "Up", Command: mandel.CmdUp},
		{Label: "Down", Command: mandel.CmdDown},
		{Label: "Right", Command: mandel.CmdRight},
		{Label: "Left", Command: mandel.CmdLeft},
	}

	l.Buttons = append(l.Buttons, stack(left, margin, imgHeight)...)
	l.Buttons = append(l.Buttons, stack(right, l.Width-margin-toolbarWidth, imgHeight)...)
	return l
}

// stack centers buttons vertically in a column starting at x.
func stack(buttons []Button, x, height int) []Button {
	total := len(buttons)*buttonHeight + (len(buttons)-1)*buttonGap
	y := margin + (height-total)/2
	for i := range buttons {
		buttons[i].Bounds = rl.NewRectangle(float32(x), float32(y), toolbarWidth, buttonHeight)
		y += buttonHeight + buttonGap
	}
	return buttons
}

// ButtonAt returns the button under p, if any.
func (l Layout) ButtonAt(p rl.Vector2) (Button, bool) {
	for _, b := range l.Buttons {
		r := b.Bounds
		if p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height {
			return b, true
		}
	}
	return Button{}, false
}
