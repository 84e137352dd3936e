package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/mandelview/internal/mandel"
)

func TestLayout_Toolbars(t *testing.T) {
	l := NewLayout(600, 600)
	if len(l.Buttons) != 8 {
		t.Fatalf("buttons = %d, want 8", len(l.Buttons))
	}

	tests := []struct {
		label string
		left  bool
	}{
		{"Zoom In", true},
		{"Zoom Out", true},
		{"Reset", true},
		{"Exit", true},
		{"Up", false},
		{"Down", false},
		{"Right", false},
		{"Left", false},
	}
	for i, tt := range tests {
		b := l.Buttons[i]
		if b.Label != tt.label {
			t.Errorf("button %d = %q, want %q", i, b.Label, tt.label)
		}
		onLeft := b.Bounds.X+b.Bounds.Width <= l.Image.X
		if onLeft != tt.left {
			t.Errorf("%s: on left = %v, want %v", b.Label, onLeft, tt.left)
		}
	}
}

func TestLayout_ButtonAt(t *testing.T) {
	l := NewLayout(600, 600)
	for _, b := range l.Buttons {
		center := rl.NewVector2(b.Bounds.X+b.Bounds.Width/2, b.Bounds.Y+b.Bounds.Height/2)
		got, ok := l.ButtonAt(center)
		if !ok || got.Label != b.Label {
			t.Errorf("ButtonAt(center of %s) = %q, %v", b.Label, got.Label, ok)
		}
	}

	exit, _ := l.ButtonAt(rl.NewVector2(l.Buttons[3].Bounds.X+1, l.Buttons[3].Bounds.Y+1))
	if !exit.Exit {
		t.Error("exit button should be flagged as exit")
	}
	if b, _ := l.ButtonAt(rl.NewVector2(l.Buttons[4].Bounds.X+1, l.Buttons[4].Bounds.Y+1)); b.Command != mandel.CmdUp {
		t.Errorf("first right button = %v, want up", b.Command)
	}
	if _, ok := l.ButtonAt(rl.NewVector2(l.Image.X+300, l.Image.Y+300)); ok {
		t.Error("the image area should not hit a button")
	}
}
