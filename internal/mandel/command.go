package mandel

import (
	"fmt"
	"strings"
)

// Command is a navigation intent issued by a host.
type Command int

const (
	CmdUp Command = iota
	CmdDown
	CmdLeft
	CmdRight
	CmdZoomIn
	CmdZoomOut
	CmdReset
)

var commandNames = map[Command]string{
	CmdUp:      "up",
	CmdDown:    "down",
	CmdLeft:    "left",
	CmdRight:   "right",
	CmdZoomIn:  "zoom-in",
	CmdZoomOut: "zoom-out",
	CmdReset:   "reset",
}

var commandAliases = map[string]Command{
	"w":        CmdUp,
	"s":        CmdDown,
	"a":        CmdLeft,
	"d":        CmdRight,
	"in":       CmdZoomIn,
	"zoom_in":  CmdZoomIn,
	"+":        CmdZoomIn,
	"out":      CmdZoomOut,
	"zoom_out": CmdZoomOut,
	"-":        CmdZoomOut,
	"home":     CmdReset,
}

// Commands lists every command in declaration order.
func Commands() []Command {
	return []Command{CmdUp, CmdDown, CmdLeft, CmdRight, CmdZoomIn, CmdZoomOut, CmdReset}
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand accepts canonical names ("zoom-in") and the short aliases
// used by the keyboard hosts ("w", "+", "in").
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	if c, ok := commandAliases[s]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Apply returns the viewport produced by cmd. Pans move by MoveAmount of
// the side length and zooms scale it by ZoomAmount. When MinSideLength is
// set, zooming in stops at that side length and never grows a window that
// already starts below it.
func (c Config) Apply(v Viewport, cmd Command) Viewport {
	switch cmd {
	case CmdUp:
		return v.PanUp(c.MoveAmount)
	case CmdDown:
		return v.PanDown(c.MoveAmount)
	case CmdLeft:
		return v.PanLeft(c.MoveAmount)
	case CmdRight:
		return v.PanRight(c.MoveAmount)
	case CmdZoomIn:
		if c.MinSideLength > 0 && v.SideLength <= c.MinSideLength {
			return v
		}
		next := v.ZoomIn(c.ZoomAmount)
		if c.MinSideLength > 0 && next.SideLength < c.MinSideLength {
			next.SideLength = c.MinSideLength
		}
		return next
	case CmdZoomOut:
		return v.ZoomOut(c.ZoomAmount)
	case CmdReset:
		return c.Home
	}
	return v
}

// ApplyAll folds cmds over v.
func (c Config) ApplyAll(v Viewport, cmds ...Command) Viewport {
	for _, cmd := range cmds {
		v = c.Apply(v, cmd)
	}
	return v
}
