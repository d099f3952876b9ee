// Package display hands rendered frames to an output device and reads the
// keys that steer the scene. Three frontends share one frame-step contract:
// a terminal (half-block cells), a desktop window and a browser stream.
package display

import (
	"context"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// Action is a logical key, independent of how a frontend names it.
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionZoomIn
	ActionZoomOut
	ActionPause
	ActionOverlay
	ActionQuit
	ActionSelect1
	ActionSelect2
	ActionSelect3
	ActionSelect4
	ActionSelect5
	ActionSelect6
	ActionSelect7
	ActionSelect8
	ActionSelect9
)

// Keys is the set of logical keys held during one frame.
type Keys struct {
	Left, Right, Up, Down bool
	ZoomIn, ZoomOut       bool
	Pause                 bool
	Overlay               bool
	Quit                  bool
	Digit                 int // 1-9, 0 when no digit is held
}

// Set records action a as held.
func (k *Keys) Set(a Action) {
	switch a {
	case ActionLeft:
		k.Left = true
	case ActionRight:
		k.Right = true
	case ActionUp:
		k.Up = true
	case ActionDown:
		k.Down = true
	case ActionZoomIn:
		k.ZoomIn = true
	case ActionZoomOut:
		k.ZoomOut = true
	case ActionPause:
		k.Pause = true
	case ActionOverlay:
		k.Overlay = true
	case ActionQuit:
		k.Quit = true
	default:
		if a >= ActionSelect1 && a <= ActionSelect9 {
			k.Digit = int(a-ActionSelect1) + 1
		}
	}
}

// Input converts the key snapshot into scene input.
func (k Keys) Input() scene.Input {
	return scene.Input{
		Left:          k.Left,
		Right:         k.Right,
		Up:            k.Up,
		Down:          k.Down,
		ZoomIn:        k.ZoomIn,
		ZoomOut:       k.ZoomOut,
		ToggleAuto:    k.Pause,
		ToggleOverlay: k.Overlay,
		Quit:          k.Quit,
		Select:        k.Digit,
	}
}

// keyActions maps key names to actions. Names follow the ultraviolet
// key strings; frontends with other naming translate into these first.
var keyActions = map[string]Action{
	"left":   ActionLeft,
	"right":  ActionRight,
	"up":     ActionUp,
	"down":   ActionDown,
	"s":      ActionZoomIn,
	"a":      ActionZoomOut,
	"space":  ActionPause,
	"o":      ActionOverlay,
	"esc":    ActionQuit,
	"escape": ActionQuit,
	"ctrl+c": ActionQuit,
	"1":      ActionSelect1,
	"2":      ActionSelect2,
	"3":      ActionSelect3,
	"4":      ActionSelect4,
	"5":      ActionSelect5,
	"6":      ActionSelect6,
	"7":      ActionSelect7,
	"8":      ActionSelect8,
	"9":      ActionSelect9,
}

// ActionFor returns the action bound to a key name, or ActionNone.
func ActionFor(name string) Action {
	return keyActions[name]
}

// matchAction returns the action whose key name match accepts.
func matchAction(match func(...string) bool) Action {
	for name, a := range keyActions {
		if match(name) {
			return a
		}
	}
	return ActionNone
}

// StepFunc advances the application by one frame given the keys held. It
// returns the frame to show and whether to quit. The returned framebuffer is
// only read until the next call.
type StepFunc func(keys Keys) (fb *render.Framebuffer, quit bool)

// Status is the HUD summary a frontend may show beside the frame.
type Status struct {
	Focus   string
	Zoom    float64
	Paused  bool
	Overlay bool
}

// Frontend drives the frame loop against an output device until step asks
// to quit, ctx is canceled or the device fails.
type Frontend interface {
	Run(ctx context.Context, step StepFunc) error
}
