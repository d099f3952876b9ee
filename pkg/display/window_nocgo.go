//go:build !cgo

package display

import (
	"context"
	"errors"
)

// ErrNoWindow is returned when the binary was built without cgo, which the
// window backend needs.
var ErrNoWindow = errors.New("window display unavailable: built without cgo")

// Window is unavailable in this build.
type Window struct {
	Title  string
	Width  int
	Height int
	FPS    int
	Status func() Status
}

// NewWindow always fails in this build.
func NewWindow(title string, width, height, fps int) (*Window, error) {
	return nil, ErrNoWindow
}

// Run implements Frontend.
func (w *Window) Run(context.Context, StepFunc) error {
	return ErrNoWindow
}
