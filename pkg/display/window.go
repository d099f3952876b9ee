//go:build cgo

package display

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/orrery/pkg/render"
)

// windowKeys maps polled ebiten keys to actions.
var windowKeys = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyArrowLeft, ActionLeft},
	{ebiten.KeyArrowRight, ActionRight},
	{ebiten.KeyArrowUp, ActionUp},
	{ebiten.KeyArrowDown, ActionDown},
	{ebiten.KeyS, ActionZoomIn},
	{ebiten.KeyA, ActionZoomOut},
	{ebiten.KeySpace, ActionPause},
	{ebiten.KeyO, ActionOverlay},
	{ebiten.KeyEscape, ActionQuit},
	{ebiten.KeyDigit1, ActionSelect1},
	{ebiten.KeyDigit2, ActionSelect2},
	{ebiten.KeyDigit3, ActionSelect3},
	{ebiten.KeyDigit4, ActionSelect4},
	{ebiten.KeyDigit5, ActionSelect5},
	{ebiten.KeyDigit6, ActionSelect6},
	{ebiten.KeyDigit7, ActionSelect7},
	{ebiten.KeyDigit8, ActionSelect8},
	{ebiten.KeyDigit9, ActionSelect9},
}

// Window shows frames in a desktop window. Ebiten paces the loop itself at
// FPS ticks per second.
type Window struct {
	Title  string
	Width  int
	Height int
	FPS    int

	// Status, when set, is appended to the window title each frame.
	Status func() Status
}

// NewWindow returns a window frontend for frames of the given size.
func NewWindow(title string, width, height, fps int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("window size %dx%d must be positive", width, height)
	}
	return &Window{Title: title, Width: width, Height: height, FPS: fps}, nil
}

// Run implements Frontend.
func (w *Window) Run(ctx context.Context, step StepFunc) error {
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	if w.FPS > 0 {
		ebiten.SetTPS(w.FPS)
	}

	g := &windowGame{ctx: ctx, w: w, step: step}
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type windowGame struct {
	ctx  context.Context
	w    *Window
	step StepFunc

	fb    *render.Framebuffer
	img   *ebiten.Image
	pix   []byte
	title string
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	var k Keys
	for _, b := range windowKeys {
		if ebiten.IsKeyPressed(b.key) {
			k.Set(b.action)
		}
	}

	fb, quit := g.step(k)
	if quit {
		return ebiten.Termination
	}
	g.fb = fb

	if g.w.Status != nil {
		st := g.w.Status()
		title := fmt.Sprintf("%s - %s (zoom %.2f)", g.w.Title, st.Focus, st.Zoom)
		if st.Paused {
			title += " [paused]"
		}
		if title != g.title {
			ebiten.SetWindowTitle(title)
			g.title = title
		}
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	if fb == nil {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
		g.pix = make([]byte, fb.Width*fb.Height*4)
	}
	fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(_, _ int) (int, int) {
	return g.w.Width, g.w.Height
}

var _ Frontend = (*Window)(nil)
