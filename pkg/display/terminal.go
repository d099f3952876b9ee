package display

import (
	"context"
	"fmt"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// HUD styles.
var (
	hudBase  = lipgloss.NewStyle().Background(lipgloss.Color("#000011")).Foreground(lipgloss.Color("#C8C8D8"))
	hudFPS   = hudBase.Foreground(lipgloss.Color("#5FD75F")).Padding(0, 1)
	hudFocus = hudBase.Bold(true).Foreground(lipgloss.Color("#FFD030")).Padding(0, 1)
	hudDim   = hudBase.Faint(true).Padding(0, 1)
	hudOn    = hudBase.Foreground(lipgloss.Color("#87D7FF")).Padding(0, 1)
)

// Terminal shows frames as half-block cells in the terminal's alternate
// screen. The framebuffer is scaled to fill the terminal; the bottom row is
// reserved for the HUD.
type Terminal struct {
	FPS int

	// Status, when set, supplies the HUD line shown under the frame.
	Status func() Status

	// Latch is how long a key press counts as held.
	Latch time.Duration
}

// NewTerminal returns a terminal frontend paced at fps.
func NewTerminal(fps int) *Terminal {
	return &Terminal{FPS: fps, Latch: defaultLatch}
}

// Run implements Frontend.
func (t *Terminal) Run(ctx context.Context, step StepFunc) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		keys = newLatch(t.Latch)
		size = struct{ w, h int }{width, height}
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-term.Events():
				if !ok {
					cancel()
					return
				}
				mu.Lock()
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					size.w, size.h = ev.Width, ev.Height
					term.Erase()
					term.Resize(ev.Width, ev.Height)
				case uv.KeyPressEvent:
					keys.press(matchAction(ev.MatchString), time.Now())
				case uv.KeyReleaseEvent:
					keys.release(matchAction(ev.MatchString))
				}
				mu.Unlock()
			}
		}
	}()

	pacer := NewPacer(t.FPS)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		pacer.Begin()

		mu.Lock()
		k := keys.snapshot(time.Now())
		w, h := size.w, size.h
		mu.Unlock()

		fb, quit := step(k)
		if quit {
			return nil
		}

		frame := uv.Rect(0, 0, w, max(h-1, 0))
		fb.Draw(term, frame)
		t.drawHUD(term, uv.Rect(0, frame.Max.Y, w, 1), pacer.FPS())

		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		pacer.Wait()
	}
}

func (t *Terminal) drawHUD(scr uv.Screen, area uv.Rectangle, fps float64) {
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	var st Status
	if t.Status != nil {
		st = t.Status()
	}
	line := hudLine(st, fps)
	uv.NewStyledString(hudBase.Width(area.Dx()).Render(line)).Draw(scr, area)
}

// hudLine renders the one-line HUD.
func hudLine(st Status, fps float64) string {
	flag := func(label string, on bool) string {
		if on {
			return hudOn.Render("[x] " + label)
		}
		return hudDim.Render("[ ] " + label)
	}
	parts := []string{hudFPS.Render(fmt.Sprintf("%.0f FPS", fps))}
	if st.Focus != "" {
		parts = append(parts, hudFocus.Render(st.Focus))
	}
	parts = append(parts,
		hudBase.Padding(0, 1).Render(fmt.Sprintf("zoom %.2f", st.Zoom)),
		flag("paused", st.Paused),
		flag("overlay", st.Overlay),
		hudDim.Render("arrows pan  s/a zoom  1-6 focus  space pause  o overlay  esc quit"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

var _ Frontend = (*Terminal)(nil)
