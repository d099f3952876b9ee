package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/orrery/pkg/display"
	"github.com/taigrr/orrery/pkg/render"
)

type runFlags struct {
	display string
	fps     int
	addr    string
	width   int
	height  int
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the solar system interactively",
		Long: "Run the solar system in the terminal, a desktop window or a browser.\n\n" +
			"Controls: arrows pan, S/A zoom, 1-6 focus a planet, space pauses,\n" +
			"O toggles the wireframe overlay, Esc quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, g, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.display, "display", "d", "terminal", "output: terminal, window or stream")
	fl.IntVar(&f.fps, "fps", 0, "target frame rate (overrides the scene file)")
	fl.StringVar(&f.addr, "addr", "localhost:8080", "listen address for --display stream")
	fl.IntVar(&f.width, "width", 0, "frame width in pixels (overrides the scene file)")
	fl.IntVar(&f.height, "height", 0, "frame height in pixels (overrides the scene file)")
	return cmd
}

func runInteractive(cmd *cobra.Command, g *globalFlags, f *runFlags) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if f.fps > 0 {
		cfg.FPS = f.fps
	}
	if f.width > 0 {
		cfg.Width = f.width
	}
	if f.height > 0 {
		cfg.Height = f.height
	}

	a, err := newApp(cfg, g.workers)
	if err != nil {
		return err
	}
	start := time.Now()
	a.clock = func() float64 { return time.Since(start).Seconds() }

	var front display.Frontend
	switch f.display {
	case "terminal":
		t := display.NewTerminal(cfg.FPS)
		t.Status = a.status
		front = t
	case "window":
		w, err := display.NewWindow("orrery", cfg.Width, cfg.Height, cfg.FPS)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
		w.Status = a.status
		front = w
	case "stream":
		s := display.NewStream(f.addr, cfg.FPS)
		s.Status = a.status
		front = s
	default:
		return fmt.Errorf("unknown display %q (want terminal, window or stream)", f.display)
	}

	if err := front.Run(cmd.Context(), a.stepKeys); err != nil {
		return fmt.Errorf("%s display: %w", f.display, err)
	}
	render.Logger().Info("stopped", "frames", a.frames)
	return nil
}
