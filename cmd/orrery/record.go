package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taigrr/orrery/pkg/scene"
)

type recordFlags struct {
	frames  int
	out     string
	overlay bool
}

func newRecordCmd(g *globalFlags) *cobra.Command {
	f := &recordFlags{}
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Render a sequence of frames to numbered PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			progress := term.IsTerminal(int(os.Stdout.Fd()))
			if err := record(cmd, cfg, g.workers, f, progress); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", f.frames, f.out)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&f.frames, "frames", "n", 120, "number of frames")
	fl.StringVarP(&f.out, "out", "o", "frames", "output directory")
	fl.BoolVar(&f.overlay, "overlay", false, "draw the wireframe overlay")
	return cmd
}

// framePath names frame i inside dir.
func framePath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
}

func record(cmd *cobra.Command, cfg scene.Config, workers int, f *recordFlags, progress bool) error {
	if f.frames <= 0 {
		return fmt.Errorf("--frames %d must be positive", f.frames)
	}
	if err := os.MkdirAll(f.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	a, err := newApp(cfg, workers)
	if err != nil {
		return err
	}
	if f.overlay {
		a.view = a.view.Update(scene.Input{ToggleOverlay: true}, a.scene, cfg.TimeStep)
	}

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(f.frames), "recording")
	}

	for i := range f.frames {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		fb, _ := a.step(scene.Input{})
		if err := fb.SavePNG(framePath(f.out, i)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return nil
}
