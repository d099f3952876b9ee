// orrery - software-rendered solar system
// Draws a small procedural solar system with a CPU rasterizer and shows it
// in the terminal, a desktop window or a browser.
//
// Controls:
//
//	Arrow keys  - Pan the camera
//	S/A         - Zoom in/out
//	1-6         - Focus a planet
//	Space       - Pause/resume the orbits
//	O           - Toggle the wireframe overlay
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config   string
	logLevel string
	logFile  string
	workers  int

	logOut *os.File // open --log-file, closed after the command runs
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "orrery",
		Short: "Software-rendered solar system",
		Long: "orrery draws a procedural solar system with a CPU rasterizer: a star, " +
			"orbiting planets with animated shaders, a moon and ring systems.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(g)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return g.closeLog()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.config, "config", "c", "", "scene file (YAML); the built-in scene when empty")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.IntVarP(&g.workers, "workers", "w", 0, "rasterizer workers (0 = one per CPU)")

	root.AddCommand(
		newRunCmd(g),
		newSnapshotCmd(g),
		newRecordCmd(g),
		newExportMeshCmd(),
		newMeshInfoCmd(),
	)
	return root
}

func setupLogging(g *globalFlags) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}

	var w io.Writer = os.Stderr
	if g.logFile != "" {
		f, err := os.OpenFile(g.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		g.logOut = f
	}

	render.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// closeLog restores the discarding logger and closes the --log-file handle.
func (g *globalFlags) closeLog() error {
	if g.logOut == nil {
		return nil
	}
	render.SetLogger(nil)
	err := g.logOut.Close()
	g.logOut = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// loadConfig returns the scene named by --config, or the built-in one.
func (g *globalFlags) loadConfig() (scene.Config, error) {
	if g.config == "" {
		return scene.DefaultConfig(), nil
	}
	return scene.LoadConfig(g.config)
}
