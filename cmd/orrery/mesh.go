package main

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/taigrr/orrery/pkg/models"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87D7FF")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C8D8"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD030"))
)

type exportFlags struct {
	kind     string
	out      string
	radius   float64
	inner    float64
	outer    float64
	segments int
}

func newExportMeshCmd() *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export-mesh",
		Short: "Write a generated sphere or ring mesh as a GLB file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mesh, err := generateMesh(f)
			if err != nil {
				return err
			}
			if err := models.WriteGLB(f.out, mesh); err != nil {
				return err
			}
			printMeshInfo(cmd.OutOrStdout(), f.out, mesh)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.kind, "kind", "k", "sphere", "mesh kind: sphere or ring")
	fl.StringVarP(&f.out, "out", "o", "mesh.glb", "output GLB file")
	fl.Float64Var(&f.radius, "radius", 1, "sphere radius")
	fl.Float64Var(&f.inner, "inner", 90, "ring inner radius")
	fl.Float64Var(&f.outer, "outer", 140, "ring outer radius")
	fl.IntVar(&f.segments, "segments", 0, "tessellation (0 = the scene default for the kind)")
	return cmd
}

func generateMesh(f *exportFlags) (*models.Mesh, error) {
	switch f.kind {
	case "sphere":
		seg := f.segments
		if seg == 0 {
			seg = models.PlanetSegments
		}
		if seg < 1 || f.radius <= 0 {
			return nil, fmt.Errorf("sphere needs positive radius and segments, got %v and %d", f.radius, seg)
		}
		return models.NewSphere(f.radius, seg, seg), nil
	case "ring":
		seg := f.segments
		if seg == 0 {
			seg = 128
		}
		if seg < 1 || f.inner < 0 || f.outer <= f.inner {
			return nil, fmt.Errorf("ring needs 0 <= inner < outer and positive segments, got %v, %v, %d", f.inner, f.outer, seg)
		}
		return models.NewRing(f.inner, f.outer, seg), nil
	default:
		return nil, fmt.Errorf("unknown mesh kind %q (want sphere or ring)", f.kind)
	}
}

func newMeshInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mesh-info <file.glb>",
		Short: "Print vertex, triangle and bounds information for a GLB file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := models.NewGLTFLoader().Load(args[0])
			if err != nil {
				return err
			}
			printMeshInfo(cmd.OutOrStdout(), args[0], mesh)
			return nil
		},
	}
}

func printMeshInfo(w io.Writer, path string, mesh *models.Mesh) {
	lo, hi := mesh.GetBounds()
	size := mesh.Size()
	center := mesh.Center()
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(path),
		row("name", mesh.Name),
		row("vertices", fmt.Sprint(mesh.VertexCount())),
		row("triangles", fmt.Sprint(mesh.TriangleCount())),
		row("min", fmt.Sprintf("(%.3f, %.3f, %.3f)", lo.X, lo.Y, lo.Z)),
		row("max", fmt.Sprintf("(%.3f, %.3f, %.3f)", hi.X, hi.Y, hi.Z)),
		row("size", fmt.Sprintf("%.3f x %.3f x %.3f", size.X, size.Y, size.Z)),
		row("center", fmt.Sprintf("(%.3f, %.3f, %.3f)", center.X, center.Y, center.Z)),
	))
}
