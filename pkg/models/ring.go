package models

import (
	"fmt"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// NewRing builds a flat annulus in the XZ plane between inner and outer
// radius. Every segment emits two triangles with an up-facing normal, so the
// mesh holds 6*segments vertices. segments must be positive.
func NewRing(inner, outer float64, segments int) *Mesh {
	mesh := &Mesh{
		Name:     fmt.Sprintf("ring-%gx%g", inner, outer),
		Vertices: make([]Vertex, 0, 6*segments),
	}
	up := math3d.Up()

	for i := range segments {
		a1 := float64(i) / float64(segments) * 2 * math.Pi
		a2 := float64(i+1) / float64(segments) * 2 * math.Pi
		sin1, cos1 := math.Sincos(a1)
		sin2, cos2 := math.Sincos(a2)

		inner1 := Vertex{math3d.V3(inner*cos1, 0, inner*sin1), up, math3d.V2(0, 0)}
		outer1 := Vertex{math3d.V3(outer*cos1, 0, outer*sin1), up, math3d.V2(1, 0)}
		inner2 := Vertex{math3d.V3(inner*cos2, 0, inner*sin2), up, math3d.V2(0, 1)}
		outer2 := Vertex{math3d.V3(outer*cos2, 0, outer*sin2), up, math3d.V2(1, 1)}

		mesh.Vertices = append(mesh.Vertices,
			inner1, outer1, inner2,
			inner2, outer1, outer2,
		)
	}

	mesh.CalculateBounds()
	return mesh
}
