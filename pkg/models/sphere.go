package models

import (
	"fmt"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Default tessellation for planets and moons.
const (
	PlanetSegments = 32
	MoonSegments   = 16
)

// NewSphere builds a sphere of the given radius sampled over latSegments
// rings and lonSegments slices. Both segment counts must be positive.
//
// The grid has (latSegments+1)*(lonSegments+1) samples; each grid quad emits
// two triangles, so the mesh holds 6*latSegments*lonSegments vertices.
func NewSphere(radius float64, latSegments, lonSegments int) *Mesh {
	stride := lonSegments + 1
	grid := make([]Vertex, 0, (latSegments+1)*stride)

	for lat := 0; lat <= latSegments; lat++ {
		theta := float64(lat) * math.Pi / float64(latSegments)
		sinTheta, cosTheta := math.Sincos(theta)

		for lon := 0; lon <= lonSegments; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(lonSegments)
			sinPhi, cosPhi := math.Sincos(phi)

			n := math3d.V3(cosPhi*sinTheta, cosTheta, sinPhi*sinTheta)
			grid = append(grid, Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				UV:       math3d.V2(float64(lon)/float64(lonSegments), float64(lat)/float64(latSegments)),
			})
		}
	}

	mesh := &Mesh{
		Name:     fmt.Sprintf("sphere-%dx%d", latSegments, lonSegments),
		Vertices: make([]Vertex, 0, 6*latSegments*lonSegments),
	}
	for lat := range latSegments {
		for lon := range lonSegments {
			first := lat*stride + lon
			second := first + stride

			mesh.Vertices = append(mesh.Vertices,
				grid[first], grid[second], grid[first+1],
				grid[second], grid[second+1], grid[first+1],
			)
		}
	}

	mesh.CalculateBounds()
	return mesh
}
