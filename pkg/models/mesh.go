// Package models provides the vertex and mesh types consumed by the orrery
// pipeline, procedural generators for spheres and rings, and GLB import/export.
package models

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// Vertex holds all vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Mesh is a flat triangle list: each consecutive triple of Vertices is one
// triangle. Vertices are duplicated across shared edges.
type Mesh struct {
	Name     string
	Vertices []Vertex

	// Bounding box (calculated by generators and loaders)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// VertexCount returns the number of vertices.
// Implements render.MeshRenderer interface.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) Vertex {
	return m.Vertices[i]
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
