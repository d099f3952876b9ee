package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Transform returns an AABB that bounds the original AABB after transformation.
// This computes a new AABB that contains all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	transformed := m.MulVec3(corners[0])
	newMin := transformed
	newMax := transformed

	for i := 1; i < 8; i++ {
		transformed = m.MulVec3(corners[i])
		newMin = newMin.Min(transformed)
		newMax = newMax.Max(transformed)
	}

	return AABB{Min: newMin, Max: newMax}
}

// Viewport is the pixel rectangle [0,Width)x[0,Height) fragments may land in.
// Depth is unbounded, so only X and Y take part in culling.
type Viewport struct {
	Width, Height int
}

// IntersectAABB reports whether any integer pixel sample inside box's screen
// footprint can fall inside the viewport. A false result guarantees that
// every fragment of the mesh would be discarded.
func (v Viewport) IntersectAABB(box AABB) bool {
	return box.Max.X >= 0 && box.Min.X <= float64(v.Width-1) &&
		box.Max.Y >= 0 && box.Min.Y <= float64(v.Height-1)
}

// ContainsAABB reports whether box lies entirely inside the viewport.
func (v Viewport) ContainsAABB(box AABB) bool {
	return box.Min.X >= 0 && box.Max.X <= float64(v.Width-1) &&
		box.Min.Y >= 0 && box.Max.Y <= float64(v.Height-1)
}

// IsVisibleTransformed tests a local-space AABB after transformation.
func (v Viewport) IsVisibleTransformed(localBounds AABB, transform math3d.Mat4) bool {
	return v.IntersectAABB(localBounds.Transform(transform))
}
