package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Wireframe draws debug overlays on top of a rendered frame. Positions are
// screen space like the rest of the pipeline: X and Y are pixels and Z is
// ignored. Nothing drawn here is depth tested.
type Wireframe struct {
	fb *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// DrawLine3D draws the screen projection of a line segment.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	if !finite(p1) || !finite(p2) {
		return
	}
	w.fb.DrawLine(
		int(math.Round(p1.X)), int(math.Round(p1.Y)),
		int(math.Round(p2.X)), int(math.Round(p2.Y)),
		color.Hex(),
	)
}

func finite(v math3d.Vec3) bool {
	const limit = 1 << 30
	return math.Abs(v.X) < limit && math.Abs(v.Y) < limit
}

// DrawBounds draws the twelve edges of a screen-space box.
func (w *Wireframe) DrawBounds(b AABB, color Color) {
	vertices := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	for _, edge := range edges {
		w.DrawLine3D(vertices[edge[0]], vertices[edge[1]], color)
	}
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	half := size / 2
	w.DrawLine3D(math3d.V3(pos.X-half, pos.Y, pos.Z), math3d.V3(pos.X+half, pos.Y, pos.Z), color)
	w.DrawLine3D(math3d.V3(pos.X, pos.Y-half, pos.Z), math3d.V3(pos.X, pos.Y+half, pos.Z), color)
}

// DrawPath connects consecutive points, closing the loop when closed is set.
func (w *Wireframe) DrawPath(points []math3d.Vec3, closed bool, color Color) {
	for i := 1; i < len(points); i++ {
		w.DrawLine3D(points[i-1], points[i], color)
	}
	if closed && len(points) > 2 {
		w.DrawLine3D(points[len(points)-1], points[0], color)
	}
}
