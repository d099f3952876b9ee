package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
)

// Vertex is a mesh vertex after the vertex stage. Position is in screen
// space: X and Y are pixel coordinates and Z is depth.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// VertexShader transforms v by the model matrix. The position is treated as
// a point with no perspective divide; the normal is treated as a direction.
// UV passes through.
func VertexShader(v models.Vertex, model math3d.Mat4) Vertex {
	p := model.MulVec4(math3d.V4FromV3(v.Position, 1))
	return Vertex{
		Position: p.Vec3(),
		Normal:   model.MulVec3Dir(v.Normal),
		UV:       v.UV,
	}
}

// TransformVertices runs the vertex stage over every vertex of mesh,
// appending to dst[:0] so callers can reuse the backing array.
func TransformVertices(dst []Vertex, mesh MeshRenderer, model math3d.Mat4) []Vertex {
	dst = dst[:0]
	for i := range mesh.VertexCount() {
		dst = append(dst, VertexShader(mesh.GetVertex(i), model))
	}
	return dst
}
