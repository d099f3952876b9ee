package render

import (
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
)

// MeshRenderer is the read-only view of a mesh the pipeline consumes:
// a flat vertex list where each consecutive triple is a triangle.
type MeshRenderer interface {
	VertexCount() int
	GetVertex(i int) models.Vertex
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for
// screen-space culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// Stats tracks pipeline work since the last ResetStats.
type Stats struct {
	MeshesTested int // Meshes whose bounds were tested against the viewport
	MeshesCulled int // Meshes skipped because their bounds missed the viewport
	MeshesDrawn  int // Meshes that went through rasterization
	Triangles    int // Triangles rasterized
	Fragments    int // Fragments emitted inside the viewport
	Written      int // Fragments that passed the depth test
}

// chunkSize is the number of triangles rasterized per parallel task.
const chunkSize = 64

// Renderer drives meshes through the vertex stage, primitive assembly,
// rasterization and fragment consumption.
//
// With Workers > 1, triangle chunks are rasterized concurrently but their
// fragments are consumed strictly in triangle order, so the framebuffer ends
// up identical to a sequential pass, equal-depth ties included.
type Renderer struct {
	Workers int
	Stats   Stats

	// DisableCulling draws every mesh without testing its bounds.
	DisableCulling bool

	vertices []Vertex
	frags    []Fragment
	chunks   [][]Fragment
}

// NewRenderer creates a renderer. workers <= 0 selects runtime.NumCPU().
func NewRenderer(workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Renderer{Workers: workers}
}

// ResetStats resets the statistics (call once per frame).
func (r *Renderer) ResetStats() {
	r.Stats = Stats{}
}

// cull reports whether mesh can be skipped entirely.
func (r *Renderer) cull(fb *Framebuffer, mesh MeshRenderer, model math3d.Mat4) bool {
	if r.DisableCulling {
		return false
	}
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}

	r.Stats.MeshesTested++

	minBounds, maxBounds := bounded.GetBounds()
	vp := Viewport{Width: fb.Width, Height: fb.Height}
	if !vp.IsVisibleTransformed(AABB{Min: minBounds, Max: maxBounds}, model) {
		r.Stats.MeshesCulled++
		Logger().Debug("mesh culled", slog.Any("translation", model.Translation()))
		return true
	}
	return false
}

// Draw renders mesh into fb with the given model matrix. A nil shader draws
// every fragment with fb's current color as it was when Draw was called.
func (r *Renderer) Draw(fb *Framebuffer, mesh MeshRenderer, model math3d.Mat4, shader FragmentShader, t float64) {
	if r.cull(fb, mesh, model) {
		return
	}
	r.Stats.MeshesDrawn++

	flat := ColorFromHex(fb.CurrentColor())
	r.vertices = TransformVertices(r.vertices, mesh, model)
	tris := Assemble(r.vertices)
	r.Stats.Triangles += len(tris)

	clip := viewportClip(fb.Width, fb.Height)

	if r.Workers <= 1 || len(tris) <= chunkSize {
		for _, tri := range tris {
			r.frags = rasterize(r.frags[:0], tri, shader, t, flat, clip)
			r.consume(fb, r.frags)
		}
		return
	}

	n := (len(tris) + chunkSize - 1) / chunkSize
	for len(r.chunks) < n {
		r.chunks = append(r.chunks, nil)
	}

	var g errgroup.Group
	g.SetLimit(r.Workers)
	for i := range n {
		lo := i * chunkSize
		hi := min(lo+chunkSize, len(tris))
		g.Go(func() error {
			frags := r.chunks[i][:0]
			for _, tri := range tris[lo:hi] {
				frags = rasterize(frags, tri, shader, t, flat, clip)
			}
			r.chunks[i] = frags
			return nil
		})
	}
	_ = g.Wait() // tasks never fail

	for _, frags := range r.chunks[:n] {
		r.consume(fb, frags)
	}
}

// consume applies fragments in order: out-of-bounds fragments are discarded,
// the rest set the current color and go through the depth-tested Point.
func (r *Renderer) consume(fb *Framebuffer, frags []Fragment) {
	for _, f := range frags {
		if f.X < 0 || f.X >= fb.Width || f.Y < 0 || f.Y >= fb.Height {
			continue
		}
		r.Stats.Fragments++
		fb.SetCurrentColor(f.Color.Hex())
		if fb.Point(f.X, f.Y, f.Depth) {
			r.Stats.Written++
		}
	}
}

// LogStats writes the accumulated stats at debug level.
func (r *Renderer) LogStats() {
	s := r.Stats
	Logger().Debug("frame stats",
		slog.Int("meshes_tested", s.MeshesTested),
		slog.Int("meshes_culled", s.MeshesCulled),
		slog.Int("meshes_drawn", s.MeshesDrawn),
		slog.Int("triangles", s.Triangles),
		slog.Int("fragments", s.Fragments),
		slog.Int("written", s.Written),
	)
}
