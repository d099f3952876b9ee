package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Triangle is three transformed vertices.
type Triangle struct {
	V [3]Vertex
}

// Fragment is a candidate pixel write produced by rasterizing one triangle.
type Fragment struct {
	X, Y  int
	Depth float64
	Color Color
}

// FragmentShader computes a surface color from the interpolated screen-space
// position, normal and uv at time t (seconds).
type FragmentShader func(position, normal math3d.Vec3, uv math3d.Vec2, t float64) Color

// Assemble groups vertices into consecutive triangles. Up to two trailing
// vertices that do not complete a triangle are dropped.
func Assemble(vertices []Vertex) []Triangle {
	tris := make([]Triangle, 0, len(vertices)/3)
	for i := 0; i+2 < len(vertices); i += 3 {
		tris = append(tris, Triangle{V: [3]Vertex{vertices[i], vertices[i+1], vertices[i+2]}})
	}
	return tris
}

// edgeCoeffs returns A, B, C for edge(x,y) = A*x + B*y + C, the signed
// doubled area of the triangle (p0, p1, (x,y)).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// Barycentric returns the weights of p relative to triangle (a, b, c). The
// weights are normalized by the signed area so they sum to 1 whatever the
// winding. ok is false for a zero-area triangle.
func Barycentric(a, b, c, p math3d.Vec2) (w0, w1, w2 float64, ok bool) {
	area := b.Sub(a).Cross(c.Sub(a))
	if area == 0 {
		return 0, 0, 0, false
	}
	inv := 1 / area
	w0 = b.Sub(p).Cross(c.Sub(p)) * inv
	w1 = c.Sub(p).Cross(a.Sub(p)) * inv
	w2 = 1 - w0 - w1
	return w0, w1, w2, true
}

// Rasterize scan-converts tri and returns one fragment per covered pixel.
// Pixels are sampled at integer coordinates over the triangle's bounding box;
// a pixel is covered when all three weights are non-negative. When shader is
// nil every fragment takes the flat color. Fragments are not clipped to any
// viewport.
func Rasterize(tri Triangle, shader FragmentShader, t float64, flat Color) []Fragment {
	return rasterize(nil, tri, shader, t, flat, noClip)
}

// clipRect limits the scanned pixel range. Fragments outside it would be
// discarded by the framebuffer anyway, so clipping never changes output.
type clipRect struct {
	minX, minY, maxX, maxY int
}

var noClip = clipRect{math.MinInt, math.MinInt, math.MaxInt, math.MaxInt}

func viewportClip(w, h int) clipRect {
	return clipRect{0, 0, w - 1, h - 1}
}

func rasterize(dst []Fragment, tri Triangle, shader FragmentShader, t float64, flat Color, clip clipRect) []Fragment {
	p0, p1, p2 := tri.V[0].Position, tri.V[1].Position, tri.V[2].Position

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	A1, B1, C1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	A2, B2, C2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

	area2 := edgeFunc(A2, B2, C2, p2.X, p2.Y)
	if area2 == 0 || math.IsNaN(area2) || math.IsInf(area2, 0) {
		return dst
	}
	invArea := 1 / area2

	minX := max(clip.minX, int(math.Floor(min(p0.X, p1.X, p2.X))))
	maxX := min(clip.maxX, int(math.Ceil(max(p0.X, p1.X, p2.X))))
	minY := max(clip.minY, int(math.Floor(min(p0.Y, p1.Y, p2.Y))))
	maxY := min(clip.maxY, int(math.Ceil(max(p0.Y, p1.Y, p2.Y))))

	for y := minY; y <= maxY; y++ {
		py := float64(y)
		for x := minX; x <= maxX; x++ {
			px := float64(x)

			w0 := edgeFunc(A0, B0, C0, px, py) * invArea
			w1 := edgeFunc(A1, B1, C1, px, py) * invArea
			w2 := edgeFunc(A2, B2, C2, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*p0.Z + w1*p1.Z + w2*p2.Z

			c := flat
			if shader != nil {
				pos := interp3(p0, p1, p2, w0, w1, w2)
				normal := interp3(tri.V[0].Normal, tri.V[1].Normal, tri.V[2].Normal, w0, w1, w2)
				uv := math3d.V2(
					w0*tri.V[0].UV.X+w1*tri.V[1].UV.X+w2*tri.V[2].UV.X,
					w0*tri.V[0].UV.Y+w1*tri.V[1].UV.Y+w2*tri.V[2].UV.Y,
				)
				c = shader(pos, normal, uv, t)
			}

			dst = append(dst, Fragment{X: x, Y: y, Depth: depth, Color: c})
		}
	}

	return dst
}

func interp3(a, b, c math3d.Vec3, w0, w1, w2 float64) math3d.Vec3 {
	return math3d.Vec3{
		X: w0*a.X + w1*b.X + w2*c.X,
		Y: w0*a.Y + w1*b.Y + w2*c.Y,
		Z: w0*a.Z + w1*b.Z + w2*c.Z,
	}
}
