package render

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func vtx(x, y, z float64) Vertex {
	return Vertex{Position: math3d.V3(x, y, z)}
}

func TestBarycentric(t *testing.T) {
	a, b, c := math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1)

	tests := []struct {
		name     string
		p        math3d.Vec2
		expected math3d.Vec3
	}{
		{"vertex 0", math3d.V2(0, 0), math3d.V3(1, 0, 0)},
		{"vertex 1", math3d.V2(1, 0), math3d.V3(0, 1, 0)},
		{"vertex 2", math3d.V2(0, 1), math3d.V3(0, 0, 1)},
		{"centroid", math3d.V2(1.0/3, 1.0/3), math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w0, w1, w2, ok := Barycentric(a, b, c, tc.p)
			if !ok {
				t.Fatal("Barycentric reported degenerate triangle")
			}
			if math.Abs(w0-tc.expected.X) > 1e-9 ||
				math.Abs(w1-tc.expected.Y) > 1e-9 ||
				math.Abs(w2-tc.expected.Z) > 1e-9 {
				t.Errorf("Barycentric(%v) = (%v, %v, %v), want %v", tc.p, w0, w1, w2, tc.expected)
			}
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		w0, w1, w2, _ := Barycentric(a, b, c, math3d.V2(-1, -1))
		if w0 >= 0 && w1 >= 0 && w2 >= 0 {
			t.Error("point outside triangle should have a negative weight")
		}
	})

	t.Run("winding independent", func(t *testing.T) {
		p := math3d.V2(0.2, 0.3)
		w0, w1, w2, _ := Barycentric(a, b, c, p)
		v0, v2, v1, _ := Barycentric(a, c, b, p)
		if math.Abs(w0-v0) > 1e-12 || math.Abs(w1-v1) > 1e-12 || math.Abs(w2-v2) > 1e-12 {
			t.Errorf("weights differ across winding: (%v,%v,%v) vs (%v,%v,%v)", w0, w1, w2, v0, v1, v2)
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		if _, _, _, ok := Barycentric(a, b, math3d.V2(2, 0), math3d.V2(0.5, 0)); ok {
			t.Error("collinear triangle should not be ok")
		}
	})
}

func TestRasterizeWeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		tri := Triangle{V: [3]Vertex{
			vtx(rng.Float64()*40, rng.Float64()*40, 0),
			vtx(rng.Float64()*40, rng.Float64()*40, 0),
			vtx(rng.Float64()*40, rng.Float64()*40, 0),
		}}
		a := math3d.V2(tri.V[0].Position.X, tri.V[0].Position.Y)
		b := math3d.V2(tri.V[1].Position.X, tri.V[1].Position.Y)
		c := math3d.V2(tri.V[2].Position.X, tri.V[2].Position.Y)

		for _, f := range Rasterize(tri, nil, 0, ColorWhite) {
			w0, w1, w2, ok := Barycentric(a, b, c, math3d.V2(float64(f.X), float64(f.Y)))
			if !ok {
				t.Fatal("fragment emitted for degenerate triangle")
			}
			const eps = 1e-9
			if w0 < -eps || w1 < -eps || w2 < -eps {
				t.Fatalf("covered pixel (%d,%d) has negative weight (%v,%v,%v)", f.X, f.Y, w0, w1, w2)
			}
			if math.Abs(w0+w1+w2-1) > eps {
				t.Fatalf("weights at (%d,%d) sum to %v", f.X, f.Y, w0+w1+w2)
			}
		}
	}
}

func TestRasterizeInterpolation(t *testing.T) {
	tri := Triangle{V: [3]Vertex{
		{Position: math3d.V3(0, 0, 1), UV: math3d.V2(0, 0)},
		{Position: math3d.V3(10, 0, 3), UV: math3d.V2(1, 0)},
		{Position: math3d.V3(0, 10, 5), UV: math3d.V2(0, 1)},
	}}

	var gotUV math3d.Vec2
	var gotPos math3d.Vec3
	shader := func(pos, _ math3d.Vec3, uv math3d.Vec2, _ float64) Color {
		if pos.X == 5 && pos.Y == 0 {
			gotUV, gotPos = uv, pos
		}
		return RGB(uint8(uv.X*255), uint8(uv.Y*255), 0)
	}

	var mid *Fragment
	frags := Rasterize(tri, shader, 0, ColorBlack)
	for i := range frags {
		if frags[i].X == 5 && frags[i].Y == 0 {
			mid = &frags[i]
		}
	}
	if mid == nil {
		t.Fatal("pixel (5,0) on the edge was not covered")
	}
	if math.Abs(mid.Depth-2) > 1e-9 {
		t.Errorf("depth at (5,0) = %v, want 2", mid.Depth)
	}
	if math.Abs(gotUV.X-0.5) > 1e-9 || math.Abs(gotUV.Y) > 1e-9 {
		t.Errorf("uv at (5,0) = %v, want (0.5, 0)", gotUV)
	}
	if math.Abs(gotPos.Z-2) > 1e-9 {
		t.Errorf("position at (5,0) = %v, want z=2", gotPos)
	}
}

func TestRasterizeFlatColor(t *testing.T) {
	tri := Triangle{V: [3]Vertex{vtx(0, 0, 0), vtx(4, 0, 0), vtx(0, 4, 0)}}
	frags := Rasterize(tri, nil, 0, ColorRed)
	if len(frags) == 0 {
		t.Fatal("no fragments")
	}
	for _, f := range frags {
		if f.Color != ColorRed {
			t.Fatalf("fragment (%d,%d) color = %v, want red", f.X, f.Y, f.Color)
		}
	}
}

func TestRasterizeEitherWinding(t *testing.T) {
	cw := Triangle{V: [3]Vertex{vtx(0, 0, 0), vtx(8, 0, 0), vtx(0, 8, 0)}}
	ccw := Triangle{V: [3]Vertex{vtx(0, 0, 0), vtx(0, 8, 0), vtx(8, 0, 0)}}
	a := Rasterize(cw, nil, 0, ColorWhite)
	b := Rasterize(ccw, nil, 0, ColorWhite)
	if len(a) != len(b) || len(a) == 0 {
		t.Errorf("fragment counts differ by winding: %d vs %d", len(a), len(b))
	}
}

func TestRasterizeNoClipping(t *testing.T) {
	tri := Triangle{V: [3]Vertex{vtx(-5, -5, 0), vtx(2, -5, 0), vtx(-5, 2, 0)}}
	var negative bool
	for _, f := range Rasterize(tri, nil, 0, ColorWhite) {
		if f.X < 0 || f.Y < 0 {
			negative = true
		}
	}
	if !negative {
		t.Error("Rasterize should emit fragments outside any viewport")
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	tri := Triangle{V: [3]Vertex{vtx(0, 0, 0), vtx(5, 5, 0), vtx(10, 10, 0)}}
	if frags := Rasterize(tri, nil, 0, ColorWhite); len(frags) != 0 {
		t.Errorf("degenerate triangle produced %d fragments", len(frags))
	}
}

func TestAssembleDropsTrailingVertices(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{7, 2},
		{8, 2},
		{9, 3},
	}
	for _, tc := range tests {
		vs := make([]Vertex, tc.n)
		for i := range vs {
			vs[i] = vtx(float64(i), 0, 0)
		}
		tris := Assemble(vs)
		if len(tris) != tc.want {
			t.Errorf("Assemble(%d vertices) = %d triangles, want %d", tc.n, len(tris), tc.want)
			continue
		}
		for i, tri := range tris {
			for j := range 3 {
				if tri.V[j].Position.X != float64(i*3+j) {
					t.Errorf("triangle %d vertex %d out of order", i, j)
				}
			}
		}
	}
}

func BenchmarkRasterize(b *testing.B) {
	tri := Triangle{V: [3]Vertex{vtx(10, 10, 0), vtx(200, 30, 1), vtx(80, 180, 2)}}
	dst := make([]Fragment, 0, 1<<15)
	clip := viewportClip(800, 600)

	for b.Loop() {
		dst = rasterize(dst[:0], tri, nil, 0, ColorWhite, clip)
	}
}
