package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

const eps = 1e-9

// starConfig is a single pinned star at the screen center.
func starConfig() Config {
	cfg, err := ParseConfig([]byte(`
width: 200
height: 150
background: "0x000011"
origin: [100, 75, 0]
camera: {smoothing: 0}
planets:
  - name: star
    kind: star
    position: [100, 75, 0]
    scale: 30
    rotation_speed: 0.5
    segments: 16
`))
	if err != nil {
		panic(err)
	}
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Moons[0].Parent = 10
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewDefaultScene(t *testing.T) {
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.Planets) != 6 || len(s.Moons) != 1 || len(s.Rings) != 6 {
		t.Fatalf("got %d planets, %d moons, %d rings", len(s.Planets), len(s.Moons), len(s.Rings))
	}
	if s.Planets[2].Kind != shaders.GasGiant || s.Planets[2].Name != "Jove" {
		t.Errorf("planet 2 = %s/%v", s.Planets[2].Name, s.Planets[2].Kind)
	}
	if got := s.Planets[0].Mesh.TriangleCount(); got != 2*32*32 {
		t.Errorf("planet mesh triangles = %d, want %d", got, 2*32*32)
	}
	if got := s.Moons[0].Mesh.VertexCount(); got != 6*16*16 {
		t.Errorf("moon mesh vertices = %d, want %d", got, 6*16*16)
	}
	if got := s.Rings[0].Mesh.TriangleCount(); got != 2*128 {
		t.Errorf("ring mesh triangles = %d, want %d", got, 2*128)
	}
	if s.Planet(0) != nil || s.Planet(7) != nil || s.Planet(1) != s.Planets[0] {
		t.Error("Planet should be 1-based and bounds checked")
	}
}

func TestUpdateMovesMoonWithParent(t *testing.T) {
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.Update(1)

	terra := s.Planets[1]
	wantTerra := math3d.V3(120*math.Cos(1), 300, 120*math.Sin(1))
	if terra.Position.Distance(wantTerra) > eps {
		t.Errorf("terra = %v, want %v", terra.Position, wantTerra)
	}
	if s.Planets[0].Position != math3d.V3(400, 300, 0) {
		t.Errorf("star moved to %v", s.Planets[0].Position)
	}

	m := s.Moons[0]
	if m.Center != terra.Position {
		t.Errorf("moon center = %v, want parent position %v", m.Center, terra.Position)
	}
	want := terra.Position.Add(math3d.V3(40*math.Cos(3), 0, 40*math.Sin(3)))
	if m.Position().Distance(want) > eps {
		t.Errorf("moon = %v, want %v", m.Position(), want)
	}
}

func TestRenderStar(t *testing.T) {
	cfg := starConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := render.NewRenderer(1)

	s.Render(fb, r, NewView(cfg), 0)

	if got := fb.GetPixel(0, 0); got != 0x000011 {
		t.Errorf("corner = %#06x, want background", got)
	}
	c := render.ColorFromHex(fb.GetPixel(100, 75))
	if c.R < 229 {
		t.Errorf("star center red = %d, want at least 229", c.R)
	}
	if d := fb.GetDepth(100, 75); d > -29 {
		t.Errorf("star center depth = %v, want near -30", d)
	}
	if r.Stats.MeshesDrawn != 1 {
		t.Errorf("drew %d meshes, want 1", r.Stats.MeshesDrawn)
	}
}

func TestRenderPanAndZoom(t *testing.T) {
	cfg := starConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := render.NewRenderer(1)

	v := NewView(cfg)
	for range 5 {
		v = v.Update(Input{Right: true}, s, cfg.TimeStep)
	}
	s.Render(fb, r, v, 0)

	// Panning right by 50 shifts the star left by 50 pixels.
	if got := fb.GetPixel(100+31-50, 75); got != 0x000011 {
		t.Errorf("pixel right of shifted star = %#06x, want background", got)
	}
	if got := fb.GetPixel(50, 75); got == 0x000011 {
		t.Error("shifted star center not drawn")
	}

	v = NewView(cfg)
	for range 20 {
		v = v.Update(Input{ZoomOut: true}, s, cfg.TimeStep)
	}
	s.Render(fb, r, v, 0)
	if got := fb.GetPixel(100+5, 75); got != 0x000011 {
		t.Errorf("pixel outside zoomed-out star = %#06x, want background", got)
	}
}

func TestRenderFlatMoon(t *testing.T) {
	cfg := starConfig()
	cfg.Moons = []MoonConfig{{Parent: 0, Radius: 0, Scale: 50, Shaded: false, Color: 0x123456}}
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Update(0)

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	s.Render(fb, render.NewRenderer(2), NewView(cfg), 0)

	// The moon encloses the star and is drawn in front of it.
	for _, p := range [][2]int{{100, 75}, {120, 85}} {
		if got := fb.GetPixel(p[0], p[1]); got != 0x123456 {
			t.Errorf("pixel %v = %#06x, want moon color", p, got)
		}
	}
}

func TestRenderFlatRing(t *testing.T) {
	cfg := starConfig()
	cfg.RingStyle = RingStyleConfig{TiltDegrees: 90, Scale: 1.0 / 30}
	cfg.Rings = []RingConfig{{Planet: 0, Inner: 40, Outer: 60, Segments: 64, Color: 0xABCDEF}}
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	s.Render(fb, render.NewRenderer(1), NewView(cfg), 0)

	// A 90 degree tilt stands the ring up facing the viewer.
	if got := fb.GetPixel(100+50, 75); got != 0xABCDEF {
		t.Errorf("ring pixel = %#06x, want ring color", got)
	}
	if got := fb.GetPixel(100+70, 75); got != 0x000011 {
		t.Errorf("outside ring = %#06x, want background", got)
	}
}

func TestRenderRingDefaultStyle(t *testing.T) {
	cfg := starConfig()
	cfg.Rings = []RingConfig{{Planet: 0, Inner: 100, Outer: 150, Segments: 64, Color: 0xABCDEF}}
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	s.Render(fb, render.NewRenderer(1), NewView(cfg), 0)

	// The default tilt keeps the ring from collapsing edge-on.
	if got := fb.GetPixel(100+45, 75); got != 0xABCDEF {
		t.Errorf("ring pixel = %#06x, want ring color", got)
	}
	written := 0
	for _, p := range fb.Buffer() {
		if p == 0xABCDEF {
			written++
		}
	}
	if written < 100 {
		t.Errorf("ring covered %d pixels, want a visible band", written)
	}
}

func TestRenderOverlay(t *testing.T) {
	cfg := starConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := render.NewRenderer(1)
	v := NewView(cfg)

	s.Render(fb, r, v, 0)
	plain := append([]uint32(nil), fb.Buffer()...)

	v = v.Update(Input{ToggleOverlay: true}, s, cfg.TimeStep)
	if !v.ShowOverlay {
		t.Fatal("overlay toggle ignored")
	}
	s.Render(fb, r, v, 0)

	changed := 0
	for i, p := range fb.Buffer() {
		if p != plain[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Error("overlay drew nothing")
	}
}

func TestOverlayMarksClippedBounds(t *testing.T) {
	cfg := starConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := render.NewRenderer(1)

	count := func(c render.Color) int {
		n := 0
		for _, p := range fb.Buffer() {
			if p == c.Hex() {
				n++
			}
		}
		return n
	}

	tests := []struct {
		name    string
		pans    int
		inside  bool
		clipped bool
	}{
		{"centered", 0, true, false},
		{"half off screen", 10, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(cfg).Update(Input{ToggleOverlay: true}, s, cfg.TimeStep)
			for range tt.pans {
				v = v.Update(Input{Right: true}, s, cfg.TimeStep)
			}
			s.Render(fb, r, v, 0)

			if got := count(overlayBounds) > 0; got != tt.inside {
				t.Errorf("in-frame bounds drawn = %v, want %v", got, tt.inside)
			}
			if got := count(overlayClipped) > 0; got != tt.clipped {
				t.Errorf("clipped bounds drawn = %v, want %v", got, tt.clipped)
			}
		})
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	cfg := DefaultConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for range 30 {
		s.Update(cfg.TimeStep)
	}
	v := NewView(cfg)

	seq := render.NewFramebuffer(cfg.Width, cfg.Height)
	s.Render(seq, render.NewRenderer(1), v, 0.5)
	par := render.NewFramebuffer(cfg.Width, cfg.Height)
	s.Render(par, render.NewRenderer(8), v, 0.5)

	for i, p := range seq.Buffer() {
		if par.Buffer()[i] != p {
			t.Fatalf("pixel %d differs: %#06x vs %#06x", i, par.Buffer()[i], p)
		}
	}
}

func BenchmarkRenderDefault(b *testing.B) {
	cfg := DefaultConfig()
	s, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := render.NewRenderer(0)
	v := NewView(cfg)

	t := 0.0
	for b.Loop() {
		s.Update(cfg.TimeStep)
		s.Render(fb, r, v, t)
		t += cfg.TimeStep
	}
}
