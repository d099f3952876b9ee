package scene

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/taigrr/orrery/pkg/celestial"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

// orbitSamples is the number of points in an overlay orbit path.
const orbitSamples = 96

// Overlay colors.
var (
	overlayBounds  = render.RGB(0x40, 0xA0, 0x40)
	overlayClipped = render.RGB(0xA0, 0x40, 0x40)
	overlayOrbit   = render.RGB(0x50, 0x50, 0x80)
	overlayFocus   = render.RGB(0xFF, 0xD0, 0x30)
)

// Ring is one annulus drawn around the planet at index Planet.
type Ring struct {
	Mesh   *models.Mesh
	Planet int
	Shaded bool
	Color  uint32
}

// moonStyle is how one moon is drawn.
type moonStyle struct {
	shaded bool
	color  uint32
}

// Scene owns every body. Moons and rings reference planets by index, so
// the planet slice must not be reordered after New.
type Scene struct {
	Config Config
	Origin math3d.Vec3

	Planets []*celestial.Planet
	Moons   []*celestial.Moon
	Rings   []Ring

	moonStyles []moonStyle
}

// New builds a scene from a validated config.
func New(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	s := &Scene{
		Config:     cfg,
		Origin:     cfg.OriginVec(),
		Planets:    make([]*celestial.Planet, 0, len(cfg.Planets)),
		Moons:      make([]*celestial.Moon, 0, len(cfg.Moons)),
		Rings:      make([]Ring, 0, len(cfg.Rings)),
		moonStyles: make([]moonStyle, 0, len(cfg.Moons)),
	}

	for _, pc := range cfg.Planets {
		s.Planets = append(s.Planets, celestial.NewPlanet(celestial.PlanetConfig{
			Name:          pc.Name,
			Kind:          pc.Kind,
			Position:      vec(pc.Position),
			Scale:         pc.Scale,
			RotationSpeed: pc.RotationSpeed,
			OrbitalSpeed:  pc.OrbitalSpeed,
			OrbitalRadius: pc.OrbitalRadius,
			Segments:      pc.Segments,
		}))
	}
	for _, mc := range cfg.Moons {
		s.Moons = append(s.Moons, celestial.NewMoon(mc.Parent, mc.Radius, mc.Speed, mc.Scale, mc.Segments))
		s.moonStyles = append(s.moonStyles, moonStyle{shaded: mc.Shaded, color: uint32(mc.Color)})
	}
	for _, rc := range cfg.Rings {
		s.Rings = append(s.Rings, Ring{
			Mesh:   models.NewRing(rc.Inner, rc.Outer, rc.Segments),
			Planet: rc.Planet,
			Shaded: rc.Shaded,
			Color:  uint32(rc.Color),
		})
	}

	render.Logger().Debug("scene built",
		slog.Int("planets", len(s.Planets)),
		slog.Int("moons", len(s.Moons)),
		slog.Int("rings", len(s.Rings)),
	)
	return s, nil
}

// Update advances every planet, then every moon around its parent's new
// position.
func (s *Scene) Update(dt float64) {
	for _, p := range s.Planets {
		p.Update(dt)
	}
	for _, m := range s.Moons {
		m.Update(dt, s.Planets[m.Parent].Position)
	}
}

// offset maps a scene position to the translation used for drawing.
func (s *Scene) offset(pos math3d.Vec3, view View) math3d.Vec3 {
	return pos.Add(view.Eye).Sub(s.Origin)
}

// Render clears fb and draws the whole scene. Each planet is followed by its
// rings; moons are drawn last. t is the shader time in seconds.
func (s *Scene) Render(fb *render.Framebuffer, r *render.Renderer, view View, t float64) {
	fb.SetBackgroundColor(uint32(s.Config.Background))
	fb.Clear()

	zoom := view.Scale
	tilt := s.Config.RingStyle.TiltDegrees * math.Pi / 180

	for i, p := range s.Planets {
		at := s.offset(p.Position, view)
		model := math3d.Model(at, p.Scale*zoom, math3d.V3(0, p.Rotation, 0))
		r.Draw(fb, p.Mesh, model, shaders.Lookup(p.Kind), t)

		for _, ring := range s.Rings {
			if ring.Planet != i {
				continue
			}
			rm := math3d.Model(at,
				zoom*p.Scale*s.Config.RingStyle.Scale,
				math3d.V3(tilt, t*s.Config.RingStyle.Spin, 0),
			)
			if ring.Shaded {
				r.Draw(fb, ring.Mesh, rm, shaders.Lookup(shaders.Ring), t)
			} else {
				fb.SetCurrentColor(ring.Color)
				r.Draw(fb, ring.Mesh, rm, nil, t)
			}
		}
	}

	for i, m := range s.Moons {
		model := math3d.Model(s.offset(m.Position(), view), m.Scale*zoom, math3d.Zero3())
		if st := s.moonStyles[i]; st.shaded {
			r.Draw(fb, m.Mesh, model, shaders.Lookup(m.Kind), t)
		} else {
			fb.SetCurrentColor(st.color)
			r.Draw(fb, m.Mesh, model, nil, t)
		}
	}

	if view.ShowOverlay {
		s.drawOverlay(fb, view)
	}
}

// drawOverlay outlines each planet's screen bounds and orbit path and marks
// the focused planet. Bounds that leave the frame are drawn in red.
func (s *Scene) drawOverlay(fb *render.Framebuffer, view View) {
	wf := render.NewWireframe(fb)
	vp := render.Viewport{Width: fb.Width, Height: fb.Height}
	zoom := view.Scale

	for i, p := range s.Planets {
		at := s.offset(p.Position, view)

		if path := p.OrbitPath(orbitSamples); path != nil {
			for j := range path {
				path[j] = s.offset(path[j], view)
			}
			wf.DrawPath(path, true, overlayOrbit)
		}

		model := math3d.Model(at, p.Scale*zoom, math3d.V3(0, p.Rotation, 0))
		lo, hi := p.Mesh.GetBounds()
		box := render.NewAABB(lo, hi).Transform(model)
		color := overlayBounds
		if !vp.ContainsAABB(box) {
			color = overlayClipped
		}
		wf.DrawBounds(box, color)

		if i == view.Focus {
			wf.DrawPoint(at, 4, overlayFocus)
		}
	}
}

// Planet returns the planet at a 1-based index, or nil.
func (s *Scene) Planet(n int) *celestial.Planet {
	if n < 1 || n > len(s.Planets) {
		return nil
	}
	return s.Planets[n-1]
}
