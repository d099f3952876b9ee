// Package celestial models the orbital kinematics of planets and moons.
package celestial

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/shaders"
)

// Planet is a body that spins about its Y axis and, when OrbitalRadius is
// positive, circles the scene origin in the XZ plane.
type Planet struct {
	Name string
	Mesh *models.Mesh
	Kind shaders.Kind

	Position      math3d.Vec3
	Scale         float64
	RotationSpeed float64 // radians per second
	OrbitalSpeed  float64 // radians per second
	OrbitalRadius float64 // zero pins the body at Position

	Rotation     float64
	OrbitalAngle float64
}

// PlanetConfig holds the construction parameters of a Planet.
type PlanetConfig struct {
	Name          string
	Kind          shaders.Kind
	Position      math3d.Vec3
	Scale         float64
	RotationSpeed float64
	OrbitalSpeed  float64
	OrbitalRadius float64
	Segments      int // sphere tessellation; zero selects models.PlanetSegments
}

// NewPlanet builds a planet around a unit sphere. Both angles start at zero.
func NewPlanet(cfg PlanetConfig) *Planet {
	seg := cfg.Segments
	if seg == 0 {
		seg = models.PlanetSegments
	}
	return &Planet{
		Name:          cfg.Name,
		Mesh:          models.NewSphere(1, seg, seg),
		Kind:          cfg.Kind,
		Position:      cfg.Position,
		Scale:         cfg.Scale,
		RotationSpeed: cfg.RotationSpeed,
		OrbitalSpeed:  cfg.OrbitalSpeed,
		OrbitalRadius: cfg.OrbitalRadius,
	}
}

// Update advances both angles by dt seconds. When the planet orbits, X and Z
// are recomputed from the new angle; Y is never touched.
func (p *Planet) Update(dt float64) {
	p.Rotation += p.RotationSpeed * dt
	p.OrbitalAngle += p.OrbitalSpeed * dt

	if p.OrbitalRadius > 0 {
		sin, cos := math.Sincos(p.OrbitalAngle)
		p.Position.X = p.OrbitalRadius * cos
		p.Position.Z = p.OrbitalRadius * sin
	}
}

// OrbitPath samples the planet's orbit at n evenly spaced angles, keeping
// the current Y. It returns nil for a pinned body.
func (p *Planet) OrbitPath(n int) []math3d.Vec3 {
	if p.OrbitalRadius <= 0 || n <= 0 {
		return nil
	}
	pts := make([]math3d.Vec3, n)
	for i := range pts {
		sin, cos := math.Sincos(float64(i) / float64(n) * 2 * math.Pi)
		pts[i] = math3d.V3(p.OrbitalRadius*cos, p.Position.Y, p.OrbitalRadius*sin)
	}
	return pts
}

// Moon circles whatever position its parent planet had at the last Update.
// Parent is an index into the owning scene's planet list.
type Moon struct {
	Mesh   *models.Mesh
	Kind   shaders.Kind
	Parent int

	Center        math3d.Vec3
	OrbitalRadius float64
	OrbitalSpeed  float64
	Angle         float64
	Scale         float64
}

// NewMoon builds a moon around a unit sphere. segments of zero selects
// models.MoonSegments.
func NewMoon(parent int, radius, speed, scale float64, segments int) *Moon {
	if segments == 0 {
		segments = models.MoonSegments
	}
	return &Moon{
		Mesh:          models.NewSphere(1, segments, segments),
		Kind:          shaders.Moon,
		Parent:        parent,
		OrbitalRadius: radius,
		OrbitalSpeed:  speed,
		Scale:         scale,
	}
}

// Update recenters the orbit on parentPosition, then advances the angle.
func (m *Moon) Update(dt float64, parentPosition math3d.Vec3) {
	m.Center = parentPosition
	m.Angle += m.OrbitalSpeed * dt
}

// Position returns the moon's current location on its orbit.
func (m *Moon) Position() math3d.Vec3 {
	sin, cos := math.Sincos(m.Angle)
	return math3d.V3(
		m.Center.X+m.OrbitalRadius*cos,
		m.Center.Y,
		m.Center.Z+m.OrbitalRadius*sin,
	)
}
