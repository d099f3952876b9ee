// Package scene owns the orrery's bodies, the camera view and the per-frame
// update and draw passes that drive the render pipeline.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shaders"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid scene config")

// Config describes a scene and the frame it renders into.
type Config struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background HexColor   `yaml:"background"`
	FPS        int        `yaml:"fps"`
	TimeStep   float64    `yaml:"time_step"`
	Origin     [3]float64 `yaml:"origin"`

	Camera    CameraConfig    `yaml:"camera"`
	RingStyle RingStyleConfig `yaml:"ring_style"`

	Planets []PlanetConfig `yaml:"planets"`
	Moons   []MoonConfig   `yaml:"moons"`
	Rings   []RingConfig   `yaml:"rings"`
}

// CameraConfig tunes the interactive view.
type CameraConfig struct {
	PanStep   float64 `yaml:"pan_step"`
	ZoomStep  float64 `yaml:"zoom_step"`
	MinZoom   float64 `yaml:"min_zoom"`
	Smoothing float64 `yaml:"smoothing"` // spring angular frequency; 0 disables easing
}

// RingStyleConfig sets how ring meshes are posed relative to their planet.
type RingStyleConfig struct {
	TiltDegrees float64 `yaml:"tilt_degrees"`
	Scale       float64 `yaml:"scale"` // multiplied by the planet scale
	Spin        float64 `yaml:"spin"`  // radians per second of shader time
}

// PlanetConfig describes one body.
type PlanetConfig struct {
	Name          string       `yaml:"name"`
	Kind          shaders.Kind `yaml:"kind"`
	Position      [3]float64   `yaml:"position"`
	Scale         float64      `yaml:"scale"`
	RotationSpeed float64      `yaml:"rotation_speed"`
	OrbitalSpeed  float64      `yaml:"orbital_speed"`
	OrbitalRadius float64      `yaml:"orbital_radius"`
	Segments      int          `yaml:"segments"`
}

// MoonConfig describes a moon orbiting the planet at index Parent.
type MoonConfig struct {
	Parent   int      `yaml:"parent"`
	Radius   float64  `yaml:"radius"`
	Speed    float64  `yaml:"speed"`
	Scale    float64  `yaml:"scale"`
	Segments int      `yaml:"segments"`
	Shaded   bool     `yaml:"shaded"`
	Color    HexColor `yaml:"color"` // used when not shaded
}

// RingConfig describes one annulus attached to the planet at index Planet.
type RingConfig struct {
	Planet   int      `yaml:"planet"`
	Inner    float64  `yaml:"inner"`
	Outer    float64  `yaml:"outer"`
	Segments int      `yaml:"segments"`
	Shaded   bool     `yaml:"shaded"`
	Color    HexColor `yaml:"color"` // used when not shaded
}

// HexColor is a packed 0xRRGGBB color written in YAML as "0xRRGGBB",
// "#RRGGBB" or a plain decimal integer. Bare numbers with a leading zero
// are rejected rather than read as octal.
type HexColor uint32

// UnmarshalYAML implements yaml.Unmarshaler for HexColor.
func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	case len(s) > 1 && s[0] == '0':
		return fmt.Errorf("invalid color %q: leading zero needs a 0x or # prefix", value.Value)
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", value.Value, err)
	}
	if v > 0xFFFFFF {
		return fmt.Errorf("color %q exceeds 24 bits", value.Value)
	}
	*c = HexColor(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler for HexColor.
func (c HexColor) MarshalYAML() (any, error) {
	return fmt.Sprintf("0x%06X", uint32(c)), nil
}

// DefaultConfig returns the built-in scene.
func DefaultConfig() Config {
	cfg, err := ParseConfig(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default scene: %v", err))
	}
	return cfg
}

// LoadConfig reads and validates a YAML scene file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading scene file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML scene, fills defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing scene: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) applyDefaults() {
	if c.Width == 0 {
		c.Width = 800
	}
	if c.Height == 0 {
		c.Height = 600
	}
	if c.FPS == 0 {
		c.FPS = 60
	}
	if c.TimeStep == 0 {
		c.TimeStep = 0.016
	}
	if c.Camera.PanStep == 0 {
		c.Camera.PanStep = 10
	}
	if c.Camera.ZoomStep == 0 {
		c.Camera.ZoomStep = 0.05
	}
	if c.Camera.MinZoom == 0 {
		c.Camera.MinZoom = 0.1
	}
	if c.RingStyle == (RingStyleConfig{}) {
		c.RingStyle = RingStyleConfig{TiltDegrees: 75, Spin: 0.2}
	}
	if c.RingStyle.Scale == 0 {
		c.RingStyle.Scale = 0.012
	}
}

// Validate checks the invariants the scene relies on. Every error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("frame size %dx%d must be positive", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		bad("fps %d must be positive", c.FPS)
	}
	if c.TimeStep <= 0 {
		bad("time_step %v must be positive", c.TimeStep)
	}
	if c.Camera.MinZoom <= 0 {
		bad("camera.min_zoom %v must be positive", c.Camera.MinZoom)
	}
	if c.Camera.Smoothing < 0 {
		bad("camera.smoothing %v must not be negative", c.Camera.Smoothing)
	}
	if len(c.Planets) == 0 {
		bad("at least one planet is required")
	}

	for i, p := range c.Planets {
		if !p.Kind.IsPlanet() {
			bad("planets[%d]: kind %v is not a planet kind", i, p.Kind)
		}
		if p.Scale <= 0 {
			bad("planets[%d]: scale %v must be positive", i, p.Scale)
		}
		if p.OrbitalRadius < 0 {
			bad("planets[%d]: orbital_radius %v must not be negative", i, p.OrbitalRadius)
		}
		if p.Segments < 0 {
			bad("planets[%d]: segments %d must not be negative", i, p.Segments)
		}
	}

	for i, m := range c.Moons {
		if m.Parent < 0 || m.Parent >= len(c.Planets) {
			bad("moons[%d]: parent %d out of range [0,%d)", i, m.Parent, len(c.Planets))
		}
		if m.Radius < 0 {
			bad("moons[%d]: radius %v must not be negative", i, m.Radius)
		}
		if m.Scale <= 0 {
			bad("moons[%d]: scale %v must be positive", i, m.Scale)
		}
		if m.Segments < 0 {
			bad("moons[%d]: segments %d must not be negative", i, m.Segments)
		}
	}

	for i, r := range c.Rings {
		if r.Planet < 0 || r.Planet >= len(c.Planets) {
			bad("rings[%d]: planet %d out of range [0,%d)", i, r.Planet, len(c.Planets))
		}
		if r.Inner < 0 || r.Outer <= r.Inner {
			bad("rings[%d]: need 0 <= inner < outer, got %v and %v", i, r.Inner, r.Outer)
		}
		if r.Segments <= 0 {
			bad("rings[%d]: segments %d must be positive", i, r.Segments)
		}
	}

	return errors.Join(errs...)
}

// OriginVec returns the origin offset as a vector.
func (c Config) OriginVec() math3d.Vec3 {
	return vec(c.Origin)
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
