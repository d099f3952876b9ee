package scene

import (
	"log/slog"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Input is the key state for one frame.
type Input struct {
	Left, Right, Up, Down bool
	ZoomIn, ZoomOut       bool
	ToggleAuto            bool
	ToggleOverlay         bool
	Quit                  bool

	// Select is the 1-based planet key held this frame, 0 for none.
	Select int
}

// View is the camera and display state threaded through the frame loop.
// Update returns a new View; a View is never modified in place.
type View struct {
	// Camera and Zoom are the targets set by input.
	Camera math3d.Vec3
	Zoom   float64

	// Eye and Scale are the values used for drawing. They follow Camera and
	// Zoom through a critically damped spring, or match them exactly when
	// smoothing is off.
	Eye   math3d.Vec3
	Scale float64

	Focus       int // index of the last focused planet
	AutoRotate  bool
	ShowOverlay bool

	cam      CameraConfig
	origin   math3d.Vec3
	eyeVel   math3d.Vec3
	scaleVel float64
	spring   harmonica.Spring
	springDT float64

	prevAuto    bool
	prevOverlay bool
}

// NewView returns the initial view: the camera at the origin offset, zoom 1,
// focus on the first planet and auto-rotation on.
func NewView(cfg Config) View {
	origin := cfg.OriginVec()
	return View{
		Camera:     origin,
		Zoom:       1,
		Eye:        origin,
		Scale:      1,
		AutoRotate: true,
		cam:        cfg.Camera,
		origin:     origin,
	}
}

// ShouldAdvance reports whether body kinematics advance this frame.
func (v View) ShouldAdvance() bool {
	return v.AutoRotate
}

// Update applies one frame of input. dt is the frame time used to step the
// easing springs.
func (v View) Update(in Input, s *Scene, dt float64) View {
	next := v

	if in.Right {
		next.Camera.X -= v.cam.PanStep
	}
	if in.Left {
		next.Camera.X += v.cam.PanStep
	}
	if in.Up {
		next.Camera.Y += v.cam.PanStep
	}
	if in.Down {
		next.Camera.Y -= v.cam.PanStep
	}

	if in.ZoomIn {
		next.Zoom += v.cam.ZoomStep
	}
	if in.ZoomOut {
		next.Zoom = max(next.Zoom-v.cam.ZoomStep, v.cam.MinZoom)
	}

	if s != nil {
		if p := s.Planet(in.Select); p != nil {
			next.Camera = v.origin.Sub(p.Position)
			if v.Focus != in.Select-1 {
				render.Logger().Info("focusing on planet",
					slog.Int("index", in.Select),
					slog.String("name", p.Name),
					slog.String("kind", p.Kind.Label()),
				)
			}
			next.Focus = in.Select - 1
		}
	}

	// Toggles fire on the press edge so a held key flips once.
	if in.ToggleAuto && !v.prevAuto {
		next.AutoRotate = !v.AutoRotate
	}
	if in.ToggleOverlay && !v.prevOverlay {
		next.ShowOverlay = !v.ShowOverlay
	}
	next.prevAuto = in.ToggleAuto
	next.prevOverlay = in.ToggleOverlay

	next.ease(dt)
	return next
}

// ease moves Eye and Scale toward Camera and Zoom.
func (v *View) ease(dt float64) {
	if v.cam.Smoothing <= 0 || dt <= 0 {
		v.Eye, v.Scale = v.Camera, v.Zoom
		v.eyeVel, v.scaleVel = math3d.Zero3(), 0
		return
	}
	if v.springDT != dt {
		v.spring = harmonica.NewSpring(dt, v.cam.Smoothing, 1.0)
		v.springDT = dt
	}
	v.Eye.X, v.eyeVel.X = v.spring.Update(v.Eye.X, v.eyeVel.X, v.Camera.X)
	v.Eye.Y, v.eyeVel.Y = v.spring.Update(v.Eye.Y, v.eyeVel.Y, v.Camera.Y)
	v.Eye.Z, v.eyeVel.Z = v.spring.Update(v.Eye.Z, v.eyeVel.Z, v.Camera.Z)
	v.Scale, v.scaleVel = v.spring.Update(v.Scale, v.scaleVel, v.Zoom)
	v.Scale = max(v.Scale, v.cam.MinZoom)
}

// Settle snaps the drawn camera onto its targets.
func (v View) Settle() View {
	v.Eye, v.Scale = v.Camera, v.Zoom
	v.eyeVel, v.scaleVel = math3d.Zero3(), 0
	return v
}
