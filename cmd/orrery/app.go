package main

import (
	"fmt"

	"github.com/taigrr/orrery/pkg/display"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// app owns one running scene and produces a frame per step.
type app struct {
	cfg   scene.Config
	scene *scene.Scene
	view  scene.View
	fb    *render.Framebuffer
	r     *render.Renderer

	frames int
	// clock returns the shader time in seconds. It defaults to simulated
	// time, frames times the time step.
	clock func() float64
}

func newApp(cfg scene.Config, workers int) (*app, error) {
	s, err := scene.New(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:   cfg,
		scene: s,
		view:  scene.NewView(cfg),
		fb:    render.NewFramebuffer(cfg.Width, cfg.Height),
		r:     render.NewRenderer(workers),
	}
	a.clock = func() float64 { return float64(a.frames) * cfg.TimeStep }
	return a, nil
}

// step runs one frame: input, kinematics, then drawing.
func (a *app) step(in scene.Input) (*render.Framebuffer, bool) {
	if in.Quit {
		return a.fb, true
	}
	dt := a.cfg.TimeStep

	a.view = a.view.Update(in, a.scene, dt)
	if a.view.ShouldAdvance() {
		a.scene.Update(dt)
	}

	a.r.ResetStats()
	a.scene.Render(a.fb, a.r, a.view, a.clock())
	a.r.LogStats()

	a.frames++
	return a.fb, false
}

// stepKeys adapts step to display.StepFunc.
func (a *app) stepKeys(k display.Keys) (*render.Framebuffer, bool) {
	return a.step(k.Input())
}

// status summarizes the view for frontend HUDs.
func (a *app) status() display.Status {
	st := display.Status{
		Zoom:    a.view.Zoom,
		Paused:  !a.view.AutoRotate,
		Overlay: a.view.ShowOverlay,
	}
	if p := a.scene.Planet(a.view.Focus + 1); p != nil {
		st.Focus = fmt.Sprintf("%d %s: %s", a.view.Focus+1, p.Name, p.Kind.Label())
	}
	return st
}
