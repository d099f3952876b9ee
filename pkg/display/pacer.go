package display

import "time"

// Pacer holds a frame loop near a target rate by sleeping out whatever is
// left of each frame's budget, and measures the rate actually achieved.
type Pacer struct {
	frame time.Duration
	now   func() time.Time
	sleep func(time.Duration)

	start     time.Time
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewPacer returns a pacer for fps frames per second. fps <= 0 disables the
// sleep.
func NewPacer(fps int) *Pacer {
	var frame time.Duration
	if fps > 0 {
		frame = time.Second / time.Duration(fps)
	}
	now := time.Now()
	return &Pacer{
		frame:   frame,
		now:     time.Now,
		sleep:   time.Sleep,
		start:   now,
		fpsTime: now,
	}
}

// Begin marks the start of a frame.
func (p *Pacer) Begin() {
	p.start = p.now()
}

// Wait sleeps until the frame budget since Begin is spent and updates the
// measured rate once per second.
func (p *Pacer) Wait() {
	if p.frame > 0 {
		if left := p.frame - p.now().Sub(p.start); left > 0 {
			p.sleep(left)
		}
	}

	p.fpsFrames++
	now := p.now()
	if elapsed := now.Sub(p.fpsTime); elapsed >= time.Second {
		p.fps = float64(p.fpsFrames) / elapsed.Seconds()
		p.fpsFrames = 0
		p.fpsTime = now
	}
}

// FPS returns the rate measured over the last full second.
func (p *Pacer) FPS() float64 {
	return p.fps
}
