package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Every shader below layers trigonometric patterns of uv (or position) and
// time. All are pure: identical inputs give identical colors. Channels go
// through render.ClampChannel, so intermediate values outside [0,255] saturate.

var ch = render.ClampChannel

// StarShader draws a hot core fading toward the limb with plasma turbulence,
// flares and a pulsing corona.
func StarShader(_, _ math3d.Vec3, uv math3d.Vec2, t float64) render.Color {
	dist := (uv.X-0.5)*(uv.X-0.5) + (uv.Y-0.5)*(uv.Y-0.5)
	core := 1 - math.Min(dist*4, 1)

	turbulence := math.Abs(math.Sin(uv.X*10+t*2) * math.Cos(uv.Y*8+t*1.5) * math.Sin(t*3))
	flare := math.Abs(math.Sin(uv.X*15+t*4) + math.Cos(uv.Y*12+t*3))
	corona := math.Sqrt(1-dist) * math.Abs(math.Sin(t*2+uv.X*20))

	return render.RGB(
		ch(255*(0.9+0.1*core+0.2*flare)),
		ch(255*(0.6*core+0.3*turbulence+0.1*corona)),
		ch(100*(0.2*core+0.5*turbulence)),
	)
}

// RockyShader draws continents and oceans under moving clouds with polar ice
// caps. Priority: ice cap, then cloud (over land only), then land, then ocean.
func RockyShader(_, _ math3d.Vec3, uv math3d.Vec2, t float64) render.Color {
	continent := math.Abs(math.Sin(uv.X*8) * math.Cos(uv.Y*6))
	oceanDepth := (math.Sin(uv.X*15)+math.Cos(uv.Y*12))*0.5 + 0.5
	clouds := math.Abs(math.Sin(uv.X*20+t*0.5) * math.Cos(uv.Y*18+t*0.7))
	polar := math.Abs(uv.Y-0.5) * 2

	switch {
	case polar > 0.8:
		return render.RGB(240, 248, 255)
	case continent > 0.3:
		if clouds > 0.6 {
			return render.RGB(220, 220, 220)
		}
		return render.RGB(ch(120+60*continent), ch(80+40*continent), 40)
	default:
		return render.RGB(30, 60, ch(100+155*oceanDepth))
	}
}

// GasGiantShader draws latitude bands with storms, turbulence and a great
// spot centered at uv (0.7, 0.4).
func GasGiantShader(_, _ math3d.Vec3, uv math3d.Vec2, t float64) render.Color {
	band := math.Abs(math.Sin(uv.Y * 12))
	storms := math.Abs(math.Sin(uv.X*25+t) * math.Cos(uv.Y*15))
	turbulence := (math.Sin(uv.X*30+t*2)+math.Cos(uv.Y*20+t*1.5))*0.5 + 0.5

	if math.Hypot(uv.X-0.7, uv.Y-0.4) < 0.15 {
		return render.RGB(200, 100, 50)
	}

	white := 100 * storms
	return render.RGB(
		ch(200*band+white+50*turbulence),
		ch(150*band+white*0.7+30*turbulence),
		ch(80+white*0.3+20*turbulence),
	)
}

// IceShader draws crystalline frost with cracks that reveal a glowing blue
// subsurface ocean.
func IceShader(_, _ math3d.Vec3, uv math3d.Vec2, t float64) render.Color {
	crystal := math.Abs(math.Sin(uv.X*20) * math.Cos(uv.Y*15))
	cracks := math.Abs(math.Sin(uv.X*40) + math.Cos(uv.Y*35))
	aurora := math.Abs(math.Sin(uv.Y*8+t*2) * math.Cos(uv.X*6+t*1.5))
	frost := (math.Sin(uv.X*12)+math.Cos(uv.Y*10))*0.5 + 0.5

	if cracks > 0.8 {
		return render.RGB(100, 150, ch(150+50*aurora))
	}

	bright := ch(200 + 55*crystal*frost)
	return render.RGB(bright, bright, ch(220+35*aurora))
}

// VolcanicShader draws dark rock crossed by lava flows, ash clouds and
// eruptions. Priority: eruption, then lava flow, then ash, then rock.
func VolcanicShader(_, _ math3d.Vec3, uv math3d.Vec2, t float64) render.Color {
	lava := math.Abs(math.Sin(uv.X*12+t*3) * math.Cos(uv.Y*8+t*2))
	rock := math.Abs(math.Sin(uv.X*25) * math.Cos(uv.Y*20))
	eruption := math.Abs(math.Sin(uv.X*15+t*5) + math.Cos(uv.Y*10+t*4))
	ash := math.Abs(math.Sin(uv.X*30+t) * math.Cos(uv.Y*25+t*0.8))

	switch {
	case eruption > 0.7:
		return render.RGB(ch(255*eruption), ch(200*eruption), 50)
	case lava > 0.6:
		return render.RGB(200, 80, 20)
	case ash > 0.5:
		level := ch(80 + 40*ash)
		return render.RGB(level, level, level)
	default:
		return render.RGB(ch(60+40*rock), ch(40+30*rock), 20)
	}
}

// RingedShader draws pale bands with wind streams, methane haze and a polar
// storm centered at uv (0.5, 0.8).
func RingedShader(_, _ math3d.Vec3, uv math3d.Vec2, t float64) render.Color {
	band := math.Abs(math.Sin(uv.Y * 15))
	wind := math.Abs(math.Sin(uv.X*20+t*0.5) * math.Cos(uv.Y*8))
	haze := (math.Cos(uv.Y*10) + 1) * 0.5

	if math.Hypot(uv.X-0.5, uv.Y-0.8) < 0.1 {
		return render.RGB(100, 150, 200)
	}

	return render.RGB(
		ch(200*band+30*haze),
		ch(150*band+50*wind),
		ch(120*haze+20*wind),
	)
}

// MoonShader draws gray regolith with dark craters.
func MoonShader(_, _ math3d.Vec3, uv math3d.Vec2, _ float64) render.Color {
	crater := math.Abs(math.Sin(uv.X*30) * math.Cos(uv.Y*25))
	if crater > 0.7 {
		return render.RGB(80, 80, 90)
	}
	b := 150 + 50*crater
	return render.RGB(ch(b), ch(b), ch(b-10))
}

// RingShader tints ring particles icy gray-blue. It reads the interpolated
// position rather than uv, so the pattern follows the ring as it turns.
func RingShader(pos, _ math3d.Vec3, _ math3d.Vec2, t float64) render.Color {
	particles := math.Abs(math.Sin(pos.X*100+t*0.1) * math.Cos(pos.Z*80))
	ice := ch(150 + 50*particles)
	return render.RGB(ice, ice-20, ice-10)
}
