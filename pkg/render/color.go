package render

// Color is an 8-bit-per-channel RGB value. There is no alpha channel.
type Color struct {
	R, G, B uint8
}

// Colors for convenience
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
	ColorRed   = Color{255, 0, 0}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// ColorFromHex unpacks a 0xRRGGBB value. Bits above 24 are ignored.
func ColorFromHex(h uint32) Color {
	return Color{uint8(h >> 16), uint8(h >> 8), uint8(h)}
}

// Hex packs the color as R<<16 | G<<8 | B.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBA implements image/color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// ClampChannel converts a shader intermediate into a channel value. It
// saturates into [0, 255] and then truncates toward zero. NaN maps to 0.
func ClampChannel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
