package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw scales the framebuffer onto area with nearest-neighbor sampling and
// writes it as half-block cells. Each cell covers two framebuffer rows: the
// upper half (▀) takes the foreground color and the lower half the background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := area.Dx()
	rows := area.Dy() * 2
	if cols <= 0 || rows <= 0 || fb.Width == 0 || fb.Height == 0 {
		return
	}

	for row := range area.Dy() {
		topY := (row * 2) * fb.Height / rows
		botY := (row*2 + 1) * fb.Height / rows

		for col := range cols {
			x := col * fb.Width / cols

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: packedToColor(fb.GetPixel(x, topY)),
					Bg: packedToColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}

// packedToColor converts a packed 0xRRGGBB pixel to color.Color.
func packedToColor(p uint32) color.Color {
	return color.RGBA{uint8(p >> 16), uint8(p >> 8), uint8(p), 0xff}
}
