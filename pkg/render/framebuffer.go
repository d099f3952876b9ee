// Package render implements the orrery software pipeline: a packed-RGB
// framebuffer with a parallel depth buffer, the vertex stage, triangle
// assembly and barycentric rasterization, and the per-mesh draw driver.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
)

// FarDepth is the value every depth cell holds after Clear.
const FarDepth = math.MaxFloat64

// Framebuffer is a packed 0xRRGGBB color buffer plus a depth buffer of the
// same dimensions. The two are always cleared together.
type Framebuffer struct {
	Width      int
	Height     int
	Pixels     []uint32  // Row-major packed R<<16 | G<<8 | B
	Depth      []float64 // Row-major, smaller is nearer
	Background uint32

	current uint32
}

// NewFramebuffer creates a cleared framebuffer with a black background.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.Clear()
	return fb
}

// SetBackgroundColor sets the color used by Clear.
func (fb *Framebuffer) SetBackgroundColor(c uint32) {
	fb.Background = c
}

// SetCurrentColor sets the color written by Point.
func (fb *Framebuffer) SetCurrentColor(c uint32) {
	fb.current = c
}

// CurrentColor returns the color written by Point.
func (fb *Framebuffer) CurrentColor() uint32 {
	return fb.current
}

// Clear resets every pixel to the background color and every depth cell to
// FarDepth.
func (fb *Framebuffer) Clear() {
	fill(fb.Pixels, fb.Background)
	fill(fb.Depth, FarDepth)
}

// fill uses copy-doubling, which is considerably faster than a plain loop
// for large buffers.
func fill[T any](buf []T, v T) {
	if len(buf) == 0 {
		return
	}
	buf[0] = v
	for i := 1; i < len(buf); i *= 2 {
		copy(buf[i:], buf[:i])
	}
}

// Point writes the current color at (x, y) if the coordinates are in bounds
// and depth is not farther than the stored value. Equal depth overwrites, so
// the last writer wins ties.
func (fb *Framebuffer) Point(x, y int, depth float64) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	i := y*fb.Width + x
	if depth > fb.Depth[i] {
		return false
	}
	fb.Depth[i] = depth
	fb.Pixels[i] = fb.current
	return true
}

// SetPixel writes c at (x, y) without a depth test. Used for overlays.
func (fb *Framebuffer) SetPixel(x, y int, c uint32) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the packed color at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// GetDepth returns the stored depth at (x, y), or FarDepth if out of bounds.
func (fb *Framebuffer) GetDepth(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return FarDepth
	}
	return fb.Depth[y*fb.Width+x]
}

// Buffer returns the packed color buffer, exactly Width*Height entries in
// row-major order. Display collaborators present this slice as-is.
func (fb *Framebuffer) Buffer() []uint32 {
	return fb.Pixels
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// No depth test is performed.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the color buffer into dst as 8-bit RGBA, opaque. dst must
// hold at least 4*Width*Height bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i, p := range fb.Pixels {
		o := i * 4
		dst[o] = uint8(p >> 16)
		dst[o+1] = uint8(p >> 8)
		dst[o+2] = uint8(p)
		dst[o+3] = 0xff
	}
}

// EncodePNG writes the framebuffer as a PNG image.
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, fb.ToImage())
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
