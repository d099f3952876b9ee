package render

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"
)

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.SetBackgroundColor(0x000011)
	fb.SetCurrentColor(0xFFFFFF)
	fb.Point(3, 3, 1)
	fb.Clear()

	for i, p := range fb.Pixels {
		if p != 0x000011 {
			t.Fatalf("pixel %d = %#06x after Clear, want 0x000011", i, p)
		}
		if fb.Depth[i] != FarDepth {
			t.Fatalf("depth %d = %v after Clear, want FarDepth", i, fb.Depth[i])
		}
	}
	if len(fb.Buffer()) != 7*5 {
		t.Errorf("Buffer() length = %d, want 35", len(fb.Buffer()))
	}
}

func TestFramebufferDepthTest(t *testing.T) {
	tests := []struct {
		name      string
		first     float64
		second    float64
		wantColor uint32
		wantDepth float64
	}{
		{"near then far", 1, 2, 0xFF0000, 1},
		{"far then near", 2, 1, 0x00FF00, 1},
		{"equal depth last writer wins", 1, 1, 0x00FF00, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(4, 4)
			fb.SetCurrentColor(0xFF0000)
			fb.Point(2, 2, tc.first)
			fb.SetCurrentColor(0x00FF00)
			fb.Point(2, 2, tc.second)

			if got := fb.GetPixel(2, 2); got != tc.wantColor {
				t.Errorf("pixel = %#06x, want %#06x", got, tc.wantColor)
			}
			if got := fb.GetDepth(2, 2); got != tc.wantDepth {
				t.Errorf("depth = %v, want %v", got, tc.wantDepth)
			}
		})
	}
}

func TestFramebufferPointBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetCurrentColor(0xFFFFFF)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		if fb.Point(p[0], p[1], 0) {
			t.Errorf("Point(%d, %d) reported a write out of bounds", p[0], p[1])
		}
	}
	for i, px := range fb.Pixels {
		if px != 0 {
			t.Fatalf("pixel %d modified by out-of-bounds Point", i)
		}
	}
	if got := fb.GetDepth(-1, 0); got != FarDepth {
		t.Errorf("GetDepth out of bounds = %v, want FarDepth", got)
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(0, 0, 9, 9, 0xABCDEF)
	for i := range 10 {
		if got := fb.GetPixel(i, i); got != 0xABCDEF {
			t.Errorf("pixel (%d,%d) = %#06x, want 0xabcdef", i, i, got)
		}
	}
	// Lines leave depth untouched.
	if fb.GetDepth(5, 5) != FarDepth {
		t.Error("DrawLine modified the depth buffer")
	}
	// Partially off-screen lines are clipped per pixel.
	fb.DrawLine(-5, 2, 20, 2, 0x123456)
	if got := fb.GetPixel(0, 2); got != 0x123456 {
		t.Errorf("clipped line start = %#06x", got)
	}
}

func TestFramebufferPNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetBackgroundColor(0x000011)
	fb.Clear()
	fb.SetPixel(1, 1, 0xFF8000)

	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 0xFF || g>>8 != 0x80 || b>>8 != 0 || a>>8 != 0xFF {
		t.Errorf("pixel (1,1) = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
	_, _, b, _ = img.At(0, 0).RGBA()
	if b>>8 != 0x11 {
		t.Errorf("background blue = %#x, want 0x11", b>>8)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func BenchmarkFramebufferClear(b *testing.B) {
	fb := NewFramebuffer(800, 600)
	for b.Loop() {
		fb.Clear()
	}
}
