package render

import (
	"image/color"
	"math"
	"testing"
)

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want uint32
	}{
		{RGB(0, 0, 0), 0x000000},
		{RGB(255, 0, 0), 0xFF0000},
		{RGB(0, 255, 0), 0x00FF00},
		{RGB(0, 0, 0x11), 0x000011},
		{RGB(0xAA, 0xAA, 0xA0), 0xAAAAA0},
	}
	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.want {
			t.Errorf("%v.Hex() = %#06x, want %#06x", tc.c, got, tc.want)
		}
		if got := ColorFromHex(tc.want); got != tc.c {
			t.Errorf("ColorFromHex(%#06x) = %v, want %v", tc.want, got, tc.c)
		}
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{0.99, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tc := range tests {
		if got := ClampChannel(tc.in); got != tc.want {
			t.Errorf("ClampChannel(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestColorImplementsColorModel(t *testing.T) {
	var c color.Color = RGB(0x12, 0x34, 0x56)
	got := color.RGBAModel.Convert(c).(color.RGBA)
	want := color.RGBA{0x12, 0x34, 0x56, 0xff}
	if got != want {
		t.Errorf("RGBA conversion = %v, want %v", got, want)
	}
}
