package libretro

import (
	"testing"

	"github.com/user-none/enes/emu"
)

func TestPackPixel(t *testing.T) {
	tests := []struct {
		c    emu.Color
		want uint32
	}{
		{emu.Color{}, 0},
		{emu.Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}, 0x12345678},
		{emu.Color{R: 0xFF, A: 0xFF}, 0xFF0000FF},
		{emu.Color{G: 0xFF, A: 0xFF}, 0x00FF00FF},
		{emu.Color{B: 0xFF, A: 0xFF}, 0x0000FFFF},
	}
	for _, tt := range tests {
		got := PackPixel(tt.c)
		if got != tt.want {
			t.Errorf("PackPixel(%+v) = %#08x, want %#08x", tt.c, got, tt.want)
		}
		if back := UnpackPixel(got); back != tt.c {
			t.Errorf("UnpackPixel(%#08x) = %+v, want %+v", got, back, tt.c)
		}
	}
}

func TestFrameConstants(t *testing.T) {
	if FrameWidth != 256 || FrameHeight != 240 {
		t.Errorf("frame = %dx%d, want 256x240", FrameWidth, FrameHeight)
	}
	if FramePitch != 1024 {
		t.Errorf("FramePitch = %d, want 1024", FramePitch)
	}
}

func TestPixelFormatString(t *testing.T) {
	if PixelFormatXRGB8888.String() != "XRGB8888" {
		t.Errorf("String = %q", PixelFormatXRGB8888.String())
	}
	if PixelFormat(9).String() != "unknown" {
		t.Errorf("String = %q", PixelFormat(9).String())
	}
}
