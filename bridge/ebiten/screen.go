//go:build !libretro && !ios

// Package ebiten presents libretro frames in an Ebiten window.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/enes/libretro"
)

// Screen holds the most recent frame at native resolution and draws it
// scaled to fit the window.
type Screen struct {
	width, height int
	rgba          []byte
	offscreen     *ebiten.Image
	drawOpts      ebiten.DrawImageOptions
}

// NewScreen creates a screen for frames of the given size.
func NewScreen(width, height int) *Screen {
	return &Screen{
		width:  width,
		height: height,
		rgba:   make([]byte, width*height*4),
	}
}

// Present converts a packed frame and uploads it. Frames of another
// size are ignored.
func (s *Screen) Present(frame []uint32, width, height int) {
	if width != s.width || height != s.height || len(frame) < width*height {
		return
	}
	UnpackFrame(s.rgba, frame[:width*height])
	if s.offscreen == nil {
		s.offscreen = ebiten.NewImage(s.width, s.height)
	}
	s.offscreen.WritePixels(s.rgba)
}

// Draw renders the last presented frame centred in dst, scaled by the
// largest factor that fits.
func (s *Screen) Draw(dst *ebiten.Image) {
	if s.offscreen == nil {
		return
	}
	b := dst.Bounds()
	scale, offX, offY := Fit(s.width, s.height, b.Dx(), b.Dy())

	s.drawOpts = ebiten.DrawImageOptions{}
	s.drawOpts.GeoM.Scale(scale, scale)
	s.drawOpts.GeoM.Translate(offX, offY)
	s.drawOpts.Filter = ebiten.FilterNearest
	dst.DrawImage(s.offscreen, &s.drawOpts)
}

// UnpackFrame writes packed pixels into dst as RGBA bytes.
func UnpackFrame(dst []byte, frame []uint32) {
	for i, p := range frame {
		c := libretro.UnpackPixel(p)
		o := i * 4
		dst[o+0] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = 0xFF
	}
}

// Fit returns the scale and offset that centre a srcW x srcH image inside
// dstW x dstH while keeping its aspect ratio.
func Fit(srcW, srcH, dstW, dstH int) (scale, offX, offY float64) {
	if srcW <= 0 || srcH <= 0 {
		return 1, 0, 0
	}
	scale = float64(dstW) / float64(srcW)
	if sy := float64(dstH) / float64(srcH); sy < scale {
		scale = sy
	}
	offX = (float64(dstW) - float64(srcW)*scale) / 2
	offY = (float64(dstH) - float64(srcH)*scale) / 2
	return scale, offX, offY
}
