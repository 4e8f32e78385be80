package cli

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"

	"github.com/user-none/enes/libretro"
)

// backdropROM builds an NROM image that sets the backdrop to palette
// entry $21 and spins.
func backdropROM() []byte {
	rom := make([]byte, 16+0x4000+0x2000)
	copy(rom, []byte{'N', 'E', 'S', 0x1A, 1, 1})
	prg := rom[16 : 16+0x4000]
	copy(prg, []byte{
		0x78,       // SEI
		0xA9, 0x3F, // LDA #$3F
		0x8D, 0x06, 0x20, // STA $2006
		0xA9, 0x00, // LDA #$00
		0x8D, 0x06, 0x20, // STA $2006
		0xA9, 0x21, // LDA #$21
		0x8D, 0x07, 0x20, // STA $2007
		0x4C, 0x10, 0xC0, // JMP $C010
	})
	for _, off := range []int{0x3FFA, 0x3FFC, 0x3FFE} {
		prg[off] = 0x00
		prg[off+1] = 0xC0
	}
	return rom
}

func newTestHeadless(t *testing.T, log io.Writer) *Headless {
	t.Helper()
	if log == nil {
		log = io.Discard
	}
	h := NewHeadless(zerolog.New(log))
	t.Cleanup(h.Close)
	if err := h.Load("backdrop.nes", backdropROM()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return h
}

func TestHeadless_Run(t *testing.T) {
	h := newTestHeadless(t, nil)
	if h.Image() != nil || h.CRC32() != 0 {
		t.Error("frame present before Run")
	}

	h.Run(3)
	if h.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", h.Frames())
	}
	img := h.Image()
	if img.Bounds().Dx() != libretro.FrameWidth || img.Bounds().Dy() != libretro.FrameHeight {
		t.Fatalf("image = %v", img.Bounds())
	}
	if got := img.Pix[:4]; !bytes.Equal(got, []byte{0x64, 0xB0, 0xFF, 0xFF}) {
		t.Errorf("pixel(0,0) = % x, want 64 b0 ff ff", got)
	}

	sum := h.CRC32()
	if sum == 0 {
		t.Fatal("CRC32 = 0 after Run")
	}
	h.Run(1)
	if h.CRC32() != sum {
		t.Error("static screen changed checksum")
	}
}

func TestHeadless_LoadFailure(t *testing.T) {
	var buf bytes.Buffer
	h := NewHeadless(zerolog.New(&buf))
	defer h.Close()

	if err := h.Load("junk.nes", []byte("junk")); err != ErrLoadFailed {
		t.Fatalf("Load = %v, want ErrLoadFailed", err)
	}
	if !strings.Contains(buf.String(), "Loading game failed.") {
		t.Errorf("log = %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"src":"core"`) {
		t.Errorf("core log line not tagged: %q", buf.String())
	}

	h.Run(2)
	if h.Frames() != 0 {
		t.Errorf("Frames = %d after failed load, want 0", h.Frames())
	}
}

func TestHeadless_Hold(t *testing.T) {
	h := NewHeadless(zerolog.Nop())
	defer h.Close()

	h.Hold(0, libretro.JoypadA, libretro.JoypadStart)
	h.Hold(1, libretro.JoypadLeft)
	h.Hold(7, libretro.JoypadB)

	tests := []struct {
		port, device, id uint
		want             int16
	}{
		{0, libretro.DeviceJoypad, libretro.JoypadA, 1},
		{0, libretro.DeviceJoypad, libretro.JoypadStart, 1},
		{0, libretro.DeviceJoypad, libretro.JoypadB, 0},
		{1, libretro.DeviceJoypad, libretro.JoypadLeft, 1},
		{1, libretro.DeviceJoypad, libretro.JoypadA, 0},
		{0, 0, libretro.JoypadA, 0},
		{7, libretro.DeviceJoypad, libretro.JoypadB, 0},
	}
	for _, tt := range tests {
		if got := h.InputState(tt.port, tt.device, 0, tt.id); got != tt.want {
			t.Errorf("InputState(%d, %d, 0, %d) = %d, want %d", tt.port, tt.device, tt.id, got, tt.want)
		}
	}
}

func TestHeadless_PixelFormat(t *testing.T) {
	h := &Headless{}
	if !h.SetPixelFormat(libretro.PixelFormatXRGB8888) {
		t.Error("XRGB8888 rejected")
	}
	if h.SetPixelFormat(libretro.PixelFormatRGB565) {
		t.Error("RGB565 accepted")
	}
}

func TestHeadless_SaveScreenshot(t *testing.T) {
	h := newTestHeadless(t, nil)
	dir := t.TempDir()

	if err := h.SaveScreenshot(filepath.Join(dir, "early.png")); err == nil {
		t.Error("SaveScreenshot succeeded before any frame")
	}

	h.Run(3)

	pngPath := filepath.Join(dir, "shot.png")
	if err := h.SaveScreenshot(pngPath); err != nil {
		t.Fatalf("SaveScreenshot(png): %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if r, g, b, _ := img.At(10, 10).RGBA(); r>>8 != 0x64 || g>>8 != 0xB0 || b>>8 != 0xFF {
		t.Errorf("png pixel = %02x %02x %02x", r>>8, g>>8, b>>8)
	}

	bmpPath := filepath.Join(dir, "shot.BMP")
	if err := h.SaveScreenshot(bmpPath); err != nil {
		t.Fatalf("SaveScreenshot(bmp): %v", err)
	}
	f, err = os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := bmp.DecodeConfig(f)
	f.Close()
	if err != nil {
		t.Fatalf("bmp.DecodeConfig: %v", err)
	}
	if cfg.Width != 256 || cfg.Height != 240 {
		t.Errorf("bmp = %dx%d", cfg.Width, cfg.Height)
	}

	gifPath := filepath.Join(dir, "shot.gif")
	if err := h.SaveScreenshot(gifPath); err == nil {
		t.Error("SaveScreenshot accepted .gif")
	}
	if _, err := os.Stat(gifPath); !os.IsNotExist(err) {
		t.Error("unsupported format left a file behind")
	}
}
