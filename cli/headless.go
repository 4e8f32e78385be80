package cli

import (
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"

	"github.com/user-none/enes/libretro"
)

// ErrLoadFailed is returned when the core rejects a game.
var ErrLoadFailed = errors.New("core failed to load game")

// Headless drives a libretro core without a window. It is the frontend:
// the core calls back into it for video, audio, input and logging.
type Headless struct {
	core   *libretro.Core
	log    zerolog.Logger
	held   [2]map[uint]bool
	frame  []uint32
	width  int
	height int
	frames int
}

var _ libretro.Frontend = (*Headless)(nil)

// NewHeadless creates a headless frontend with an initialized core.
func NewHeadless(log zerolog.Logger) *Headless {
	h := &Headless{
		log:  log,
		held: [2]map[uint]bool{{}, {}},
	}
	h.core = libretro.NewCore(h, nil)
	h.core.SetEnvironment()
	h.core.Init()
	return h
}

// Load hands a ROM image to the core.
func (h *Headless) Load(path string, data []byte) error {
	if !h.core.LoadGame(libretro.GameInfo{Path: path, Data: data}) {
		return ErrLoadFailed
	}
	return nil
}

// Hold keeps the given joypad buttons pressed on port for every later frame.
func (h *Headless) Hold(port uint, ids ...uint) {
	if int(port) >= len(h.held) {
		return
	}
	for _, id := range ids {
		h.held[port][id] = true
	}
}

// Run emulates n frames.
func (h *Headless) Run(n int) {
	for i := 0; i < n; i++ {
		h.core.Run()
	}
}

// Frames returns the number of frames presented so far.
func (h *Headless) Frames() int {
	return h.frames
}

// Image returns the last presented frame, or nil before the first one.
func (h *Headless) Image() *image.RGBA {
	if h.frame == nil {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	for i, p := range h.frame {
		c := libretro.UnpackPixel(p)
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 0xFF
	}
	return img
}

// CRC32 returns the checksum of the last frame's RGBA pixels, 0 before
// the first frame.
func (h *Headless) CRC32() uint32 {
	img := h.Image()
	if img == nil {
		return 0
	}
	return crc32.ChecksumIEEE(img.Pix)
}

// SaveScreenshot writes the last frame to path as PNG or BMP, chosen by
// the file extension.
func (h *Headless) SaveScreenshot(path string) error {
	img := h.Image()
	if img == nil {
		return errors.New("no frame to save")
	}

	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		encode = bmp.Encode
	case ".png", "":
		encode = png.Encode
	default:
		return fmt.Errorf("unsupported screenshot format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return f.Close()
}

// Close unloads the game and shuts the core down.
func (h *Headless) Close() {
	h.core.UnloadGame()
	h.core.Deinit()
}

func (h *Headless) SetSupportNoGame(supported bool) bool { return true }

func (h *Headless) LogInterface() (libretro.LogFunc, bool) {
	return coreLog(h.log), true
}

func (h *Headless) SetPixelFormat(format libretro.PixelFormat) bool {
	return format == libretro.PixelFormatXRGB8888
}

func (h *Headless) VariablesUpdated() bool { return false }

func (h *Headless) VideoRefresh(frame []uint32, width, height, pitch int) {
	if len(h.frame) != len(frame) {
		h.frame = make([]uint32, len(frame))
	}
	copy(h.frame, frame)
	h.width, h.height = width, height
	h.frames++
}

func (h *Headless) AudioSampleBatch(samples []int16, frames int) int { return frames }

func (h *Headless) InputPoll() {}

func (h *Headless) InputState(port, device, index, id uint) int16 {
	if device != libretro.DeviceJoypad || int(port) >= len(h.held) {
		return 0
	}
	if h.held[port][id] {
		return 1
	}
	return 0
}
