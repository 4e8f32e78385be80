// Package libretro adapts the NES engine to the libretro core ABI.
//
// Core holds everything a libretro core keeps between calls. The cgo
// shell in cmd/libretro forwards each retro_* export to a Core method;
// in-process frontends drive a Core directly through the same methods.
package libretro

import "github.com/user-none/enes/emu"

// APIVersion is RETRO_API_VERSION.
const APIVersion = 1

// Input devices
const (
	DeviceNone   uint = 0
	DeviceJoypad uint = 1
)

// RETRO_DEVICE_ID_JOYPAD_* button ids.
const (
	JoypadB      uint = 0
	JoypadY      uint = 1
	JoypadSelect uint = 2
	JoypadStart  uint = 3
	JoypadUp     uint = 4
	JoypadDown   uint = 5
	JoypadLeft   uint = 6
	JoypadRight  uint = 7
	JoypadA      uint = 8
	JoypadX      uint = 9
	JoypadL      uint = 10
	JoypadR      uint = 11
)

// Regions
const (
	RegionNTSC uint = 0
	RegionPAL  uint = 1
)

// Memory region ids for retro_get_memory_data.
const (
	MemorySaveRAM   uint = 0
	MemoryRTC       uint = 1
	MemorySystemRAM uint = 2
	MemoryVideoRAM  uint = 3
)

// PixelFormat is enum retro_pixel_format.
type PixelFormat int

const (
	PixelFormat0RGB1555 PixelFormat = 0
	PixelFormatXRGB8888 PixelFormat = 1
	PixelFormatRGB565   PixelFormat = 2
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormat0RGB1555:
		return "0RGB1555"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	default:
		return "unknown"
	}
}

// LogLevel is enum retro_log_level.
type LogLevel int

const (
	LogDebug LogLevel = 0
	LogInfo  LogLevel = 1
	LogWarn  LogLevel = 2
	LogError LogLevel = 3
)

// Output geometry and timing. The engine renders a fixed 256x240 frame at 60Hz.
const (
	FrameWidth  = emu.ScreenWidth
	FrameHeight = emu.ScreenHeight
	FramePitch  = FrameWidth * 4
	FPS         = 60.0
	SampleRate  = 0.0
)

// SystemInfo mirrors struct retro_system_info.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors struct retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint
	BaseHeight  uint
	MaxWidth    uint
	MaxHeight   uint
	AspectRatio float32
}

// SystemTiming mirrors struct retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors struct retro_system_av_info.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo mirrors struct retro_game_info. Data is the full ROM image.
type GameInfo struct {
	Path string
	Data []byte
	Meta string
}

// PackPixel packs an engine color into one frame buffer word as
// R<<24 | G<<16 | B<<8 | A.
func PackPixel(c emu.Color) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// UnpackPixel is the inverse of PackPixel.
func UnpackPixel(p uint32) emu.Color {
	return emu.Color{
		R: uint8(p >> 24),
		G: uint8(p >> 16),
		B: uint8(p >> 8),
		A: uint8(p),
	}
}
