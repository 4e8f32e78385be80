package libretro

import "github.com/user-none/enes/emu"

// LogFunc receives one formatted log line for the frontend.
type LogFunc func(level LogLevel, msg string)

// Environment is the subset of retro_environment commands the core issues.
type Environment interface {
	// SetSupportNoGame issues RETRO_ENVIRONMENT_SET_SUPPORT_NO_GAME.
	SetSupportNoGame(supported bool) bool

	// LogInterface issues RETRO_ENVIRONMENT_GET_LOG_INTERFACE.
	LogInterface() (LogFunc, bool)

	// SetPixelFormat issues RETRO_ENVIRONMENT_SET_PIXEL_FORMAT.
	SetPixelFormat(format PixelFormat) bool

	// VariablesUpdated issues RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE.
	VariablesUpdated() bool
}

// Frontend is the set of callbacks a libretro frontend registers with the core.
type Frontend interface {
	Environment

	// VideoRefresh receives a packed frame; pitch is in bytes.
	VideoRefresh(frame []uint32, width, height, pitch int)

	// AudioSampleBatch receives interleaved stereo samples and returns
	// the number of frames consumed.
	AudioSampleBatch(samples []int16, frames int) int

	InputPoll()
	InputState(port, device, index, id uint) int16
}

// Engine is the emulator surface the core drives.
type Engine interface {
	LoadINES(data []byte) error
	NextFrame() bool
	ScreenPixel(x, y int) emu.Color
	SetInput(p1, p2 emu.Input)
	Close()
}

// NewEngine creates the NES engine.
func NewEngine() Engine {
	return emu.New()
}
