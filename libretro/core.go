package libretro

import (
	"github.com/rs/zerolog"

	"github.com/user-none/enes/emu"
)

// joypadOrder is the order buttons are queried from the frontend each frame.
var joypadOrder = [8]uint{
	JoypadUp, JoypadDown, JoypadLeft, JoypadRight,
	JoypadA, JoypadB, JoypadStart, JoypadSelect,
}

// Core is one libretro core instance. It is driven from a single
// thread, one entry point at a time, and is not safe for concurrent use.
type Core struct {
	frontend  Frontend
	newEngine func() Engine
	log       zerolog.Logger

	engine Engine
	loaded bool
	frame  []uint32
}

// NewCore creates a core that reports to frontend and builds engines with
// newEngine. A nil newEngine uses NewEngine.
func NewCore(frontend Frontend, newEngine func() Engine) *Core {
	if newEngine == nil {
		newEngine = NewEngine
	}
	return &Core{
		frontend:  frontend,
		newEngine: newEngine,
		log:       newFallbackLogger(stderr),
	}
}

// Init allocates the frame buffer and creates an engine (retro_init).
func (c *Core) Init() {
	c.frame = make([]uint32, FrameWidth*FrameHeight)
	if c.engine == nil {
		c.engine = c.newEngine()
	}
	c.loaded = false
}

// Deinit destroys the engine and drops the frame buffer (retro_deinit).
func (c *Core) Deinit() {
	c.closeEngine()
	c.frame = nil
}

// SetEnvironment runs the environment negotiation done when the frontend
// registers its environment callback (retro_set_environment).
func (c *Core) SetEnvironment() {
	c.frontend.SetSupportNoGame(false)
	if log, ok := c.frontend.LogInterface(); ok && log != nil {
		c.log = newFrontendLogger(log)
	} else {
		c.log = newFallbackLogger(stderr)
	}
}

// APIVersion returns RETRO_API_VERSION.
func (c *Core) APIVersion() uint {
	return APIVersion
}

// SystemInfo describes the core (retro_get_system_info).
func (c *Core) SystemInfo() SystemInfo {
	return SystemInfo{
		LibraryName:     emu.Name,
		LibraryVersion:  emu.Version,
		ValidExtensions: "nes",
		NeedFullpath:    false,
	}
}

// SystemAVInfo describes the output geometry and timing (retro_get_system_av_info).
func (c *Core) SystemAVInfo() SystemAVInfo {
	return SystemAVInfo{
		Geometry: GameGeometry{
			BaseWidth:   FrameWidth,
			BaseHeight:  FrameHeight,
			MaxWidth:    FrameWidth,
			MaxHeight:   FrameHeight,
			AspectRatio: float32(FrameWidth) / float32(FrameHeight),
		},
		Timing: SystemTiming{
			FPS:        FPS,
			SampleRate: SampleRate,
		},
	}
}

// SetControllerPortDevice only records the change in the log; both ports
// are always read as joypads.
func (c *Core) SetControllerPortDevice(port, device uint) {
	c.log.Info().Msgf("Plugging device %d into port %d.", device, port)
}

// Reset is a no-op: the console reset line is not exposed to the frontend.
func (c *Core) Reset() {}

// Region always reports NTSC timing.
func (c *Core) Region() uint {
	return RegionNTSC
}

// LoadGame negotiates XRGB8888 and hands the ROM image to a fresh engine.
// Loading over an active game replaces it.
func (c *Core) LoadGame(info GameInfo) bool {
	if !c.frontend.SetPixelFormat(PixelFormatXRGB8888) {
		c.log.Info().Msg("XRGB8888 is not supported.")
		return false
	}

	if c.engine == nil || c.loaded {
		c.closeEngine()
		c.engine = c.newEngine()
	}
	if c.frame == nil {
		c.frame = make([]uint32, FrameWidth*FrameHeight)
	}

	if err := c.engine.LoadINES(info.Data); err != nil {
		c.log.Error().Err(err).Msg("Loading game failed.")
		return false
	}
	c.loaded = true
	c.checkVariables()
	return true
}

// LoadGameSpecial loads the first of infos as a regular game.
func (c *Core) LoadGameSpecial(gameType uint, infos []GameInfo) bool {
	if len(infos) == 0 {
		return false
	}
	return c.LoadGame(infos[0])
}

// UnloadGame destroys the engine (retro_unload_game).
func (c *Core) UnloadGame() {
	c.closeEngine()
}

func (c *Core) closeEngine() {
	if c.engine != nil {
		c.engine.Close()
		c.engine = nil
	}
	c.loaded = false
}

// Run emulates one frame: input, engine step, pixel conversion, then one
// video and one empty audio batch. It does nothing until a game is loaded.
func (c *Core) Run() {
	if !c.loaded {
		return
	}

	c.frontend.InputPoll()
	p1 := c.readJoypad(0)
	p2 := c.readJoypad(1)
	c.engine.SetInput(p1, p2)

	if !c.engine.NextFrame() {
		c.log.Debug().Msg("engine produced no frame")
	}

	for y := 0; y < FrameHeight; y++ {
		row := c.frame[y*FrameWidth : (y+1)*FrameWidth]
		for x := range row {
			row[x] = PackPixel(c.engine.ScreenPixel(x, y))
		}
	}

	c.frontend.VideoRefresh(c.frame, FrameWidth, FrameHeight, FramePitch)
	c.frontend.AudioSampleBatch(nil, 0)

	if c.frontend.VariablesUpdated() {
		c.checkVariables()
	}
}

// readJoypad queries the eight buttons of one port in joypadOrder.
func (c *Core) readJoypad(port uint) emu.Input {
	var pressed [len(joypadOrder)]bool
	for i, id := range joypadOrder {
		pressed[i] = c.frontend.InputState(port, DeviceJoypad, 0, id) != 0
	}
	return emu.Input{
		Up:     pressed[0],
		Down:   pressed[1],
		Left:   pressed[2],
		Right:  pressed[3],
		A:      pressed[4],
		B:      pressed[5],
		Start:  pressed[6],
		Select: pressed[7],
	}
}

// checkVariables re-reads core options. The core exposes none.
func (c *Core) checkVariables() {}

// SerializeSize is always zero: save states are not supported.
func (c *Core) SerializeSize() int { return 0 }

// Serialize always fails.
func (c *Core) Serialize(data []byte) bool { return false }

// Unserialize always fails.
func (c *Core) Unserialize(data []byte) bool { return false }

// MemoryData exposes no memory regions.
func (c *Core) MemoryData(id uint) []byte { return nil }

// MemorySize exposes no memory regions.
func (c *Core) MemorySize(id uint) int { return 0 }

// CheatReset is a no-op: cheats are not supported.
func (c *Core) CheatReset() {}

// CheatSet ignores the code.
func (c *Core) CheatSet(index uint, enabled bool, code string) {}

// HasEngine reports whether an engine instance currently exists.
func (c *Core) HasEngine() bool {
	return c.engine != nil
}

// Loaded reports whether a game is loaded and Run will produce frames.
func (c *Core) Loaded() bool {
	return c.loaded
}

// Frame returns the packed frame buffer written by the last Run.
func (c *Core) Frame() []uint32 {
	return c.frame
}
