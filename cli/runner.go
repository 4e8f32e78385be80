//go:build !libretro && !ios

package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	ebitenbridge "github.com/user-none/enes/bridge/ebiten"
	"github.com/user-none/enes/libretro"
)

const stickDeadzone = 0.5

// Runner is a windowed libretro frontend. It implements ebiten.Game and
// runs one core frame per tick.
type Runner struct {
	core   *libretro.Core
	screen *ebitenbridge.Screen
	keys   Keymap
	log    zerolog.Logger

	// pressed is the input snapshot taken at InputPoll, per port.
	pressed [2]map[uint]bool
	padIDs  []ebiten.GamepadID
}

var _ libretro.Frontend = (*Runner)(nil)

// NewRunner creates a runner with an initialized core.
func NewRunner(keys Keymap, log zerolog.Logger) *Runner {
	r := &Runner{
		screen:  ebitenbridge.NewScreen(libretro.FrameWidth, libretro.FrameHeight),
		keys:    keys,
		log:     log,
		pressed: [2]map[uint]bool{{}, {}},
	}
	r.core = libretro.NewCore(r, nil)
	r.core.SetEnvironment()
	r.core.Init()
	return r
}

// Load hands a ROM image to the core.
func (r *Runner) Load(path string, data []byte) error {
	if !r.core.LoadGame(libretro.GameInfo{Path: path, Data: data}) {
		return ErrLoadFailed
	}
	return nil
}

// Close unloads the game and shuts the core down.
func (r *Runner) Close() {
	r.core.UnloadGame()
	r.core.Deinit()
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}
	r.core.Run()
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.screen.Draw(screen)
}

// Layout implements ebiten.Game. Scaling is done in Draw.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (r *Runner) SetSupportNoGame(supported bool) bool { return true }

func (r *Runner) LogInterface() (libretro.LogFunc, bool) {
	return coreLog(r.log), true
}

func (r *Runner) SetPixelFormat(format libretro.PixelFormat) bool {
	return format == libretro.PixelFormatXRGB8888
}

func (r *Runner) VariablesUpdated() bool { return false }

func (r *Runner) VideoRefresh(frame []uint32, width, height, pitch int) {
	r.screen.Present(frame, width, height)
}

// AudioSampleBatch drops audio; the core produces none.
func (r *Runner) AudioSampleBatch(samples []int16, frames int) int { return frames }

// InputPoll snapshots the keyboard and gamepads. Port 0 reads the keyboard
// and the first gamepad, port 1 the second gamepad.
func (r *Runner) InputPoll() {
	for port := range r.pressed {
		clear(r.pressed[port])
	}
	for id, key := range r.keys {
		if ebiten.IsKeyPressed(key) {
			r.pressed[0][id] = true
		}
	}

	r.padIDs = ebiten.AppendGamepadIDs(r.padIDs[:0])
	port := 0
	for _, pad := range r.padIDs {
		if port >= len(r.pressed) {
			break
		}
		if !ebiten.IsStandardGamepadLayoutAvailable(pad) {
			continue
		}
		r.pollGamepad(pad, r.pressed[port])
		port++
	}
}

func (r *Runner) pollGamepad(pad ebiten.GamepadID, pressed map[uint]bool) {
	for id, btn := range padButtons {
		if ebiten.IsStandardGamepadButtonPressed(pad, btn) {
			pressed[id] = true
		}
	}
	x := ebiten.StandardGamepadAxisValue(pad, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(pad, ebiten.StandardGamepadAxisLeftStickVertical)
	if x < -stickDeadzone {
		pressed[libretro.JoypadLeft] = true
	}
	if x > stickDeadzone {
		pressed[libretro.JoypadRight] = true
	}
	if y < -stickDeadzone {
		pressed[libretro.JoypadUp] = true
	}
	if y > stickDeadzone {
		pressed[libretro.JoypadDown] = true
	}
}

func (r *Runner) InputState(port, device, index, id uint) int16 {
	if device != libretro.DeviceJoypad || int(port) >= len(r.pressed) {
		return 0
	}
	if r.pressed[port][id] {
		return 1
	}
	return 0
}
