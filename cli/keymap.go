//go:build !libretro && !ios

package cli

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/enes/libretro"
)

var keyNames = map[string]ebiten.Key{
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,

	"Enter":      ebiten.KeyEnter,
	"Space":      ebiten.KeySpace,
	"Backspace":  ebiten.KeyBackspace,
	"Tab":        ebiten.KeyTab,
	"Shift":      ebiten.KeyShift,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
}

// Keymap maps libretro joypad ids to keyboard keys for player 1.
type Keymap map[uint]ebiten.Key

// NewKeymap resolves the key names in kc.
func NewKeymap(kc KeyConfig) (Keymap, error) {
	bindings := []struct {
		id   uint
		name string
	}{
		{libretro.JoypadUp, kc.Up},
		{libretro.JoypadDown, kc.Down},
		{libretro.JoypadLeft, kc.Left},
		{libretro.JoypadRight, kc.Right},
		{libretro.JoypadA, kc.A},
		{libretro.JoypadB, kc.B},
		{libretro.JoypadSelect, kc.Select},
		{libretro.JoypadStart, kc.Start},
	}
	km := make(Keymap, len(bindings))
	for _, b := range bindings {
		key, ok := keyNames[b.name]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", b.name)
		}
		km[b.id] = key
	}
	return km, nil
}

// padButtons maps libretro joypad ids to standard gamepad buttons.
var padButtons = map[uint]ebiten.StandardGamepadButton{
	libretro.JoypadUp:     ebiten.StandardGamepadButtonLeftTop,
	libretro.JoypadDown:   ebiten.StandardGamepadButtonLeftBottom,
	libretro.JoypadLeft:   ebiten.StandardGamepadButtonLeftLeft,
	libretro.JoypadRight:  ebiten.StandardGamepadButtonLeftRight,
	libretro.JoypadA:      ebiten.StandardGamepadButtonRightRight,
	libretro.JoypadB:      ebiten.StandardGamepadButtonRightBottom,
	libretro.JoypadSelect: ebiten.StandardGamepadButtonCenterLeft,
	libretro.JoypadStart:  ebiten.StandardGamepadButtonCenterRight,
}
