package cli

import (
	"fmt"
	"strings"

	"github.com/user-none/enes/libretro"
)

var buttonNames = map[string]uint{
	"up":     libretro.JoypadUp,
	"down":   libretro.JoypadDown,
	"left":   libretro.JoypadLeft,
	"right":  libretro.JoypadRight,
	"a":      libretro.JoypadA,
	"b":      libretro.JoypadB,
	"select": libretro.JoypadSelect,
	"start":  libretro.JoypadStart,
}

// ParseButton maps an NES button name to its libretro joypad id.
func ParseButton(name string) (uint, error) {
	id, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown button %q", name)
	}
	return id, nil
}

// ParseButtons maps a list of button names, failing on the first unknown one.
func ParseButtons(names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, n := range names {
		id, err := ParseButton(n)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
