package main

/*
#include "libretro.h"
*/
import "C"
import (
	"fmt"

	"github.com/user-none/enes/libretro"
)

// abiMismatches compares the Go constants in package libretro with the
// values from libretro.h and describes every difference.
func abiMismatches() []string {
	checks := []struct {
		name string
		got  uint
		want uint
	}{
		{"RETRO_API_VERSION", libretro.APIVersion, C.RETRO_API_VERSION},
		{"RETRO_DEVICE_NONE", libretro.DeviceNone, C.RETRO_DEVICE_NONE},
		{"RETRO_DEVICE_JOYPAD", libretro.DeviceJoypad, C.RETRO_DEVICE_JOYPAD},
		{"RETRO_DEVICE_ID_JOYPAD_B", libretro.JoypadB, C.RETRO_DEVICE_ID_JOYPAD_B},
		{"RETRO_DEVICE_ID_JOYPAD_Y", libretro.JoypadY, C.RETRO_DEVICE_ID_JOYPAD_Y},
		{"RETRO_DEVICE_ID_JOYPAD_SELECT", libretro.JoypadSelect, C.RETRO_DEVICE_ID_JOYPAD_SELECT},
		{"RETRO_DEVICE_ID_JOYPAD_START", libretro.JoypadStart, C.RETRO_DEVICE_ID_JOYPAD_START},
		{"RETRO_DEVICE_ID_JOYPAD_UP", libretro.JoypadUp, C.RETRO_DEVICE_ID_JOYPAD_UP},
		{"RETRO_DEVICE_ID_JOYPAD_DOWN", libretro.JoypadDown, C.RETRO_DEVICE_ID_JOYPAD_DOWN},
		{"RETRO_DEVICE_ID_JOYPAD_LEFT", libretro.JoypadLeft, C.RETRO_DEVICE_ID_JOYPAD_LEFT},
		{"RETRO_DEVICE_ID_JOYPAD_RIGHT", libretro.JoypadRight, C.RETRO_DEVICE_ID_JOYPAD_RIGHT},
		{"RETRO_DEVICE_ID_JOYPAD_A", libretro.JoypadA, C.RETRO_DEVICE_ID_JOYPAD_A},
		{"RETRO_DEVICE_ID_JOYPAD_X", libretro.JoypadX, C.RETRO_DEVICE_ID_JOYPAD_X},
		{"RETRO_DEVICE_ID_JOYPAD_L", libretro.JoypadL, C.RETRO_DEVICE_ID_JOYPAD_L},
		{"RETRO_DEVICE_ID_JOYPAD_R", libretro.JoypadR, C.RETRO_DEVICE_ID_JOYPAD_R},
		{"RETRO_REGION_NTSC", libretro.RegionNTSC, C.RETRO_REGION_NTSC},
		{"RETRO_REGION_PAL", libretro.RegionPAL, C.RETRO_REGION_PAL},
		{"RETRO_MEMORY_SAVE_RAM", libretro.MemorySaveRAM, C.RETRO_MEMORY_SAVE_RAM},
		{"RETRO_MEMORY_RTC", libretro.MemoryRTC, C.RETRO_MEMORY_RTC},
		{"RETRO_MEMORY_SYSTEM_RAM", libretro.MemorySystemRAM, C.RETRO_MEMORY_SYSTEM_RAM},
		{"RETRO_MEMORY_VIDEO_RAM", libretro.MemoryVideoRAM, C.RETRO_MEMORY_VIDEO_RAM},
		{"RETRO_PIXEL_FORMAT_0RGB1555", uint(libretro.PixelFormat0RGB1555), C.RETRO_PIXEL_FORMAT_0RGB1555},
		{"RETRO_PIXEL_FORMAT_XRGB8888", uint(libretro.PixelFormatXRGB8888), C.RETRO_PIXEL_FORMAT_XRGB8888},
		{"RETRO_PIXEL_FORMAT_RGB565", uint(libretro.PixelFormatRGB565), C.RETRO_PIXEL_FORMAT_RGB565},
		{"RETRO_LOG_DEBUG", uint(libretro.LogDebug), C.RETRO_LOG_DEBUG},
		{"RETRO_LOG_INFO", uint(libretro.LogInfo), C.RETRO_LOG_INFO},
		{"RETRO_LOG_WARN", uint(libretro.LogWarn), C.RETRO_LOG_WARN},
		{"RETRO_LOG_ERROR", uint(libretro.LogError), C.RETRO_LOG_ERROR},
	}

	var out []string
	for _, c := range checks {
		if c.got != c.want {
			out = append(out, fmt.Sprintf("%s = %d in Go, %d in C", c.name, c.got, c.want))
		}
	}
	return out
}
