package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

// Region is an alias for emucore.Region so adapters share one type.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds timing constants for a specific region
type RegionTiming struct {
	CPUClockHz int // 2A03 clock frequency
	Scanlines  int // Total scanlines per frame
	FPS        int // Frames per second
}

// NTSC timing: 1.789773 MHz, 262 scanlines, 60 Hz
var NTSCTiming = RegionTiming{
	CPUClockHz: 1789773,
	Scanlines:  262,
	FPS:        60,
}

// DetectRegionFromROM reads the TV system from the iNES header.
// Most dumps leave it clear, so (NTSC, false) means "not declared".
// Emulation always runs with NTSC timing; the result is informational.
func DetectRegionFromROM(rom []byte) (Region, bool) {
	if len(rom) < inesHeaderSize || [4]byte(rom[0:4]) != inesMagic {
		return RegionNTSC, false
	}
	if rom[7]&0x0C == 0x08 {
		switch rom[12] & 0x03 {
		case 0:
			return RegionNTSC, true
		case 1:
			return RegionPAL, true
		}
		return RegionNTSC, false
	}
	if rom[9]&0x01 != 0 {
		return RegionPAL, true
	}
	return RegionNTSC, false
}
