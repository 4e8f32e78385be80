// Package emuios provides a gomobile-compatible interface to the emulator.
// Only scalar, string, and []byte values cross the boundary.
package emuios

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	emucore "github.com/user-none/eblitui/api"

	"github.com/user-none/enes/adapter"
	"github.com/user-none/enes/romloader"
)

// ExtractResult contains the result of ROM extraction
type ExtractResult struct {
	Crc32    string // Hex string, e.g., "AABBCCDD"
	Filename string // Name of the image, e.g., "Balloon Fight (USA).nes"
}

// current holds the running emulator (unexported)
var current *session

type session struct {
	emu       *adapter.Emulator
	audioData []byte
	sramData  []byte
}

// InitFromPath creates an emulator from a ROM file path.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// regionCode: 0=NTSC, 1=PAL. PAL is recorded but emulation is NTSC.
// Returns true on success, false on error.
func InitFromPath(path string, regionCode int) bool {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return false
	}

	region := emucore.RegionNTSC
	if regionCode == 1 {
		region = emucore.RegionPAL
	}
	e, err := (&adapter.Factory{}).CreateEmulator(rom, region)
	if err != nil {
		return false
	}
	Close()
	current = &session{emu: e.(*adapter.Emulator)}
	return true
}

// Close releases the emulator.
func Close() {
	if current != nil {
		current.emu.Close()
	}
	current = nil
}

// RunFrame executes one frame of emulation.
func RunFrame() {
	if current == nil {
		return
	}
	current.emu.RunFrame()

	samples := current.emu.GetAudioSamples()
	if len(current.audioData) != len(samples)*2 {
		current.audioData = make([]byte, len(samples)*2)
	}
	for i, s := range samples {
		current.audioData[i*2] = byte(s)
		current.audioData[i*2+1] = byte(s >> 8)
	}
}

// FrameWidth returns the display width (always 256).
func FrameWidth() int {
	return 256
}

// FrameHeight returns the display height (always 240).
func FrameHeight() int {
	return 240
}

// GetFrameData returns the RGBA frame buffer, 1024 bytes per row.
func GetFrameData() []byte {
	if current == nil {
		return nil
	}
	return current.emu.GetFramebuffer()
}

// GetAudioData returns little-endian 16-bit stereo samples for the last frame.
func GetAudioData() []byte {
	if current == nil {
		return nil
	}
	return current.audioData
}

// SetInput sets a controller's state. player is 0 or 1.
func SetInput(player int, up, down, left, right, a, b, sel, start bool) {
	if current == nil {
		return
	}
	var mask uint32
	for bit, on := range map[int]bool{
		emucore.ButtonUp:     up,
		emucore.ButtonDown:   down,
		emucore.ButtonLeft:   left,
		emucore.ButtonRight:  right,
		adapter.ButtonA:      a,
		adapter.ButtonB:      b,
		adapter.ButtonSelect: sel,
		adapter.ButtonStart:  start,
	} {
		if on {
			mask |= 1 << bit
		}
	}
	current.emu.SetInput(player, mask)
}

// Reset presses the console's reset button.
func Reset() {
	if current != nil {
		current.emu.Reset()
	}
}

// Jammed reports whether the game has halted the CPU.
func Jammed() bool {
	return current != nil && current.emu.Jammed()
}

// Mapper returns the iNES mapper number of the running game, or -1.
func Mapper() int {
	if current == nil {
		return -1
	}
	return current.emu.Mapper()
}

// CRC32 returns the checksum of the running game's image, or -1.
func CRC32() int64 {
	if current == nil {
		return -1
	}
	return int64(current.emu.ROMCRC32())
}

// Region returns the recorded region (0=NTSC, 1=PAL).
func Region() int {
	if current == nil {
		return 0
	}
	if current.emu.GetRegion() == emucore.RegionPAL {
		return 1
	}
	return 0
}

// HasSRAM reports whether the cartridge has battery-backed RAM.
func HasSRAM() bool {
	return current != nil && current.emu.HasSRAM()
}

// PrepareSRAM copies battery RAM to an internal buffer.
func PrepareSRAM() {
	if current == nil {
		return
	}
	current.sramData = current.emu.GetSRAM()
}

// SRAMLen returns the SRAM length (8192 for battery carts, else 0).
func SRAMLen() int {
	if current == nil {
		return 0
	}
	return len(current.sramData)
}

// SRAMByte returns a single byte from SRAM at index i.
func SRAMByte(i int) int {
	if current == nil || i < 0 || i >= len(current.sramData) {
		return 0
	}
	return int(current.sramData[i])
}

// LoadSRAM loads 8KB of battery RAM.
func LoadSRAM(data []byte) {
	if current == nil || len(data) != 0x2000 {
		return
	}
	current.emu.SetSRAM(data)
}

// DetectRegionFromPath returns the detected region for a ROM file (0=NTSC, 1=PAL).
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
func DetectRegionFromPath(path string) int {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return 0 // Default to NTSC on error
	}

	region, _ := (&adapter.Factory{}).DetectRegion(rom)
	if region == emucore.RegionPAL {
		return 1
	}
	return 0
}

// GetFPS returns the target FPS. The engine only runs NTSC timing.
func GetFPS(regionCode int) int {
	return 60
}

// GetCRC32FromPath calculates the CRC32 checksum of a ROM file.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// Returns -1 on error.
func GetCRC32FromPath(path string) int64 {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return -1
	}

	return int64(crc32.ChecksumIEEE(rom))
}

// ExtractAndStoreROM extracts a ROM from an archive (or copies a raw ROM),
// calculates its CRC32, and stores it as {destDir}/{CRC32}.nes.
// If a file with the same CRC32 already exists, it skips writing.
func ExtractAndStoreROM(srcPath, destDir string) (*ExtractResult, error) {
	rom, filename, err := romloader.LoadROM(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ROM: %w", err)
	}

	crcHex := fmt.Sprintf("%08X", crc32.ChecksumIEEE(rom))
	destPath := filepath.Join(destDir, crcHex+".nes")

	if _, err := os.Stat(destPath); err == nil {
		return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
	}

	if err := os.WriteFile(destPath, rom, 0644); err != nil {
		return nil, fmt.Errorf("failed to write ROM: %w", err)
	}

	return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
}
