package adapter

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/enes/emu"
)

// Compile-time interface checks.
var (
	_ emucore.CoreFactory     = (*Factory)(nil)
	_ emucore.Emulator        = (*Emulator)(nil)
	_ emucore.BatterySaver    = (*Emulator)(nil)
	_ emucore.MemoryInspector = (*Emulator)(nil)
	_ emucore.MemoryMapper    = (*Emulator)(nil)
)

// SampleRate is the rate of the (silent) audio stream handed to eblitui.
const SampleRate = 48000

// Bit positions of the NES face buttons in the eblitui input mask.
// Bits 0-3 are the d-pad (emucore.ButtonUp..ButtonRight).
const (
	ButtonA      = 4
	ButtonB      = 5
	ButtonSelect = 6
	ButtonStart  = 7
)

// Factory implements emucore.CoreFactory for the NES engine.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "enes",
		ConsoleName:     "Nintendo Entertainment System",
		Extensions:      []string{".nes"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.ScreenHeight,
		AspectRatio:     float64(emu.ScreenWidth) / float64(emu.ScreenHeight),
		SampleRate:      SampleRate,
		Buttons: []emucore.Button{
			{Name: "A", ID: ButtonA, DefaultKey: "J", DefaultPad: "A"},
			{Name: "B", ID: ButtonB, DefaultKey: "K", DefaultPad: "B"},
			{Name: "Select", ID: ButtonSelect, DefaultKey: "Backspace", DefaultPad: "Select"},
			{Name: "Start", ID: ButtonStart, DefaultKey: "Enter", DefaultPad: "Start"},
		},
		Players:       2,
		RDBName:       "Nintendo - Nintendo Entertainment System",
		ThumbnailRepo: "Nintendo_-_Nintendo_Entertainment_System",
		DataDirName:   "enes",
		ConsoleID:     7,
		CoreName:      emu.Name,
		CoreVersion:   emu.Version,
		SerializeSize: 0,
	}
}

// CreateEmulator creates a new emulator instance with the given ROM.
// The engine always runs NTSC timing; region is recorded but not applied.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e := emu.New()
	if err := e.LoadINES(rom); err != nil {
		return nil, err
	}
	return &Emulator{
		nes:     e,
		region:  region,
		silence: make([]int16, SampleRate/emu.NTSCTiming.FPS*2),
	}, nil
}

// DetectRegion reads the TV system from the iNES header.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegionFromROM(rom)
}

// Emulator adapts emu.Emulator to the eblitui emulator interfaces.
type Emulator struct {
	nes     *emu.Emulator
	region  emucore.Region
	input   [2]emu.Input
	silence []int16
}

// RunFrame executes one frame of emulation.
func (e *Emulator) RunFrame() {
	e.nes.NextFrame()
}

// GetFramebuffer returns RGBA pixels of the last frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.nes.Framebuffer()
}

func (e *Emulator) GetFramebufferStride() int {
	return emu.ScreenWidth * 4
}

func (e *Emulator) GetActiveHeight() int {
	return emu.ScreenHeight
}

// GetAudioSamples returns one frame of stereo silence. The engine has no APU.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.silence
}

// SetInput decodes an eblitui button mask for player 0 or 1.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player < 0 || player >= len(e.input) {
		return
	}
	e.input[player] = decodeButtons(buttons)
	e.nes.SetInput(e.input[0], e.input[1])
}

func decodeButtons(buttons uint32) emu.Input {
	bit := func(n int) bool { return buttons&(1<<n) != 0 }
	return emu.Input{
		Up:     bit(emucore.ButtonUp),
		Down:   bit(emucore.ButtonDown),
		Left:   bit(emucore.ButtonLeft),
		Right:  bit(emucore.ButtonRight),
		A:      bit(ButtonA),
		B:      bit(ButtonB),
		Select: bit(ButtonSelect),
		Start:  bit(ButtonStart),
	}
}

func (e *Emulator) GetRegion() emucore.Region {
	return e.region
}

func (e *Emulator) SetRegion(region emucore.Region) {
	e.region = region
}

// GetTiming returns NTSC timing regardless of the recorded region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       emu.NTSCTiming.FPS,
		Scanlines: emu.NTSCTiming.Scanlines,
	}
}

// SetOption is a no-op; the core has no options.
func (e *Emulator) SetOption(key string, value string) {}

// Reset presses the console's reset button.
func (e *Emulator) Reset() {
	e.nes.Reset()
}

// Jammed reports whether the CPU has halted on a KIL opcode.
func (e *Emulator) Jammed() bool {
	return e.nes.Jammed()
}

// Mapper returns the iNES mapper number of the cartridge.
func (e *Emulator) Mapper() int {
	return int(e.nes.Mapper())
}

// ROMCRC32 returns the CRC32 of the loaded image, header included.
func (e *Emulator) ROMCRC32() uint32 {
	return e.nes.ROMCRC32()
}

func (e *Emulator) Close() {
	e.nes.Close()
}

// =============================================================================
// Battery RAM and memory access
// =============================================================================

func (e *Emulator) HasSRAM() bool {
	return e.nes.HasSRAM()
}

func (e *Emulator) GetSRAM() []byte {
	return e.nes.GetSRAM()
}

func (e *Emulator) SetSRAM(data []byte) {
	e.nes.SetSRAM(data)
}

// ReadMemory reads CPU work RAM ($0000-$07FF) for achievements.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	return e.nes.ReadRAM(addr, buf)
}

// MemoryMap lists work RAM and, for battery carts, PRG RAM.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	regions := []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: emu.RAMSize},
	}
	if e.HasSRAM() {
		regions = append(regions, emucore.MemoryRegion{Type: emucore.MemorySaveRAM, Size: len(e.nes.GetSRAM())})
	}
	return regions
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		out := make([]byte, emu.RAMSize)
		e.nes.ReadRAM(0, out)
		return out
	case emucore.MemorySaveRAM:
		return e.nes.GetSRAM()
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		e.nes.WriteRAM(0, data)
	case emucore.MemorySaveRAM:
		e.nes.SetSRAM(data)
	}
}
