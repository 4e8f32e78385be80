package emu

import (
	"hash/crc32"
)

const (
	Name    = "eNES"
	Version = "0.0.1"
)

// Emulator ties the CPU, PPU, bus and cartridge together. A new Emulator
// is blank until LoadINES succeeds.
type Emulator struct {
	cart   *Cartridge
	mapper Mapper
	ppu    *PPU
	bus    *NESBus
	cpu    *CPU
	irq    irqSource
	romCRC uint32

	input [2]Input
	rgba  []byte
}

// New creates an emulator with no cartridge inserted.
func New() *Emulator {
	return &Emulator{
		rgba: make([]byte, ScreenWidth*ScreenHeight*4),
	}
}

// LoadINES parses an iNES image and powers the console on with it.
// On error the emulator keeps whatever it had before.
func (e *Emulator) LoadINES(data []byte) error {
	cart, err := ParseINES(data)
	if err != nil {
		return err
	}
	mapper, err := NewMapper(cart)
	if err != nil {
		return err
	}

	var cpu *CPU
	ppu := NewPPU(mapper, func() { cpu.TriggerNMI() })
	bus := NewNESBus(ppu, mapper)
	cpu = NewCPU(bus)
	bus.AttachCPU(cpu)

	e.cart = cart
	e.mapper = mapper
	e.ppu = ppu
	e.bus = bus
	e.cpu = cpu
	e.irq, _ = mapper.(irqSource)
	e.romCRC = crc32.ChecksumIEEE(data)

	e.applyInput()
	cpu.Reset()
	return nil
}

// Loaded reports whether a cartridge is inserted.
func (e *Emulator) Loaded() bool {
	return e.cpu != nil
}

// Reset presses the console's reset button. Cartridge RAM survives.
func (e *Emulator) Reset() {
	if !e.Loaded() {
		return
	}
	e.ppu.Reset()
	e.cpu.Reset()
}

// NextFrame runs until the PPU completes a frame. It returns false when
// nothing ran: no cartridge, or the CPU hit a KIL opcode.
func (e *Emulator) NextFrame() bool {
	if !e.Loaded() || e.cpu.Jammed() {
		return false
	}
	start := e.ppu.Frame
	for e.ppu.Frame == start {
		cycles := e.cpu.Step()
		if e.cpu.Jammed() {
			return false
		}
		for i := 0; i < cycles*3; i++ {
			e.ppu.Step()
		}
		if e.irq != nil {
			e.cpu.SetIRQ(e.irq.IRQPending())
		}
	}
	return true
}

// ScreenPixel returns the color at (x, y) of the last completed frame.
// Coordinates outside the screen, or a blank emulator, read as zero.
func (e *Emulator) ScreenPixel(x, y int) Color {
	if !e.Loaded() || x < 0 || y < 0 || x >= ScreenWidth || y >= ScreenHeight {
		return Color{}
	}
	return PaletteColor(e.ppu.PaletteIndex(x, y))
}

// SetInput sets the state of both controller ports.
func (e *Emulator) SetInput(p1, p2 Input) {
	e.input[0] = p1
	e.input[1] = p2
	e.applyInput()
}

func (e *Emulator) applyInput() {
	if e.bus == nil {
		return
	}
	e.bus.pads[0].Set(e.input[0])
	e.bus.pads[1].Set(e.input[1])
}

// Framebuffer returns the last frame as RGBA, ScreenWidth*4 bytes per row.
// The slice is reused on every call.
func (e *Emulator) Framebuffer() []byte {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			c := e.ScreenPixel(x, y)
			i := (y*ScreenWidth + x) * 4
			e.rgba[i+0] = c.R
			e.rgba[i+1] = c.G
			e.rgba[i+2] = c.B
			e.rgba[i+3] = c.A
		}
	}
	return e.rgba
}

// frameCount returns the number of frames the PPU has completed.
func (e *Emulator) frameCount() uint64 {
	if !e.Loaded() {
		return 0
	}
	return e.ppu.Frame
}

// Jammed reports whether the CPU is halted on a KIL opcode.
func (e *Emulator) Jammed() bool {
	return e.Loaded() && e.cpu.Jammed()
}

// Mapper returns the loaded cartridge's mapper number.
func (e *Emulator) Mapper() uint8 {
	if e.cart == nil {
		return 0
	}
	return e.cart.MapperID
}

// ROMCRC32 returns the CRC32 of the loaded image, header included.
func (e *Emulator) ROMCRC32() uint32 {
	return e.romCRC
}

// Close ejects the cartridge and drops all console state.
func (e *Emulator) Close() {
	e.cart = nil
	e.mapper = nil
	e.ppu = nil
	e.bus = nil
	e.cpu = nil
	e.irq = nil
	e.romCRC = 0
}

// =============================================================================
// Battery RAM and system RAM
// =============================================================================

// HasSRAM reports whether the cartridge declares battery-backed PRG RAM.
func (e *Emulator) HasSRAM() bool {
	return e.cart != nil && e.cart.Battery
}

// GetSRAM returns a copy of PRG RAM at $6000-$7FFF.
func (e *Emulator) GetSRAM() []byte {
	if e.cart == nil {
		return nil
	}
	out := make([]byte, len(e.cart.SRAM))
	copy(out, e.cart.SRAM)
	return out
}

// SetSRAM loads PRG RAM contents.
func (e *Emulator) SetSRAM(data []byte) {
	if e.cart == nil {
		return
	}
	copy(e.cart.SRAM, data)
}

// RAMSize is the size of CPU work RAM.
const RAMSize = ramSize

// ReadRAM copies CPU work RAM starting at addr into buf and returns the
// number of bytes copied.
func (e *Emulator) ReadRAM(addr uint32, buf []byte) uint32 {
	if e.bus == nil {
		return 0
	}
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		if cur >= RAMSize {
			break
		}
		buf[i] = e.bus.ram[cur]
		count++
	}
	return count
}

// WriteRAM copies data into CPU work RAM starting at addr and returns the
// number of bytes written.
func (e *Emulator) WriteRAM(addr uint32, data []byte) uint32 {
	if e.bus == nil {
		return 0
	}
	var count uint32
	for i, b := range data {
		cur := addr + uint32(i)
		if cur >= RAMSize {
			break
		}
		e.bus.ram[cur] = b
		count++
	}
	return count
}
