package emu

const (
	ramSize       = 0x800
	oamDMAPort    = 0x4014
	joypad1Port   = 0x4016
	joypad2Port   = 0x4017
	cartSpaceBase = 0x4020
	oamDMACycles  = 513
)

// NESBus is the CPU address space: work RAM, PPU and joypad ports, and the cartridge.
type NESBus struct {
	ram    [ramSize]uint8
	ppu    *PPU
	mapper Mapper
	pads   [2]Controller
	cpu    *CPU
}

// NewNESBus creates a bus bridging the PPU and cartridge. The CPU is
// attached afterwards with AttachCPU since it needs the bus to exist.
func NewNESBus(ppu *PPU, mapper Mapper) *NESBus {
	return &NESBus{ppu: ppu, mapper: mapper}
}

// AttachCPU gives the bus the CPU that OAM DMA stalls.
func (b *NESBus) AttachCPU(cpu *CPU) {
	b.cpu = cpu
}

func (b *NESBus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr%ramSize]
	case addr < 0x4000:
		return b.ppu.ReadRegister(0x2000 | addr&0x07)
	case addr == joypad1Port:
		return b.pads[0].Read() | 0x40
	case addr == joypad2Port:
		return b.pads[1].Read() | 0x40
	case addr < cartSpaceBase:
		// APU and test registers: no audio unit is emulated.
		return 0
	}
	return b.mapper.ReadPRG(addr)
}

func (b *NESBus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr%ramSize] = val
	case addr < 0x4000:
		b.ppu.WriteRegister(0x2000|addr&0x07, val)
	case addr == oamDMAPort:
		b.oamDMA(val)
	case addr == joypad1Port:
		b.pads[0].Write(val)
		b.pads[1].Write(val)
	case addr < cartSpaceBase:
	default:
		b.mapper.WritePRG(addr, val)
	}
}

// oamDMA copies a 256-byte page into OAM and stalls the CPU for the transfer.
func (b *NESBus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		b.ppu.WriteOAM(b.Read(base + i))
	}
	if b.cpu == nil {
		return
	}
	stall := oamDMACycles
	if b.cpu.Cycles%2 == 1 {
		stall++
	}
	b.cpu.Stall(stall)
}
