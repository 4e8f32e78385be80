package emu

// CPUBus is the address space the CPU executes against.
type CPUBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Status register flags
const (
	flagCarry     uint8 = 0x01
	flagZero      uint8 = 0x02
	flagInterrupt uint8 = 0x04
	flagDecimal   uint8 = 0x08
	flagBreak     uint8 = 0x10
	flagUnused    uint8 = 0x20
	flagOverflow  uint8 = 0x40
	flagNegative  uint8 = 0x80
)

const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
)

type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
)

// modeSize is the instruction length in bytes for each addressing mode.
var modeSize = [...]uint16{
	modeImplied:         1,
	modeAccumulator:     1,
	modeImmediate:       2,
	modeZeroPage:        2,
	modeZeroPageX:       2,
	modeZeroPageY:       2,
	modeRelative:        2,
	modeAbsolute:        3,
	modeAbsoluteX:       3,
	modeAbsoluteY:       3,
	modeIndirect:        3,
	modeIndexedIndirect: 2,
	modeIndirectIndexed: 2,
}

// CPU is the 2A03 core: a 6502 without decimal arithmetic.
type CPU struct {
	bus CPUBus

	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	Cycles uint64

	stall      int
	nmiPending bool
	irqLine    bool
	jammed     bool
}

// NewCPU creates a CPU attached to bus. Call Reset before stepping.
func NewCPU(bus CPUBus) *CPU {
	return &CPU{bus: bus}
}

// Reset loads PC from the reset vector and puts registers in power-up state.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagInterrupt | flagUnused
	c.PC = c.read16(vectorReset)
	c.Cycles = 7
	c.stall = 0
	c.nmiPending = false
	c.irqLine = false
	c.jammed = false
}

// TriggerNMI latches a non-maskable interrupt for the next instruction boundary.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetIRQ sets the level of the IRQ line.
func (c *CPU) SetIRQ(asserted bool) {
	c.irqLine = asserted
}

// Stall suspends the CPU for the given number of cycles (OAM DMA).
func (c *CPU) Stall(cycles int) {
	c.stall += cycles
}

// Jammed reports whether a KIL opcode halted the CPU.
func (c *CPU) Jammed() bool {
	return c.jammed
}

// Step executes one instruction, or one stall cycle, and returns the cycles used.
func (c *CPU) Step() int {
	if c.jammed {
		return 1
	}
	if c.stall > 0 {
		c.stall--
		c.Cycles++
		return 1
	}

	start := c.Cycles

	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(vectorNMI)
	} else if c.irqLine && c.P&flagInterrupt == 0 {
		c.interrupt(vectorIRQ)
	}

	op := &opcodes[c.bus.Read(c.PC)]
	addr, crossed := c.resolve(op.mode)
	c.PC += modeSize[op.mode]
	c.Cycles += uint64(op.cycles)
	if crossed && op.pageCycle {
		c.Cycles++
	}
	op.exec(c, addr, op.mode)

	return int(c.Cycles - start)
}

func (c *CPU) interrupt(vector uint16) {
	c.push16(c.PC)
	c.push((c.P | flagUnused) &^ flagBreak)
	c.P |= flagInterrupt
	c.PC = c.read16(vector)
	c.Cycles += 7
}

// resolve computes the effective address for the instruction at PC.
func (c *CPU) resolve(mode addrMode) (uint16, bool) {
	pc := c.PC
	switch mode {
	case modeImmediate:
		return pc + 1, false
	case modeZeroPage:
		return uint16(c.bus.Read(pc + 1)), false
	case modeZeroPageX:
		return uint16(c.bus.Read(pc+1) + c.X), false
	case modeZeroPageY:
		return uint16(c.bus.Read(pc+1) + c.Y), false
	case modeRelative:
		offset := int8(c.bus.Read(pc + 1))
		return pc + 2 + uint16(offset), false
	case modeAbsolute:
		return c.read16(pc + 1), false
	case modeAbsoluteX:
		base := c.read16(pc + 1)
		addr := base + uint16(c.X)
		return addr, pagesDiffer(base, addr)
	case modeAbsoluteY:
		base := c.read16(pc + 1)
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case modeIndirect:
		return c.read16Wrapped(c.read16(pc + 1)), false
	case modeIndexedIndirect:
		return c.read16ZeroPage(c.bus.Read(pc+1) + c.X), false
	case modeIndirectIndexed:
		base := c.read16ZeroPage(c.bus.Read(pc + 1))
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	}
	return 0, false
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

// read16Wrapped reproduces JMP ($xxFF) fetching the high byte from $xx00.
func (c *CPU) read16Wrapped(addr uint16) uint16 {
	next := (addr & 0xFF00) | uint16(uint8(addr)+1)
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(next))
	return hi<<8 | lo
}

func (c *CPU) read16ZeroPage(zp uint8) uint16 {
	lo := uint16(c.bus.Read(uint16(zp)))
	hi := uint16(c.bus.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

func (c *CPU) push(val uint8) {
	c.bus.Write(0x100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) pull() uint8 {
	c.SP++
	return c.bus.Read(0x100 | uint16(c.SP))
}

func (c *CPU) push16(val uint16) {
	c.push(uint8(val >> 8))
	c.push(uint8(val))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

func (c *CPU) setFlag(flag uint8, on bool) {
	if on {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(flagZero, v == 0)
	c.setFlag(flagNegative, v&0x80 != 0)
}

func (c *CPU) flag(flag uint8) bool {
	return c.P&flag != 0
}
