package emu

type execFunc func(c *CPU, addr uint16, mode addrMode)

type instruction struct {
	name      string
	mode      addrMode
	cycles    uint8
	pageCycle bool
	exec      execFunc
}

type opcodeDef struct {
	code      uint8
	mode      addrMode
	cycles    uint8
	pageCycle bool
}

func o(code uint8, mode addrMode, cycles uint8) opcodeDef {
	return opcodeDef{code: code, mode: mode, cycles: cycles}
}

// p marks an opcode that takes an extra cycle when indexing crosses a page.
func p(code uint8, mode addrMode, cycles uint8) opcodeDef {
	return opcodeDef{code: code, mode: mode, cycles: cycles, pageCycle: true}
}

var opcodes [256]instruction

func define(name string, exec execFunc, defs ...opcodeDef) {
	for _, d := range defs {
		opcodes[d.code] = instruction{
			name:      name,
			mode:      d.mode,
			cycles:    d.cycles,
			pageCycle: d.pageCycle,
			exec:      exec,
		}
	}
}

func init() {
	// Anything not defined below locks up the CPU.
	for i := range opcodes {
		opcodes[i] = instruction{name: "KIL", mode: modeImplied, cycles: 2, exec: (*CPU).kil}
	}

	define("ADC", (*CPU).adc,
		o(0x69, modeImmediate, 2), o(0x65, modeZeroPage, 3), o(0x75, modeZeroPageX, 4), o(0x6D, modeAbsolute, 4),
		p(0x7D, modeAbsoluteX, 4), p(0x79, modeAbsoluteY, 4), o(0x61, modeIndexedIndirect, 6), p(0x71, modeIndirectIndexed, 5))
	define("AND", (*CPU).and,
		o(0x29, modeImmediate, 2), o(0x25, modeZeroPage, 3), o(0x35, modeZeroPageX, 4), o(0x2D, modeAbsolute, 4),
		p(0x3D, modeAbsoluteX, 4), p(0x39, modeAbsoluteY, 4), o(0x21, modeIndexedIndirect, 6), p(0x31, modeIndirectIndexed, 5))
	define("ASL", (*CPU).asl,
		o(0x0A, modeAccumulator, 2), o(0x06, modeZeroPage, 5), o(0x16, modeZeroPageX, 6), o(0x0E, modeAbsolute, 6),
		o(0x1E, modeAbsoluteX, 7))
	define("BCC", (*CPU).bcc, o(0x90, modeRelative, 2))
	define("BCS", (*CPU).bcs, o(0xB0, modeRelative, 2))
	define("BEQ", (*CPU).beq, o(0xF0, modeRelative, 2))
	define("BMI", (*CPU).bmi, o(0x30, modeRelative, 2))
	define("BNE", (*CPU).bne, o(0xD0, modeRelative, 2))
	define("BPL", (*CPU).bpl, o(0x10, modeRelative, 2))
	define("BVC", (*CPU).bvc, o(0x50, modeRelative, 2))
	define("BVS", (*CPU).bvs, o(0x70, modeRelative, 2))
	define("BIT", (*CPU).bit, o(0x24, modeZeroPage, 3), o(0x2C, modeAbsolute, 4))
	define("BRK", (*CPU).brk, o(0x00, modeImplied, 7))
	define("CLC", (*CPU).clc, o(0x18, modeImplied, 2))
	define("CLD", (*CPU).cld, o(0xD8, modeImplied, 2))
	define("CLI", (*CPU).cli, o(0x58, modeImplied, 2))
	define("CLV", (*CPU).clv, o(0xB8, modeImplied, 2))
	define("CMP", (*CPU).cmp,
		o(0xC9, modeImmediate, 2), o(0xC5, modeZeroPage, 3), o(0xD5, modeZeroPageX, 4), o(0xCD, modeAbsolute, 4),
		p(0xDD, modeAbsoluteX, 4), p(0xD9, modeAbsoluteY, 4), o(0xC1, modeIndexedIndirect, 6), p(0xD1, modeIndirectIndexed, 5))
	define("CPX", (*CPU).cpx, o(0xE0, modeImmediate, 2), o(0xE4, modeZeroPage, 3), o(0xEC, modeAbsolute, 4))
	define("CPY", (*CPU).cpy, o(0xC0, modeImmediate, 2), o(0xC4, modeZeroPage, 3), o(0xCC, modeAbsolute, 4))
	define("DEC", (*CPU).dec,
		o(0xC6, modeZeroPage, 5), o(0xD6, modeZeroPageX, 6), o(0xCE, modeAbsolute, 6), o(0xDE, modeAbsoluteX, 7))
	define("DEX", (*CPU).dex, o(0xCA, modeImplied, 2))
	define("DEY", (*CPU).dey, o(0x88, modeImplied, 2))
	define("EOR", (*CPU).eor,
		o(0x49, modeImmediate, 2), o(0x45, modeZeroPage, 3), o(0x55, modeZeroPageX, 4), o(0x4D, modeAbsolute, 4),
		p(0x5D, modeAbsoluteX, 4), p(0x59, modeAbsoluteY, 4), o(0x41, modeIndexedIndirect, 6), p(0x51, modeIndirectIndexed, 5))
	define("INC", (*CPU).inc,
		o(0xE6, modeZeroPage, 5), o(0xF6, modeZeroPageX, 6), o(0xEE, modeAbsolute, 6), o(0xFE, modeAbsoluteX, 7))
	define("INX", (*CPU).inx, o(0xE8, modeImplied, 2))
	define("INY", (*CPU).iny, o(0xC8, modeImplied, 2))
	define("JMP", (*CPU).jmp, o(0x4C, modeAbsolute, 3), o(0x6C, modeIndirect, 5))
	define("JSR", (*CPU).jsr, o(0x20, modeAbsolute, 6))
	define("LDA", (*CPU).lda,
		o(0xA9, modeImmediate, 2), o(0xA5, modeZeroPage, 3), o(0xB5, modeZeroPageX, 4), o(0xAD, modeAbsolute, 4),
		p(0xBD, modeAbsoluteX, 4), p(0xB9, modeAbsoluteY, 4), o(0xA1, modeIndexedIndirect, 6), p(0xB1, modeIndirectIndexed, 5))
	define("LDX", (*CPU).ldx,
		o(0xA2, modeImmediate, 2), o(0xA6, modeZeroPage, 3), o(0xB6, modeZeroPageY, 4), o(0xAE, modeAbsolute, 4),
		p(0xBE, modeAbsoluteY, 4))
	define("LDY", (*CPU).ldy,
		o(0xA0, modeImmediate, 2), o(0xA4, modeZeroPage, 3), o(0xB4, modeZeroPageX, 4), o(0xAC, modeAbsolute, 4),
		p(0xBC, modeAbsoluteX, 4))
	define("LSR", (*CPU).lsr,
		o(0x4A, modeAccumulator, 2), o(0x46, modeZeroPage, 5), o(0x56, modeZeroPageX, 6), o(0x4E, modeAbsolute, 6),
		o(0x5E, modeAbsoluteX, 7))
	define("ORA", (*CPU).ora,
		o(0x09, modeImmediate, 2), o(0x05, modeZeroPage, 3), o(0x15, modeZeroPageX, 4), o(0x0D, modeAbsolute, 4),
		p(0x1D, modeAbsoluteX, 4), p(0x19, modeAbsoluteY, 4), o(0x01, modeIndexedIndirect, 6), p(0x11, modeIndirectIndexed, 5))
	define("PHA", (*CPU).pha, o(0x48, modeImplied, 3))
	define("PHP", (*CPU).php, o(0x08, modeImplied, 3))
	define("PLA", (*CPU).pla, o(0x68, modeImplied, 4))
	define("PLP", (*CPU).plp, o(0x28, modeImplied, 4))
	define("ROL", (*CPU).rol,
		o(0x2A, modeAccumulator, 2), o(0x26, modeZeroPage, 5), o(0x36, modeZeroPageX, 6), o(0x2E, modeAbsolute, 6),
		o(0x3E, modeAbsoluteX, 7))
	define("ROR", (*CPU).ror,
		o(0x6A, modeAccumulator, 2), o(0x66, modeZeroPage, 5), o(0x76, modeZeroPageX, 6), o(0x6E, modeAbsolute, 6),
		o(0x7E, modeAbsoluteX, 7))
	define("RTI", (*CPU).rti, o(0x40, modeImplied, 6))
	define("RTS", (*CPU).rts, o(0x60, modeImplied, 6))
	define("SBC", (*CPU).sbc,
		o(0xE9, modeImmediate, 2), o(0xE5, modeZeroPage, 3), o(0xF5, modeZeroPageX, 4), o(0xED, modeAbsolute, 4),
		p(0xFD, modeAbsoluteX, 4), p(0xF9, modeAbsoluteY, 4), o(0xE1, modeIndexedIndirect, 6), p(0xF1, modeIndirectIndexed, 5),
		o(0xEB, modeImmediate, 2))
	define("SEC", (*CPU).sec, o(0x38, modeImplied, 2))
	define("SED", (*CPU).sed, o(0xF8, modeImplied, 2))
	define("SEI", (*CPU).sei, o(0x78, modeImplied, 2))
	define("STA", (*CPU).sta,
		o(0x85, modeZeroPage, 3), o(0x95, modeZeroPageX, 4), o(0x8D, modeAbsolute, 4), o(0x9D, modeAbsoluteX, 5),
		o(0x99, modeAbsoluteY, 5), o(0x81, modeIndexedIndirect, 6), o(0x91, modeIndirectIndexed, 6))
	define("STX", (*CPU).stx, o(0x86, modeZeroPage, 3), o(0x96, modeZeroPageY, 4), o(0x8E, modeAbsolute, 4))
	define("STY", (*CPU).sty, o(0x84, modeZeroPage, 3), o(0x94, modeZeroPageX, 4), o(0x8C, modeAbsolute, 4))
	define("TAX", (*CPU).tax, o(0xAA, modeImplied, 2))
	define("TAY", (*CPU).tay, o(0xA8, modeImplied, 2))
	define("TSX", (*CPU).tsx, o(0xBA, modeImplied, 2))
	define("TXA", (*CPU).txa, o(0x8A, modeImplied, 2))
	define("TXS", (*CPU).txs, o(0x9A, modeImplied, 2))
	define("TYA", (*CPU).tya, o(0x98, modeImplied, 2))

	// Unofficial opcodes used by commercial and homebrew games.
	define("NOP", (*CPU).nop,
		o(0xEA, modeImplied, 2),
		o(0x1A, modeImplied, 2), o(0x3A, modeImplied, 2), o(0x5A, modeImplied, 2),
		o(0x7A, modeImplied, 2), o(0xDA, modeImplied, 2), o(0xFA, modeImplied, 2),
		o(0x80, modeImmediate, 2), o(0x82, modeImmediate, 2), o(0x89, modeImmediate, 2),
		o(0xC2, modeImmediate, 2), o(0xE2, modeImmediate, 2),
		o(0x04, modeZeroPage, 3), o(0x44, modeZeroPage, 3), o(0x64, modeZeroPage, 3),
		o(0x14, modeZeroPageX, 4), o(0x34, modeZeroPageX, 4), o(0x54, modeZeroPageX, 4),
		o(0x74, modeZeroPageX, 4), o(0xD4, modeZeroPageX, 4), o(0xF4, modeZeroPageX, 4),
		o(0x0C, modeAbsolute, 4),
		p(0x1C, modeAbsoluteX, 4), p(0x3C, modeAbsoluteX, 4), p(0x5C, modeAbsoluteX, 4),
		p(0x7C, modeAbsoluteX, 4), p(0xDC, modeAbsoluteX, 4), p(0xFC, modeAbsoluteX, 4),
		// Unstable store/transfer opcodes run as NOPs of the right length.
		o(0x8B, modeImmediate, 2), o(0x93, modeIndirectIndexed, 6), o(0x9B, modeAbsoluteY, 5),
		o(0x9C, modeAbsoluteX, 5), o(0x9E, modeAbsoluteY, 5), o(0x9F, modeAbsoluteY, 5),
		p(0xBB, modeAbsoluteY, 4))
	define("LAX", (*CPU).lax,
		o(0xA7, modeZeroPage, 3), o(0xB7, modeZeroPageY, 4), o(0xAF, modeAbsolute, 4), p(0xBF, modeAbsoluteY, 4),
		o(0xA3, modeIndexedIndirect, 6), p(0xB3, modeIndirectIndexed, 5), o(0xAB, modeImmediate, 2))
	define("SAX", (*CPU).sax,
		o(0x87, modeZeroPage, 3), o(0x97, modeZeroPageY, 4), o(0x8F, modeAbsolute, 4), o(0x83, modeIndexedIndirect, 6))
	define("DCP", (*CPU).dcp,
		o(0xC7, modeZeroPage, 5), o(0xD7, modeZeroPageX, 6), o(0xCF, modeAbsolute, 6), o(0xDF, modeAbsoluteX, 7),
		o(0xDB, modeAbsoluteY, 7), o(0xC3, modeIndexedIndirect, 8), o(0xD3, modeIndirectIndexed, 8))
	define("ISB", (*CPU).isb,
		o(0xE7, modeZeroPage, 5), o(0xF7, modeZeroPageX, 6), o(0xEF, modeAbsolute, 6), o(0xFF, modeAbsoluteX, 7),
		o(0xFB, modeAbsoluteY, 7), o(0xE3, modeIndexedIndirect, 8), o(0xF3, modeIndirectIndexed, 8))
	define("SLO", (*CPU).slo,
		o(0x07, modeZeroPage, 5), o(0x17, modeZeroPageX, 6), o(0x0F, modeAbsolute, 6), o(0x1F, modeAbsoluteX, 7),
		o(0x1B, modeAbsoluteY, 7), o(0x03, modeIndexedIndirect, 8), o(0x13, modeIndirectIndexed, 8))
	define("RLA", (*CPU).rla,
		o(0x27, modeZeroPage, 5), o(0x37, modeZeroPageX, 6), o(0x2F, modeAbsolute, 6), o(0x3F, modeAbsoluteX, 7),
		o(0x3B, modeAbsoluteY, 7), o(0x23, modeIndexedIndirect, 8), o(0x33, modeIndirectIndexed, 8))
	define("SRE", (*CPU).sre,
		o(0x47, modeZeroPage, 5), o(0x57, modeZeroPageX, 6), o(0x4F, modeAbsolute, 6), o(0x5F, modeAbsoluteX, 7),
		o(0x5B, modeAbsoluteY, 7), o(0x43, modeIndexedIndirect, 8), o(0x53, modeIndirectIndexed, 8))
	define("RRA", (*CPU).rra,
		o(0x67, modeZeroPage, 5), o(0x77, modeZeroPageX, 6), o(0x6F, modeAbsolute, 6), o(0x7F, modeAbsoluteX, 7),
		o(0x7B, modeAbsoluteY, 7), o(0x63, modeIndexedIndirect, 8), o(0x73, modeIndirectIndexed, 8))
	define("ANC", (*CPU).anc, o(0x0B, modeImmediate, 2), o(0x2B, modeImmediate, 2))
	define("ALR", (*CPU).alr, o(0x4B, modeImmediate, 2))
	define("ARR", (*CPU).arr, o(0x6B, modeImmediate, 2))
	define("AXS", (*CPU).axs, o(0xCB, modeImmediate, 2))
}

// Load/store and transfers

func (c *CPU) lda(addr uint16, _ addrMode) { c.A = c.bus.Read(addr); c.setZN(c.A) }
func (c *CPU) ldx(addr uint16, _ addrMode) { c.X = c.bus.Read(addr); c.setZN(c.X) }
func (c *CPU) ldy(addr uint16, _ addrMode) { c.Y = c.bus.Read(addr); c.setZN(c.Y) }
func (c *CPU) sta(addr uint16, _ addrMode) { c.bus.Write(addr, c.A) }
func (c *CPU) stx(addr uint16, _ addrMode) { c.bus.Write(addr, c.X) }
func (c *CPU) sty(addr uint16, _ addrMode) { c.bus.Write(addr, c.Y) }
func (c *CPU) tax(uint16, addrMode)        { c.X = c.A; c.setZN(c.X) }
func (c *CPU) tay(uint16, addrMode)        { c.Y = c.A; c.setZN(c.Y) }
func (c *CPU) tsx(uint16, addrMode)        { c.X = c.SP; c.setZN(c.X) }
func (c *CPU) txa(uint16, addrMode)        { c.A = c.X; c.setZN(c.A) }
func (c *CPU) txs(uint16, addrMode)        { c.SP = c.X }
func (c *CPU) tya(uint16, addrMode)        { c.A = c.Y; c.setZN(c.A) }

// Stack

func (c *CPU) pha(uint16, addrMode) { c.push(c.A) }
func (c *CPU) php(uint16, addrMode) { c.push(c.P | flagBreak | flagUnused) }
func (c *CPU) pla(uint16, addrMode) { c.A = c.pull(); c.setZN(c.A) }
func (c *CPU) plp(uint16, addrMode) { c.P = c.pull()&^flagBreak | flagUnused }

// Flags

func (c *CPU) clc(uint16, addrMode) { c.P &^= flagCarry }
func (c *CPU) cld(uint16, addrMode) { c.P &^= flagDecimal }
func (c *CPU) cli(uint16, addrMode) { c.P &^= flagInterrupt }
func (c *CPU) clv(uint16, addrMode) { c.P &^= flagOverflow }
func (c *CPU) sec(uint16, addrMode) { c.P |= flagCarry }
func (c *CPU) sed(uint16, addrMode) { c.P |= flagDecimal }
func (c *CPU) sei(uint16, addrMode) { c.P |= flagInterrupt }

// Arithmetic and logic

func (c *CPU) addWithCarry(v uint8) {
	a := c.A
	sum := uint16(a) + uint16(v) + uint16(c.P&flagCarry)
	c.A = uint8(sum)
	c.setFlag(flagCarry, sum > 0xFF)
	c.setFlag(flagOverflow, (a^v)&0x80 == 0 && (a^c.A)&0x80 != 0)
	c.setZN(c.A)
}

func (c *CPU) compare(reg, v uint8) {
	c.setFlag(flagCarry, reg >= v)
	c.setZN(reg - v)
}

func (c *CPU) adc(addr uint16, _ addrMode) { c.addWithCarry(c.bus.Read(addr)) }
func (c *CPU) sbc(addr uint16, _ addrMode) { c.addWithCarry(^c.bus.Read(addr)) }
func (c *CPU) and(addr uint16, _ addrMode) { c.A &= c.bus.Read(addr); c.setZN(c.A) }
func (c *CPU) ora(addr uint16, _ addrMode) { c.A |= c.bus.Read(addr); c.setZN(c.A) }
func (c *CPU) eor(addr uint16, _ addrMode) { c.A ^= c.bus.Read(addr); c.setZN(c.A) }
func (c *CPU) cmp(addr uint16, _ addrMode) { c.compare(c.A, c.bus.Read(addr)) }
func (c *CPU) cpx(addr uint16, _ addrMode) { c.compare(c.X, c.bus.Read(addr)) }
func (c *CPU) cpy(addr uint16, _ addrMode) { c.compare(c.Y, c.bus.Read(addr)) }

func (c *CPU) bit(addr uint16, _ addrMode) {
	v := c.bus.Read(addr)
	c.setFlag(flagOverflow, v&0x40 != 0)
	c.setFlag(flagNegative, v&0x80 != 0)
	c.setFlag(flagZero, v&c.A == 0)
}

func (c *CPU) inx(uint16, addrMode) { c.X++; c.setZN(c.X) }
func (c *CPU) iny(uint16, addrMode) { c.Y++; c.setZN(c.Y) }
func (c *CPU) dex(uint16, addrMode) { c.X--; c.setZN(c.X) }
func (c *CPU) dey(uint16, addrMode) { c.Y--; c.setZN(c.Y) }

// Read-modify-write

// modify applies fn to the accumulator or to memory and returns the result.
func (c *CPU) modify(addr uint16, mode addrMode, fn func(uint8) uint8) uint8 {
	if mode == modeAccumulator {
		c.A = fn(c.A)
		return c.A
	}
	v := fn(c.bus.Read(addr))
	c.bus.Write(addr, v)
	return v
}

func (c *CPU) shiftLeft(v uint8) uint8 {
	c.setFlag(flagCarry, v&0x80 != 0)
	return v << 1
}

func (c *CPU) shiftRight(v uint8) uint8 {
	c.setFlag(flagCarry, v&0x01 != 0)
	return v >> 1
}

func (c *CPU) rotateLeft(v uint8) uint8 {
	carry := c.P & flagCarry
	c.setFlag(flagCarry, v&0x80 != 0)
	return v<<1 | carry
}

func (c *CPU) rotateRight(v uint8) uint8 {
	carry := c.P & flagCarry
	c.setFlag(flagCarry, v&0x01 != 0)
	return v>>1 | carry<<7
}

func increment(v uint8) uint8 { return v + 1 }
func decrement(v uint8) uint8 { return v - 1 }

func (c *CPU) asl(addr uint16, mode addrMode) { c.setZN(c.modify(addr, mode, c.shiftLeft)) }
func (c *CPU) lsr(addr uint16, mode addrMode) { c.setZN(c.modify(addr, mode, c.shiftRight)) }
func (c *CPU) rol(addr uint16, mode addrMode) { c.setZN(c.modify(addr, mode, c.rotateLeft)) }
func (c *CPU) ror(addr uint16, mode addrMode) { c.setZN(c.modify(addr, mode, c.rotateRight)) }
func (c *CPU) inc(addr uint16, mode addrMode) { c.setZN(c.modify(addr, mode, increment)) }
func (c *CPU) dec(addr uint16, mode addrMode) { c.setZN(c.modify(addr, mode, decrement)) }

// Control flow

func (c *CPU) branch(cond bool, addr uint16) {
	if !cond {
		return
	}
	c.Cycles++
	if pagesDiffer(c.PC, addr) {
		c.Cycles++
	}
	c.PC = addr
}

func (c *CPU) bcc(addr uint16, _ addrMode) { c.branch(!c.flag(flagCarry), addr) }
func (c *CPU) bcs(addr uint16, _ addrMode) { c.branch(c.flag(flagCarry), addr) }
func (c *CPU) beq(addr uint16, _ addrMode) { c.branch(c.flag(flagZero), addr) }
func (c *CPU) bne(addr uint16, _ addrMode) { c.branch(!c.flag(flagZero), addr) }
func (c *CPU) bmi(addr uint16, _ addrMode) { c.branch(c.flag(flagNegative), addr) }
func (c *CPU) bpl(addr uint16, _ addrMode) { c.branch(!c.flag(flagNegative), addr) }
func (c *CPU) bvc(addr uint16, _ addrMode) { c.branch(!c.flag(flagOverflow), addr) }
func (c *CPU) bvs(addr uint16, _ addrMode) { c.branch(c.flag(flagOverflow), addr) }

func (c *CPU) jmp(addr uint16, _ addrMode) { c.PC = addr }

func (c *CPU) jsr(addr uint16, _ addrMode) {
	c.push16(c.PC - 1)
	c.PC = addr
}

func (c *CPU) rts(uint16, addrMode) { c.PC = c.pull16() + 1 }

func (c *CPU) rti(uint16, addrMode) {
	c.P = c.pull()&^flagBreak | flagUnused
	c.PC = c.pull16()
}

// brk pushes the address after its padding byte.
func (c *CPU) brk(uint16, addrMode) {
	c.push16(c.PC + 1)
	c.push(c.P | flagBreak | flagUnused)
	c.P |= flagInterrupt
	c.PC = c.read16(vectorIRQ)
}

func (c *CPU) nop(uint16, addrMode) {}

func (c *CPU) kil(uint16, addrMode) {
	c.PC--
	c.jammed = true
}

// Unofficial combinations

func (c *CPU) lax(addr uint16, _ addrMode) {
	c.A = c.bus.Read(addr)
	c.X = c.A
	c.setZN(c.A)
}

func (c *CPU) sax(addr uint16, _ addrMode) { c.bus.Write(addr, c.A&c.X) }

func (c *CPU) dcp(addr uint16, mode addrMode) { c.compare(c.A, c.modify(addr, mode, decrement)) }
func (c *CPU) isb(addr uint16, mode addrMode) { c.addWithCarry(^c.modify(addr, mode, increment)) }

func (c *CPU) slo(addr uint16, mode addrMode) {
	c.A |= c.modify(addr, mode, c.shiftLeft)
	c.setZN(c.A)
}

func (c *CPU) rla(addr uint16, mode addrMode) {
	c.A &= c.modify(addr, mode, c.rotateLeft)
	c.setZN(c.A)
}

func (c *CPU) sre(addr uint16, mode addrMode) {
	c.A ^= c.modify(addr, mode, c.shiftRight)
	c.setZN(c.A)
}

func (c *CPU) rra(addr uint16, mode addrMode) { c.addWithCarry(c.modify(addr, mode, c.rotateRight)) }

func (c *CPU) anc(addr uint16, _ addrMode) {
	c.A &= c.bus.Read(addr)
	c.setZN(c.A)
	c.setFlag(flagCarry, c.A&0x80 != 0)
}

func (c *CPU) alr(addr uint16, _ addrMode) {
	c.A &= c.bus.Read(addr)
	c.setFlag(flagCarry, c.A&0x01 != 0)
	c.A >>= 1
	c.setZN(c.A)
}

func (c *CPU) arr(addr uint16, _ addrMode) {
	c.A &= c.bus.Read(addr)
	c.A = c.A>>1 | (c.P&flagCarry)<<7
	c.setZN(c.A)
	c.setFlag(flagCarry, c.A&0x40 != 0)
	c.setFlag(flagOverflow, (c.A>>6^c.A>>5)&0x01 != 0)
}

func (c *CPU) axs(addr uint16, _ addrMode) {
	v := c.bus.Read(addr)
	t := c.A & c.X
	c.setFlag(flagCarry, t >= v)
	c.X = t - v
	c.setZN(c.X)
}
