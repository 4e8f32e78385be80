package emu

// MMC3 (mapper 4): 8KB PRG / 1KB CHR banking and a scanline IRQ counter.
type mmc3 struct {
	board

	bankSelect uint8
	registers  [8]uint8
	mirroring  Mirroring

	reload     uint8
	counter    uint8
	reloadFlag bool
	irqEnable  bool
	irqPending bool

	prgOffsets [4]int
	chrOffsets [8]int
}

func newMMC3(cart *Cartridge) *mmc3 {
	m := &mmc3{board: board{cart: cart}, mirroring: cart.Mirroring}
	m.updateOffsets()
	return m
}

func (m *mmc3) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		a := addr - 0x8000
		return m.cart.PRG[m.prgOffsets[a/0x2000]+int(a%0x2000)]
	}
	return m.readSRAM(addr)
}

func (m *mmc3) WritePRG(addr uint16, val uint8) {
	if addr < 0x8000 {
		m.writeSRAM(addr, val)
		return
	}
	even := addr&1 == 0
	switch {
	case addr <= 0x9FFF && even:
		m.bankSelect = val
		m.updateOffsets()
	case addr <= 0x9FFF:
		m.registers[m.bankSelect&0x07] = val
		m.updateOffsets()
	case addr <= 0xBFFF && even:
		if m.cart.Mirroring != MirrorFour {
			if val&1 == 0 {
				m.mirroring = MirrorVertical
			} else {
				m.mirroring = MirrorHorizontal
			}
		}
	case addr <= 0xBFFF:
		// PRG RAM protect; RAM stays enabled.
	case addr <= 0xDFFF && even:
		m.reload = val
	case addr <= 0xDFFF:
		m.counter = 0
		m.reloadFlag = true
	case even:
		m.irqEnable = false
		m.irqPending = false
	default:
		m.irqEnable = true
	}
}

func (m *mmc3) updateOffsets() {
	const prgBank = 0x2000
	r := m.registers
	if m.bankSelect&0x40 == 0 {
		m.prgOffsets[0] = bankOffset(m.cart.PRG, prgBank, int(r[6]))
		m.prgOffsets[2] = bankOffset(m.cart.PRG, prgBank, -2)
	} else {
		m.prgOffsets[0] = bankOffset(m.cart.PRG, prgBank, -2)
		m.prgOffsets[2] = bankOffset(m.cart.PRG, prgBank, int(r[6]))
	}
	m.prgOffsets[1] = bankOffset(m.cart.PRG, prgBank, int(r[7]))
	m.prgOffsets[3] = bankOffset(m.cart.PRG, prgBank, -1)

	banks := [8]int{
		int(r[0] & 0xFE), int(r[0] | 0x01),
		int(r[1] & 0xFE), int(r[1] | 0x01),
		int(r[2]), int(r[3]), int(r[4]), int(r[5]),
	}
	for i := range m.chrOffsets {
		slot := i
		if m.bankSelect&0x80 != 0 {
			slot ^= 0x04
		}
		m.chrOffsets[slot] = bankOffset(m.cart.CHR, 0x400, banks[i])
	}
}

func (m *mmc3) ReadCHR(addr uint16) uint8 {
	a := addr & 0x1FFF
	return m.cart.CHR[m.chrOffsets[a/0x400]+int(a%0x400)]
}

func (m *mmc3) WriteCHR(addr uint16, val uint8) {
	if !m.cart.chrRAM {
		return
	}
	a := addr & 0x1FFF
	m.cart.CHR[m.chrOffsets[a/0x400]+int(a%0x400)] = val
}

func (m *mmc3) Mirroring() Mirroring {
	return m.mirroring
}

// Scanline clocks the IRQ counter once per rendered line.
func (m *mmc3) Scanline() {
	if m.counter == 0 || m.reloadFlag {
		m.counter = m.reload
		m.reloadFlag = false
	} else {
		m.counter--
	}
	if m.counter == 0 && m.irqEnable {
		m.irqPending = true
	}
}

func (m *mmc3) IRQPending() bool {
	return m.irqPending
}
