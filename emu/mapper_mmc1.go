package emu

// MMC1 (mapper 1): serial-loaded control, CHR and PRG registers.
type mmc1 struct {
	board

	shift   uint8
	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8

	prgOffsets [2]int
	chrOffsets [2]int
}

func newMMC1(cart *Cartridge) *mmc1 {
	m := &mmc1{board: board{cart: cart}, shift: 0x10, control: 0x0C}
	m.updateOffsets()
	return m
}

func (m *mmc1) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		a := addr - 0x8000
		return m.cart.PRG[m.prgOffsets[a/0x4000]+int(a%0x4000)]
	}
	return m.readSRAM(addr)
}

func (m *mmc1) WritePRG(addr uint16, val uint8) {
	if addr < 0x8000 {
		m.writeSRAM(addr, val)
		return
	}
	if val&0x80 != 0 {
		m.shift = 0x10
		m.control |= 0x0C
		m.updateOffsets()
		return
	}
	complete := m.shift&1 == 1
	m.shift >>= 1
	m.shift |= (val & 1) << 4
	if complete {
		m.writeRegister(addr, m.shift)
		m.shift = 0x10
	}
}

func (m *mmc1) writeRegister(addr uint16, val uint8) {
	switch {
	case addr <= 0x9FFF:
		m.control = val
	case addr <= 0xBFFF:
		m.chr0 = val
	case addr <= 0xDFFF:
		m.chr1 = val
	default:
		m.prg = val & 0x0F
	}
	m.updateOffsets()
}

func (m *mmc1) updateOffsets() {
	switch (m.control >> 2) & 0x03 {
	case 0, 1:
		bank := int(m.prg & 0x0E)
		m.prgOffsets[0] = bankOffset(m.cart.PRG, prgBankSize, bank)
		m.prgOffsets[1] = bankOffset(m.cart.PRG, prgBankSize, bank+1)
	case 2:
		m.prgOffsets[0] = 0
		m.prgOffsets[1] = bankOffset(m.cart.PRG, prgBankSize, int(m.prg))
	case 3:
		m.prgOffsets[0] = bankOffset(m.cart.PRG, prgBankSize, int(m.prg))
		m.prgOffsets[1] = bankOffset(m.cart.PRG, prgBankSize, -1)
	}

	if m.control&0x10 == 0 {
		bank := int(m.chr0 & 0x1E)
		m.chrOffsets[0] = bankOffset(m.cart.CHR, 0x1000, bank)
		m.chrOffsets[1] = bankOffset(m.cart.CHR, 0x1000, bank+1)
	} else {
		m.chrOffsets[0] = bankOffset(m.cart.CHR, 0x1000, int(m.chr0))
		m.chrOffsets[1] = bankOffset(m.cart.CHR, 0x1000, int(m.chr1))
	}
}

func (m *mmc1) ReadCHR(addr uint16) uint8 {
	a := addr & 0x1FFF
	return m.cart.CHR[m.chrOffsets[a/0x1000]+int(a%0x1000)]
}

func (m *mmc1) WriteCHR(addr uint16, val uint8) {
	if !m.cart.chrRAM {
		return
	}
	a := addr & 0x1FFF
	m.cart.CHR[m.chrOffsets[a/0x1000]+int(a%0x1000)] = val
}

func (m *mmc1) Mirroring() Mirroring {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingle0
	case 1:
		return MirrorSingle1
	case 2:
		return MirrorVertical
	}
	return MirrorHorizontal
}
