package emu

// Mapper is the cartridge board: PRG space from $4020 and the PPU pattern tables.
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
	Mirroring() Mirroring
}

// scanlineCounter is implemented by boards that clock an IRQ counter off PPU A12.
type scanlineCounter interface {
	Scanline()
}

// irqSource is implemented by boards that can hold the CPU IRQ line low.
type irqSource interface {
	IRQPending() bool
}

func mapperSupported(id uint8) bool {
	switch id {
	case 0, 1, 2, 3, 4, 7:
		return true
	}
	return false
}

// NewMapper returns the board implementation for the cartridge's mapper number.
func NewMapper(cart *Cartridge) (Mapper, error) {
	switch cart.MapperID {
	case 0:
		return newNROM(cart), nil
	case 1:
		return newMMC1(cart), nil
	case 2:
		return newUxROM(cart), nil
	case 3:
		return newCNROM(cart), nil
	case 4:
		return newMMC3(cart), nil
	case 7:
		return newAxROM(cart), nil
	}
	return nil, ErrUnsupportedMapper
}

// board holds what every mapper shares: the cartridge and PRG RAM at $6000.
type board struct {
	cart *Cartridge
}

func (b *board) readSRAM(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return b.cart.SRAM[addr-0x6000]
	}
	return 0
}

func (b *board) writeSRAM(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		b.cart.SRAM[addr-0x6000] = val
	}
}

// bankOffset returns the byte offset of a bank, wrapping out-of-range
// and negative (counted from the end) bank numbers.
func bankOffset(data []byte, bankSize int, bank int) int {
	count := len(data) / bankSize
	if count == 0 {
		return 0
	}
	bank %= count
	if bank < 0 {
		bank += count
	}
	return bank * bankSize
}

// NROM (mapper 0): fixed 16KB or 32KB PRG, fixed 8KB CHR.
type nrom struct {
	board
}

func newNROM(cart *Cartridge) *nrom {
	return &nrom{board{cart: cart}}
}

func (m *nrom) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		return m.cart.PRG[int(addr-0x8000)%len(m.cart.PRG)]
	}
	return m.readSRAM(addr)
}

func (m *nrom) WritePRG(addr uint16, val uint8) {
	m.writeSRAM(addr, val)
}

func (m *nrom) ReadCHR(addr uint16) uint8 {
	return m.cart.CHR[int(addr)%len(m.cart.CHR)]
}

func (m *nrom) WriteCHR(addr uint16, val uint8) {
	if m.cart.chrRAM {
		m.cart.CHR[int(addr)%len(m.cart.CHR)] = val
	}
}

func (m *nrom) Mirroring() Mirroring {
	return m.cart.Mirroring
}

// UxROM (mapper 2): switchable 16KB at $8000, last bank fixed at $C000.
type uxrom struct {
	nrom
	bank int
}

func newUxROM(cart *Cartridge) *uxrom {
	return &uxrom{nrom: nrom{board{cart: cart}}}
}

func (m *uxrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0xC000:
		return m.cart.PRG[bankOffset(m.cart.PRG, prgBankSize, -1)+int(addr-0xC000)]
	case addr >= 0x8000:
		return m.cart.PRG[bankOffset(m.cart.PRG, prgBankSize, m.bank)+int(addr-0x8000)]
	}
	return m.readSRAM(addr)
}

func (m *uxrom) WritePRG(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.bank = int(val)
		return
	}
	m.writeSRAM(addr, val)
}

// CNROM (mapper 3): fixed PRG, switchable 8KB CHR.
type cnrom struct {
	nrom
	chrBank int
}

func newCNROM(cart *Cartridge) *cnrom {
	return &cnrom{nrom: nrom{board{cart: cart}}}
}

func (m *cnrom) WritePRG(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.chrBank = int(val & 0x03)
		return
	}
	m.writeSRAM(addr, val)
}

func (m *cnrom) ReadCHR(addr uint16) uint8 {
	return m.cart.CHR[bankOffset(m.cart.CHR, chrBankSize, m.chrBank)+int(addr&0x1FFF)]
}

// AxROM (mapper 7): switchable 32KB PRG, single-screen mirroring select.
type axrom struct {
	nrom
	bank      int
	mirroring Mirroring
}

func newAxROM(cart *Cartridge) *axrom {
	return &axrom{nrom: nrom{board{cart: cart}}, mirroring: MirrorSingle0}
}

func (m *axrom) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		return m.cart.PRG[(bankOffset(m.cart.PRG, 0x8000, m.bank)+int(addr-0x8000))%len(m.cart.PRG)]
	}
	return m.readSRAM(addr)
}

func (m *axrom) WritePRG(addr uint16, val uint8) {
	if addr < 0x8000 {
		m.writeSRAM(addr, val)
		return
	}
	m.bank = int(val & 0x07)
	if val&0x10 != 0 {
		m.mirroring = MirrorSingle1
	} else {
		m.mirroring = MirrorSingle0
	}
}

func (m *axrom) Mirroring() Mirroring {
	return m.mirroring
}
