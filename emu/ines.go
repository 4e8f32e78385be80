package emu

import (
	"errors"
	"fmt"
)

const (
	inesHeaderSize  = 16
	inesTrainerSize = 512
	prgBankSize     = 0x4000 // 16KB PRG units
	chrBankSize     = 0x2000 // 8KB CHR units
	sramSize        = 0x2000
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

var (
	ErrInvalidHeader     = errors.New("invalid iNES header")
	ErrTruncatedROM      = errors.New("truncated iNES image")
	ErrNoPRG             = errors.New("iNES image has no PRG ROM")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

// Mirroring selects how the four logical nametables map onto VRAM.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingle0
	MirrorSingle1
	MirrorFour
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingle0:
		return "single-0"
	case MirrorSingle1:
		return "single-1"
	case MirrorFour:
		return "four-screen"
	default:
		return "unknown"
	}
}

// Cartridge is a parsed iNES image.
type Cartridge struct {
	PRG       []byte
	CHR       []byte
	SRAM      []byte
	MapperID  uint8
	Mirroring Mirroring
	Battery   bool
	PAL       bool // header TV system bit; emulation stays NTSC

	chrRAM bool
}

// ParseINES decodes an iNES 1.0 (or NES 2.0, upper bits ignored) image.
// The returned cartridge owns copies of the PRG and CHR data.
func ParseINES(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(data))
	}
	if [4]byte(data[0:4]) != inesMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidHeader)
	}

	prgBanks := int(data[4])
	chrBanks := int(data[5])
	flags6 := data[6]
	flags7 := data[7]

	nes2 := flags7&0x0C == 0x08
	// Old dumping tools wrote ASCII signatures into bytes 7-15, which
	// corrupt the upper mapper nibble. Drop it when the padding is dirty.
	if !nes2 && (data[12] != 0 || data[13] != 0 || data[14] != 0 || data[15] != 0) {
		flags7 = 0
	}

	if prgBanks == 0 {
		return nil, ErrNoPRG
	}

	cart := &Cartridge{
		MapperID: (flags6 >> 4) | (flags7 & 0xF0),
		Battery:  flags6&0x02 != 0,
		SRAM:     make([]byte, sramSize),
	}
	switch {
	case flags6&0x08 != 0:
		cart.Mirroring = MirrorFour
	case flags6&0x01 != 0:
		cart.Mirroring = MirrorVertical
	default:
		cart.Mirroring = MirrorHorizontal
	}
	if nes2 {
		cart.PAL = data[12]&0x03 == 0x01
	} else {
		cart.PAL = data[9]&0x01 != 0
	}

	offset := inesHeaderSize
	if flags6&0x04 != 0 {
		offset += inesTrainerSize
	}

	prgSize := prgBanks * prgBankSize
	chrSize := chrBanks * chrBankSize
	if len(data) < offset+prgSize+chrSize {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedROM, offset+prgSize+chrSize, len(data))
	}

	cart.PRG = make([]byte, prgSize)
	copy(cart.PRG, data[offset:offset+prgSize])
	offset += prgSize

	if chrSize == 0 {
		cart.CHR = make([]byte, chrBankSize)
		cart.chrRAM = true
	} else {
		cart.CHR = make([]byte, chrSize)
		copy(cart.CHR, data[offset:offset+chrSize])
	}

	if !mapperSupported(cart.MapperID) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, cart.MapperID)
	}

	return cart, nil
}
