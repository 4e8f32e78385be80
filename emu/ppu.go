package emu

const (
	ScreenWidth  = 256
	ScreenHeight = 240

	dotsPerLine     = 341
	linesPerFrame   = 262
	vblankLine      = 241
	prerenderLine   = 261
	mapperClockDot  = 280
	spritesPerLine  = 8
	spritesInMemory = 64
)

// nametableLayout maps each logical nametable to a 1KB VRAM page, per mirroring mode.
var nametableLayout = [...][4]uint16{
	MirrorHorizontal: {0, 0, 1, 1},
	MirrorVertical:   {0, 1, 0, 1},
	MirrorSingle0:    {0, 0, 0, 0},
	MirrorSingle1:    {1, 1, 1, 1},
	MirrorFour:       {0, 1, 2, 3},
}

// PPU is a dot-stepped 2C02. The frame buffer holds palette indices.
type PPU struct {
	mapper Mapper
	nmi    func()

	Cycle    int // 0-340
	Scanline int // 0-261
	Frame    uint64

	vram    [0x1000]uint8
	palette [32]uint8
	oam     [256]uint8
	screen  [ScreenWidth * ScreenHeight]uint8

	// Loopy scroll registers
	v, t uint16
	x    uint8
	w    bool
	odd  bool

	openBus      uint8
	readBuffer   uint8
	oamAddr      uint8
	nmiOccurred  bool
	nmiOutput    bool
	spriteZero   bool
	overflow     bool
	ctrl         uint8
	mask         uint8
	nametableVal uint8
	attrVal      uint8
	lowTile      uint8
	highTile     uint8
	tileData     uint64

	spriteCount     int
	spritePatterns  [spritesPerLine]uint32
	spritePositions [spritesPerLine]uint8
	spriteBehind    [spritesPerLine]bool
	spriteIndexes   [spritesPerLine]uint8
}

// NewPPU creates a PPU reading pattern data through mapper and
// raising NMI through nmi.
func NewPPU(mapper Mapper, nmi func()) *PPU {
	p := &PPU{mapper: mapper, nmi: nmi}
	p.Reset()
	return p
}

// Reset returns the PPU to its power-up state at the start of the pre-render line.
func (p *PPU) Reset() {
	p.Cycle = 340
	p.Scanline = 240
	p.Frame = 0
	p.ctrl = 0
	p.mask = 0
	p.oamAddr = 0
	p.w = false
	p.odd = false
}

func (p *PPU) showBackground() bool     { return p.mask&0x08 != 0 }
func (p *PPU) showSprites() bool        { return p.mask&0x10 != 0 }
func (p *PPU) showLeftBackground() bool { return p.mask&0x02 != 0 }
func (p *PPU) showLeftSprites() bool    { return p.mask&0x04 != 0 }
func (p *PPU) greyscale() bool          { return p.mask&0x01 != 0 }
func (p *PPU) renderingEnabled() bool   { return p.mask&0x18 != 0 }

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) tallSprites() bool { return p.ctrl&0x20 != 0 }

// PaletteIndex returns the 6-bit color index rendered at (x, y) in the last frame.
func (p *PPU) PaletteIndex(x, y int) uint8 {
	return p.screen[y*ScreenWidth+x]
}

// =============================================================================
// CPU-visible registers
// =============================================================================

// ReadRegister handles CPU reads of $2000-$2007.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002:
		status := p.openBus & 0x1F
		if p.overflow {
			status |= 0x20
		}
		if p.spriteZero {
			status |= 0x40
		}
		if p.nmiOccurred {
			status |= 0x80
		}
		p.nmiOccurred = false
		p.w = false
		p.openBus = status
		return status
	case 0x2004:
		p.openBus = p.oam[p.oamAddr]
		return p.openBus
	case 0x2007:
		val := p.read(p.v)
		if p.v&0x3FFF < 0x3F00 {
			val, p.readBuffer = p.readBuffer, val
		} else {
			p.readBuffer = p.read(p.v - 0x1000)
		}
		p.v += p.vramIncrement()
		p.openBus = val
		return val
	}
	return p.openBus
}

// WriteRegister handles CPU writes to $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.openBus = val
	switch addr {
	case 0x2000:
		wasEnabled := p.nmiOutput
		p.ctrl = val
		p.nmiOutput = val&0x80 != 0
		p.t = (p.t & 0xF3FF) | uint16(val&0x03)<<10
		if !wasEnabled && p.nmiOutput && p.nmiOccurred {
			p.nmi()
		}
	case 0x2001:
		p.mask = val
	case 0x2003:
		p.oamAddr = val
	case 0x2004:
		p.WriteOAM(val)
	case 0x2005:
		if !p.w {
			p.t = (p.t & 0xFFE0) | uint16(val>>3)
			p.x = val & 0x07
		} else {
			p.t = (p.t & 0x8FFF) | uint16(val&0x07)<<12
			p.t = (p.t & 0xFC1F) | uint16(val&0xF8)<<2
		}
		p.w = !p.w
	case 0x2006:
		if !p.w {
			p.t = (p.t & 0x80FF) | uint16(val&0x3F)<<8
		} else {
			p.t = (p.t & 0xFF00) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case 0x2007:
		p.write(p.v, val)
		p.v += p.vramIncrement()
	}
}

// WriteOAM stores one byte at OAMADDR and advances it; used by $2004 and DMA.
func (p *PPU) WriteOAM(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

// =============================================================================
// PPU address space
// =============================================================================

func (p *PPU) nametableAddr(addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	table := addr / 0x400
	return nametableLayout[p.mapper.Mirroring()][table]*0x400 + addr%0x400
}

func paletteAddr(addr uint16) uint16 {
	addr %= 32
	if addr >= 16 && addr%4 == 0 {
		addr -= 16
	}
	return addr
}

func (p *PPU) read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.mapper.ReadCHR(addr)
	case addr < 0x3F00:
		return p.vram[p.nametableAddr(addr)]
	default:
		return p.palette[paletteAddr(addr)]
	}
}

func (p *PPU) write(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.mapper.WriteCHR(addr, val)
	case addr < 0x3F00:
		p.vram[p.nametableAddr(addr)] = val
	default:
		p.palette[paletteAddr(addr)] = val & 0x3F
	}
}

// =============================================================================
// Scrolling
// =============================================================================

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &= 0xFFE0
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &= 0x8FFF
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v & 0xFC1F) | y<<5
}

func (p *PPU) copyX() { p.v = (p.v & 0xFBE0) | (p.t & 0x041F) }
func (p *PPU) copyY() { p.v = (p.v & 0x841F) | (p.t & 0x7BE0) }

// =============================================================================
// Background fetch
// =============================================================================

func (p *PPU) fetchNametable() {
	p.nametableVal = p.read(0x2000 | (p.v & 0x0FFF))
}

func (p *PPU) fetchAttribute() {
	v := p.v
	addr := 0x23C0 | (v & 0x0C00) | ((v >> 4) & 0x38) | ((v >> 2) & 0x07)
	shift := ((v >> 4) & 0x04) | (v & 0x02)
	p.attrVal = ((p.read(addr) >> shift) & 0x03) << 2
}

func (p *PPU) patternAddr() uint16 {
	fineY := (p.v >> 12) & 0x07
	table := uint16(p.ctrl&0x10) << 8
	return table + uint16(p.nametableVal)*16 + fineY
}

func (p *PPU) fetchLowTile()  { p.lowTile = p.read(p.patternAddr()) }
func (p *PPU) fetchHighTile() { p.highTile = p.read(p.patternAddr() + 8) }

func (p *PPU) storeTile() {
	var data uint32
	lo, hi := p.lowTile, p.highTile
	for i := 0; i < 8; i++ {
		p1 := (lo & 0x80) >> 7
		p2 := (hi & 0x80) >> 6
		lo <<= 1
		hi <<= 1
		data = data<<4 | uint32(p.attrVal|p1|p2)
	}
	p.tileData |= uint64(data)
}

func (p *PPU) backgroundPixel() uint8 {
	if !p.showBackground() {
		return 0
	}
	data := uint32(p.tileData>>32) >> ((7 - p.x) * 4)
	return uint8(data & 0x0F)
}

// =============================================================================
// Sprites
// =============================================================================

func (p *PPU) spritePixel() (int, uint8) {
	if !p.showSprites() {
		return 0, 0
	}
	for i := 0; i < p.spriteCount; i++ {
		offset := (p.Cycle - 1) - int(p.spritePositions[i])
		if offset < 0 || offset > 7 {
			continue
		}
		offset = 7 - offset
		color := uint8((p.spritePatterns[i] >> uint(offset*4)) & 0x0F)
		if color%4 == 0 {
			continue
		}
		return i, color
	}
	return 0, 0
}

func (p *PPU) fetchSpritePattern(i, row int) uint32 {
	tile := uint16(p.oam[i*4+1])
	attr := p.oam[i*4+2]

	var addr uint16
	if !p.tallSprites() {
		if attr&0x80 != 0 {
			row = 7 - row
		}
		table := uint16(p.ctrl&0x08) << 9
		addr = table + tile*16 + uint16(row)
	} else {
		if attr&0x80 != 0 {
			row = 15 - row
		}
		table := (tile & 0x01) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		addr = table + tile*16 + uint16(row)
	}

	palette := (attr & 0x03) << 2
	lo := p.read(addr)
	hi := p.read(addr + 8)

	var data uint32
	for b := 0; b < 8; b++ {
		var p1, p2 uint8
		if attr&0x40 != 0 {
			p1 = lo & 0x01
			p2 = (hi & 0x01) << 1
			lo >>= 1
			hi >>= 1
		} else {
			p1 = (lo & 0x80) >> 7
			p2 = (hi & 0x80) >> 6
			lo <<= 1
			hi <<= 1
		}
		data = data<<4 | uint32(palette|p1|p2)
	}
	return data
}

func (p *PPU) evaluateSprites() {
	height := 8
	if p.tallSprites() {
		height = 16
	}
	count := 0
	for i := 0; i < spritesInMemory; i++ {
		y := p.oam[i*4]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]
		row := p.Scanline - int(y)
		if row < 0 || row >= height {
			continue
		}
		if count < spritesPerLine {
			p.spritePatterns[count] = p.fetchSpritePattern(i, row)
			p.spritePositions[count] = x
			p.spriteBehind[count] = attr&0x20 != 0
			p.spriteIndexes[count] = uint8(i)
		}
		count++
	}
	if count > spritesPerLine {
		count = spritesPerLine
		p.overflow = true
	}
	p.spriteCount = count
}

// =============================================================================
// Output
// =============================================================================

func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	bg := p.backgroundPixel()
	i, sprite := p.spritePixel()
	if x < 8 && !p.showLeftBackground() {
		bg = 0
	}
	if x < 8 && !p.showLeftSprites() {
		sprite = 0
	}

	opaqueBG := bg%4 != 0
	opaqueSprite := sprite%4 != 0

	var color uint8
	switch {
	case !opaqueBG && !opaqueSprite:
		color = 0
	case !opaqueBG:
		color = sprite | 0x10
	case !opaqueSprite:
		color = bg
	default:
		if p.spriteIndexes[i] == 0 && x < 255 {
			p.spriteZero = true
		}
		if p.spriteBehind[i] {
			color = bg
		} else {
			color = sprite | 0x10
		}
	}

	index := p.palette[paletteAddr(uint16(color))] & 0x3F
	if p.greyscale() {
		index &= 0x30
	}
	p.screen[y*ScreenWidth+x] = index
}

// =============================================================================
// Timing
// =============================================================================

func (p *PPU) tick() {
	if p.renderingEnabled() && p.odd && p.Scanline == prerenderLine && p.Cycle == 339 {
		p.Cycle = 0
		p.Scanline = 0
		p.Frame++
		p.odd = !p.odd
		return
	}
	p.Cycle++
	if p.Cycle >= dotsPerLine {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline >= linesPerFrame {
			p.Scanline = 0
			p.Frame++
			p.odd = !p.odd
		}
	}
}

// Step advances the PPU by one dot.
func (p *PPU) Step() {
	p.tick()

	prerender := p.Scanline == prerenderLine
	visibleLine := p.Scanline < ScreenHeight
	renderLine := prerender || visibleLine
	visibleDot := p.Cycle >= 1 && p.Cycle <= 256
	prefetchDot := p.Cycle >= 321 && p.Cycle <= 336
	fetchDot := visibleDot || prefetchDot

	if p.renderingEnabled() {
		if visibleLine && visibleDot {
			p.renderPixel()
		}
		if renderLine && fetchDot {
			p.tileData <<= 4
			switch p.Cycle % 8 {
			case 1:
				p.fetchNametable()
			case 3:
				p.fetchAttribute()
			case 5:
				p.fetchLowTile()
			case 7:
				p.fetchHighTile()
			case 0:
				p.storeTile()
				p.incrementX()
			}
		}
		if prerender && p.Cycle >= 280 && p.Cycle <= 304 {
			p.copyY()
		}
		if renderLine {
			switch p.Cycle {
			case 256:
				p.incrementY()
			case 257:
				p.copyX()
			case mapperClockDot:
				if sc, ok := p.mapper.(scanlineCounter); ok {
					sc.Scanline()
				}
			}
		}
		if p.Cycle == 257 {
			if visibleLine {
				p.evaluateSprites()
			} else {
				p.spriteCount = 0
			}
		}
	} else if visibleLine && visibleDot {
		p.screen[p.Scanline*ScreenWidth+p.Cycle-1] = p.backdrop()
	}

	if p.Scanline == vblankLine && p.Cycle == 1 {
		p.nmiOccurred = true
		if p.nmiOutput {
			p.nmi()
		}
	}
	if prerender && p.Cycle == 1 {
		p.nmiOccurred = false
		p.spriteZero = false
		p.overflow = false
	}
}

func (p *PPU) backdrop() uint8 {
	index := p.palette[0] & 0x3F
	if p.greyscale() {
		index &= 0x30
	}
	return index
}
