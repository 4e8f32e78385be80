package emu

import (
	"bytes"
	"testing"
)

// backdropProgram writes palette index $21 to $3F00 and spins.
var backdropProgram = []byte{
	0x78,             // SEI
	0xA9, 0x3F,       // LDA #$3F
	0x8D, 0x06, 0x20, // STA $2006
	0xA9, 0x00, // LDA #$00
	0x8D, 0x06, 0x20, // STA $2006
	0xA9, 0x21, // LDA #$21
	0x8D, 0x07, 0x20, // STA $2007
	0x4C, 0x10, 0xC0, // JMP $C010
}

// joypadProgram strobes controller 1 and stores eight bits at $00-$07, forever.
var joypadProgram = []byte{
	0xA9, 0x01, // LDA #$01
	0x8D, 0x16, 0x40, // STA $4016
	0xA9, 0x00, // LDA #$00
	0x8D, 0x16, 0x40, // STA $4016
	0xA2, 0x00, // LDX #$00
	0xAD, 0x16, 0x40, // LDA $4016
	0x29, 0x01, // AND #$01
	0x95, 0x00, // STA $00,X
	0xE8,       // INX
	0xE0, 0x08, // CPX #$08
	0xD0, 0xF4, // BNE $C00C
	0x4C, 0x00, 0xC0, // JMP $C000
}

func TestEmulator_Blank(t *testing.T) {
	e := New()
	if e.Loaded() {
		t.Error("Loaded = true before LoadINES")
	}
	if e.NextFrame() {
		t.Error("NextFrame = true with no cartridge")
	}
	if got := e.ScreenPixel(0, 0); got != (Color{}) {
		t.Errorf("ScreenPixel = %+v, want zero", got)
	}
	if e.frameCount() != 0 {
		t.Errorf("frameCount = %d, want 0", e.frameCount())
	}
	e.SetInput(Input{A: true}, Input{})
	e.Reset()
}

func TestEmulator_LoadINESRejectsGarbage(t *testing.T) {
	e := New()
	if err := e.LoadINES([]byte("not a rom")); err == nil {
		t.Fatal("LoadINES succeeded on garbage")
	}
	if e.Loaded() {
		t.Error("Loaded = true after failed load")
	}
}

func TestEmulator_NextFrameAdvances(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	for i := 0; i < 3; i++ {
		if !e.NextFrame() {
			t.Fatalf("NextFrame %d = false", i)
		}
	}
	if e.frameCount() != 3 {
		t.Errorf("frameCount = %d, want 3", e.frameCount())
	}
}

func TestEmulator_ScreenPixelBackdrop(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	for i := 0; i < 3; i++ {
		e.NextFrame()
	}
	want := Color{R: 0x64, G: 0xB0, B: 0xFF, A: 0xFF}
	for _, pt := range [][2]int{{0, 0}, {255, 239}, {128, 120}} {
		if got := e.ScreenPixel(pt[0], pt[1]); got != want {
			t.Errorf("ScreenPixel(%d, %d) = %+v, want %+v", pt[0], pt[1], got, want)
		}
	}
	if got := e.ScreenPixel(256, 0); got != (Color{}) {
		t.Errorf("out of range pixel = %+v, want zero", got)
	}

	fb := e.Framebuffer()
	if len(fb) != ScreenWidth*ScreenHeight*4 {
		t.Fatalf("Framebuffer len = %d", len(fb))
	}
	if !bytes.Equal(fb[:4], []byte{0x64, 0xB0, 0xFF, 0xFF}) {
		t.Errorf("Framebuffer[0:4] = % x, want 64 b0 ff ff", fb[:4])
	}
}

func TestEmulator_SetInput(t *testing.T) {
	e := newTestEmulator(t, joypadProgram)
	e.SetInput(Input{A: true, Start: true, Right: true}, Input{B: true})
	e.NextFrame()

	buf := make([]byte, 8)
	if n := e.ReadRAM(0, buf); n != 8 {
		t.Fatalf("ReadRAM = %d, want 8", n)
	}
	want := []byte{1, 0, 0, 1, 0, 0, 0, 1}
	if !bytes.Equal(buf, want) {
		t.Errorf("pad bits = %v, want %v", buf, want)
	}

	e.SetInput(Input{Up: true}, Input{})
	e.NextFrame()
	e.ReadRAM(0, buf)
	want = []byte{0, 0, 0, 0, 1, 0, 0, 0}
	if !bytes.Equal(buf, want) {
		t.Errorf("pad bits after change = %v, want %v", buf, want)
	}
}

func TestEmulator_NMIEachFrame(t *testing.T) {
	program := make([]byte, 0x30)
	copy(program, []byte{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0x4C, 0x05, 0xC0, // JMP $C005
	})
	copy(program[0x20:], []byte{
		0xE6, 0x10, // INC $10
		0x40, // RTI
	})
	rom := createTestROM(0, 1, 1, program)
	rom[16+0x3FFA] = 0x20 // NMI vector -> $C020

	e := New()
	if err := e.LoadINES(rom); err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	e.NextFrame()
	e.NextFrame()
	buf := make([]byte, 1)
	e.ReadRAM(0x10, buf)
	before := buf[0]
	e.NextFrame()
	e.ReadRAM(0x10, buf)
	if buf[0]-before != 1 {
		t.Errorf("NMIs in one frame = %d, want 1", buf[0]-before)
	}
}

func TestEmulator_KILStopsFrames(t *testing.T) {
	e := newTestEmulator(t, []byte{0x02})
	if e.NextFrame() {
		t.Error("NextFrame = true after KIL")
	}
	if !e.Jammed() {
		t.Error("Jammed = false")
	}
	e.Reset()
	if e.Jammed() {
		t.Error("Jammed survives Reset")
	}
}

func TestEmulator_SRAM(t *testing.T) {
	rom := createTestROM(0, 1, 1, backdropProgram)
	rom[6] |= 0x02
	e := New()
	if err := e.LoadINES(rom); err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	if !e.HasSRAM() {
		t.Fatal("HasSRAM = false for battery cartridge")
	}
	data := bytes.Repeat([]byte{0xA5}, 16)
	e.SetSRAM(data)
	got := e.GetSRAM()
	if len(got) != sramSize {
		t.Fatalf("GetSRAM len = %d, want %d", len(got), sramSize)
	}
	if !bytes.Equal(got[:16], data) {
		t.Errorf("GetSRAM[:16] = % x", got[:16])
	}
	got[0] = 0
	if e.GetSRAM()[0] != 0xA5 {
		t.Error("GetSRAM returned internal slice")
	}
}

func TestEmulator_ReadRAMBounds(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	buf := make([]byte, 4)
	if n := e.ReadRAM(RAMSize-2, buf); n != 2 {
		t.Errorf("ReadRAM at end = %d, want 2", n)
	}
	if n := New().ReadRAM(0, buf); n != 0 {
		t.Errorf("ReadRAM on blank = %d, want 0", n)
	}
}

func TestEmulator_WriteRAM(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	if n := e.WriteRAM(0x300, []byte{0xDE, 0xAD}); n != 2 {
		t.Fatalf("WriteRAM = %d, want 2", n)
	}
	buf := make([]byte, 2)
	e.ReadRAM(0x300, buf)
	if buf[0] != 0xDE || buf[1] != 0xAD {
		t.Errorf("RAM = % x, want de ad", buf)
	}
	if n := e.WriteRAM(RAMSize-1, []byte{1, 2, 3}); n != 1 {
		t.Errorf("WriteRAM at end = %d, want 1", n)
	}
}

func TestEmulator_CloseEjects(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	e.NextFrame()
	e.Close()
	if e.Loaded() {
		t.Error("Loaded = true after Close")
	}
	if e.NextFrame() {
		t.Error("NextFrame = true after Close")
	}
	if e.ROMCRC32() != 0 {
		t.Error("ROMCRC32 not cleared")
	}
}

func TestEmulator_Metadata(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	if e.Mapper() != 0 {
		t.Errorf("Mapper = %d, want 0", e.Mapper())
	}
	if e.ROMCRC32() == 0 {
		t.Error("ROMCRC32 = 0 for loaded image")
	}
}
