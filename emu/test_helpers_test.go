package emu

import "testing"

// createTestROM builds an iNES image with the given PRG (16KB) and CHR
// (8KB) bank counts. Each PRG bank is filled with its bank number so
// bank switching can be verified. When program is non-nil it is placed
// at the start of the last PRG bank and all three vectors point at it.
func createTestROM(mapper uint8, prgBanks, chrBanks int, program []byte) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, byte(prgBanks), byte(chrBanks), mapper << 4, mapper & 0xF0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, prgBanks*0x4000)
	for b := 0; b < prgBanks; b++ {
		for i := 0; i < 0x4000; i++ {
			prg[b*0x4000+i] = byte(b)
		}
	}
	if program != nil {
		last := (prgBanks - 1) * 0x4000
		copy(prg[last:], program)
		// Vectors at $FFFA-$FFFF all point at $C000 (start of the last bank).
		// A one-bank image mirrors the bank, so $8000 runs the same code.
		for _, off := range []int{0x3FFA, 0x3FFC, 0x3FFE} {
			prg[last+off] = 0x00
			prg[last+off+1] = 0xC0
		}
	}
	chr := make([]byte, chrBanks*0x2000)
	for b := 0; b < chrBanks; b++ {
		for i := 0; i < 0x2000; i++ {
			chr[b*0x2000+i] = byte(b)
		}
	}
	rom := append(header, prg...)
	return append(rom, chr...)
}

// testBus is a flat 64KB address space for CPU tests.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *testBus) Write(addr uint16, val uint8) { b.mem[addr] = val }

// newTestCPU loads program at $8000, points the reset vector there and resets.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus.mem[0x8000:], program)
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	cpu := NewCPU(bus)
	cpu.Reset()
	return cpu, bus
}

// newTestEmulator loads an NROM image running program and fails the test on error.
func newTestEmulator(t *testing.T, program []byte) *Emulator {
	t.Helper()
	e := New()
	if err := e.LoadINES(createTestROM(0, 1, 1, program)); err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	return e
}
