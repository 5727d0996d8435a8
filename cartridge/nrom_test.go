package cartridge

import (
	"bytes"
	"errors"
	"testing"
)

func makeROM(prgBlocks, chrBlocks, flags6, flags7 byte, prg, chr []byte) []byte {
	h := []byte{'N', 'E', 'S', 0x1A, prgBlocks, chrBlocks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	var buf bytes.Buffer
	buf.Write(h)
	buf.Write(prg)
	buf.Write(chr)
	return buf.Bytes()
}

func TestLoadRejectsBadMagic(t *testing.T) {
	rom := makeROM(1, 1, 0, 0, make([]byte, prgBlock), make([]byte, chrBlock))
	rom[0] = 'X'
	if _, err := Load(rom); !errors.Is(err, ErrCannotDecode) {
		t.Fatalf("got %v, want ErrCannotDecode", err)
	}
}

func TestLoadRejectsNES2(t *testing.T) {
	rom := makeROM(1, 1, 0, 0x08, make([]byte, prgBlock), make([]byte, chrBlock))
	if _, err := Load(rom); !errors.Is(err, ErrCannotDecode) {
		t.Fatalf("got %v, want ErrCannotDecode", err)
	}
}

func TestLoadRejectsTrainer(t *testing.T) {
	rom := makeROM(1, 1, flag6Trainer, 0, make([]byte, prgBlock), make([]byte, chrBlock))
	if _, err := Load(rom); !errors.Is(err, ErrCannotDecode) {
		t.Fatalf("got %v, want ErrCannotDecode", err)
	}
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	rom := makeROM(1, 1, 0x10, 0, make([]byte, prgBlock), make([]byte, chrBlock))
	if _, err := Load(rom); !errors.Is(err, ErrCannotDecode) {
		t.Fatalf("got %v, want ErrCannotDecode", err)
	}
}

func TestNROM16KiBMirrored(t *testing.T) {
	prg := make([]byte, prgBlock)
	prg[0] = 0xAA
	prg[len(prg)-1] = 0xBB
	rom := makeROM(1, 1, 0, 0, prg, make([]byte, chrBlock))

	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0x8000); got != 0xAA {
		t.Errorf("ReadPRG(0x8000) = 0x%02x, want 0xAA", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0xAA {
		t.Errorf("ReadPRG(0xC000) = 0x%02x, want 0xAA (mirrored)", got)
	}
	if got := cart.ReadPRG(0xFFFF); got != 0xBB {
		t.Errorf("ReadPRG(0xFFFF) = 0x%02x, want 0xBB", got)
	}
}

func TestNROM32KiBNotMirrored(t *testing.T) {
	prg := make([]byte, 2*prgBlock)
	prg[0] = 0x11
	prg[prgBlock] = 0x22
	rom := makeROM(2, 1, 0, 0, prg, make([]byte, chrBlock))

	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0x8000); got != 0x11 {
		t.Errorf("ReadPRG(0x8000) = 0x%02x, want 0x11", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0x22 {
		t.Errorf("ReadPRG(0xC000) = 0x%02x, want 0x22", got)
	}
}

func TestPrgRAMWritable(t *testing.T) {
	rom := makeROM(1, 1, 0, 0, make([]byte, prgBlock), make([]byte, chrBlock))
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WritePRG(0x6123, 0x42)
	if got := cart.ReadPRG(0x6123); got != 0x42 {
		t.Errorf("ReadPRG(0x6123) = 0x%02x, want 0x42", got)
	}
}

func TestPrgROMImmutable(t *testing.T) {
	prg := make([]byte, prgBlock)
	rom := makeROM(1, 1, 0, 0, prg, make([]byte, chrBlock))
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WritePRG(0x8000, 0xFF)
	if got := cart.ReadPRG(0x8000); got != 0x00 {
		t.Errorf("ReadPRG(0x8000) = 0x%02x after write, want unchanged 0x00", got)
	}
}

func TestCHRDirectRead(t *testing.T) {
	chr := make([]byte, chrBlock)
	chr[0x123] = 0x77
	rom := makeROM(1, 1, 0, 0, make([]byte, prgBlock), chr)
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v, _, deferred := cart.ReadCHR(0x0123)
	if deferred {
		t.Fatalf("ReadCHR(0x0123) deferred, want direct CHR read")
	}
	if v != 0x77 {
		t.Errorf("ReadCHR(0x0123) = 0x%02x, want 0x77", v)
	}
}

func TestNameTableHorizontalMirroring(t *testing.T) {
	rom := makeROM(1, 1, 0, 0, make([]byte, prgBlock), make([]byte, chrBlock)) // flags6 bit0=0: horizontal
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cart.MirrorMode() != MirrorHorizontal {
		t.Fatalf("MirrorMode() = %v, want MirrorHorizontal", cart.MirrorMode())
	}

	// Horizontal (selector bit 10): $2000 and $2800 share physical
	// table A; $2400 and $2C00 share table B.
	_, d1, ok := cart.ReadCHR(0x2000)
	if !ok {
		t.Fatal("ReadCHR(0x2000) not deferred")
	}
	_, d2, ok := cart.ReadCHR(0x2800)
	if !ok {
		t.Fatal("ReadCHR(0x2800) not deferred")
	}
	if d1.Offset != d2.Offset {
		t.Errorf("horizontal mirroring: $2000 offset %d != $2800 offset %d", d1.Offset, d2.Offset)
	}

	_, d3, ok := cart.ReadCHR(0x2400)
	if !ok {
		t.Fatal("ReadCHR(0x2400) not deferred")
	}
	if d1.Offset == d3.Offset {
		t.Errorf("horizontal mirroring: $2000 and $2400 should map to different physical tables")
	}
}

func TestNameTableVerticalMirroring(t *testing.T) {
	rom := makeROM(1, 1, flag6Mirroring, 0, make([]byte, prgBlock), make([]byte, chrBlock))
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cart.MirrorMode() != MirrorVertical {
		t.Fatalf("MirrorMode() = %v, want MirrorVertical", cart.MirrorMode())
	}

	// Vertical (selector bit 11): $2000 and $2400 share table A; $2800
	// and $2C00 share B.
	_, d1, _ := cart.ReadCHR(0x2000)
	_, d2, _ := cart.ReadCHR(0x2400)
	if d1.Offset != d2.Offset {
		t.Errorf("vertical mirroring: $2000 offset %d != $2400 offset %d", d1.Offset, d2.Offset)
	}

	_, d3, _ := cart.ReadCHR(0x2800)
	if d1.Offset == d3.Offset {
		t.Errorf("vertical mirroring: $2000 and $2800 should map to different physical tables")
	}
}

func TestWriteCHRDeferredOffsetMatchesRead(t *testing.T) {
	rom := makeROM(1, 1, 0, 0, make([]byte, prgBlock), make([]byte, chrBlock))
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wd, ok := cart.WriteCHR(0x2005, 0x99)
	if !ok {
		t.Fatal("WriteCHR(0x2005) not deferred")
	}
	_, rd, _ := cart.ReadCHR(0x2005)
	if wd.Offset != rd.Offset || wd.Value != 0x99 {
		t.Errorf("WriteCHR/ReadCHR offset mismatch: write=%+v read=%+v", wd, rd)
	}
}

func TestCHRSnapshot(t *testing.T) {
	chr := make([]byte, chrBlock)
	chr[5] = 0x5A
	rom := makeROM(1, 1, 0, 0, make([]byte, prgBlock), chr)
	cart, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap, ok := cart.CHRSnapshot()
	if !ok || len(snap) != chrBlock || snap[5] != 0x5A {
		t.Fatalf("CHRSnapshot() = %v, %v", snap[:8], ok)
	}
	snap[5] = 0 // mutating the snapshot must not affect the cartridge
	_, rd, _ := cart.ReadCHR(5)
	_ = rd
	v, _, _ := cart.ReadCHR(5)
	if v != 0x5A {
		t.Errorf("CHRSnapshot mutation leaked into cartridge: ReadCHR(5) = 0x%02x", v)
	}
}
