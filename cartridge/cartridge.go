package cartridge

import "fmt"

// DeferredRead is returned by Cartridge.ReadCHR when the addressed byte
// lives in name-table RAM rather than on the cartridge itself. The
// picture bus (package bus) owns that RAM and is responsible for
// honouring the token; the cartridge only computes the mirrored offset.
//
// Grounded on original_source/nes-lib/src/bus/ppu_bus.rs's
// DeferredRead::VRAM(addr) variant.
type DeferredRead struct {
	Offset uint16 // 0..0x0800, into the 2 KiB name-table RAM
}

// DeferredWrite is the write-side counterpart of DeferredRead.
type DeferredWrite struct {
	Offset uint16
	Value  uint8
}

// Cartridge is the mapper abstraction the bus and picture bus delegate
// to. ReadCHR/WriteCHR operate in picture-bus address space (pattern
// tables and name tables); ReadPRG/WritePRG operate in CPU address
// space ($4020-$FFFF).
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)

	// ReadCHR returns a direct byte (isDeferred == false) for pattern
	// table addresses, or a DeferredRead for name-table addresses that
	// the caller must resolve against its own name-table RAM.
	ReadCHR(addr uint16) (value uint8, deferred DeferredRead, isDeferred bool)
	WriteCHR(addr uint16, val uint8) (deferred DeferredWrite, isDeferred bool)

	// CHRSnapshot returns a copy of the 8 KiB CHR ROM for a debug
	// pattern-table view, or ok == false if the cartridge has none.
	CHRSnapshot() (snapshot []byte, ok bool)

	MirrorMode() MirrorMode
}

// Load decodes an iNES ROM image and returns the concrete cartridge
// implementation for its mapper number. Only mapper 0 (NROM) is
// supported; everything else is a decode error.
func Load(rom []byte) (Cartridge, error) {
	h, err := decodeHeader(rom)
	if err != nil {
		return nil, err
	}
	if h.hasTrainer {
		return nil, fmt.Errorf("trainer-present ROMs are unsupported: %w", ErrCannotDecode)
	}
	if h.mapperNum != 0 {
		return nil, fmt.Errorf("unsupported mapper %d: %w", h.mapperNum, ErrCannotDecode)
	}

	return newNROM(h, rom[headerSize:])
}
