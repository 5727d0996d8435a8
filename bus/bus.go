// Package bus implements the CPU-visible address map connecting
// internal RAM, the picture-unit registers, and the cartridge, plus
// the picture-bus adapter the PPU uses to reach CHR ROM and name-table
// RAM through the cartridge's deferred-token indirection.
//
// Grounded on bdwalton-gintendo/console/bus.go's address-range switch
// shape, with OAMDMA dropped (see DESIGN.md) and catch-up semantics
// added per the time coordinator spec.
package bus

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/ppu"
)

const (
	ramSize       = 0x0800 // 2 KiB internal RAM
	ramMirrorMask = 0x07FF
	ramTop        = 0x1FFF
	ppuRegTop     = 0x3FFF
	ppuRegMask    = 0x2007
	ioScratchTop  = 0x4017
	ioUnusedTop   = 0x401F
	nameTableSize = 0x0800
)

// EventTag identifies one of the kinds of bus traffic an EventTap can
// observe.
type EventTag uint8

const (
	EventBusRead EventTag = iota
	EventBusWrite
	EventNameTableRead
	EventNameTableWrite
)

// EventTap is notified of tagged bus events, as a debugging aid. It is
// compiled into every build; no build tag gates it. A nil tap is the
// default, and Bus checks for nil before every event and never calls
// through a nil tap.
type EventTap interface {
	OnEvent(tag EventTag, addr uint16, val uint8)
}

// Bus is the CPU-visible memory map for an NROM-era NES. It owns
// internal RAM and the name-table RAM that the cartridge's mirroring
// mode indirects into; the PPU and cartridge are supplied by the
// caller (the outer emulator) so Bus never constructs its own
// collaborators.
type Bus struct {
	ram        [ramSize]uint8
	ioScratch  [ioScratchTop - ppuRegTop]uint8
	nameTables [nameTableSize]byte
	ppu        *ppu.PPU
	cart       cartridge.Cartridge
	time       uint64
	tap        EventTap
}

// New wires a Bus to its picture unit and cartridge. Both must already
// exist; Bus never owns their construction.
func New(p *ppu.PPU, cart cartridge.Cartridge) *Bus {
	return &Bus{ppu: p, cart: cart}
}

// SetTap installs the debug event-tap callback. Pass nil to disable it
// again; Bus never pays for the tap when it is nil.
func (b *Bus) SetTap(tap EventTap) { b.tap = tap }

// CatchUp advances the bus's private time counter to target. Every
// access into picture-register space first catches the PPU up to the
// access time, per the time coordinator's cascading rule.
func (b *Bus) CatchUp(target uint64) {
	if target < b.time {
		panic(fmt.Sprintf("bus: time went backwards: %d < %d", target, b.time))
	}
	b.time = target
}

func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr <= ramTop:
		v = b.ram[addr&ramMirrorMask]
	case addr <= ppuRegTop:
		b.ppu.CatchUp(b.time)
		v = b.ppu.ReadRegister(addr&ppuRegMask, b.pictureBus())
	case addr <= ioScratchTop:
		v = b.ioScratch[addr-(ppuRegTop+1)]
	case addr <= ioUnusedTop:
		v = 0
	default:
		v = b.cart.ReadPRG(addr)
	}
	if b.tap != nil {
		b.tap.OnEvent(EventBusRead, addr, v)
	}
	return v
}

func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramTop:
		b.ram[addr&ramMirrorMask] = val
	case addr <= ppuRegTop:
		b.ppu.CatchUp(b.time)
		b.ppu.WriteRegister(addr&ppuRegMask, val, b.pictureBus())
	case addr <= ioScratchTop:
		b.ioScratch[addr-(ppuRegTop+1)] = val
	case addr <= ioUnusedTop:
		// Writes to $4018-$401F are ignored.
	default:
		b.cart.WritePRG(addr, val)
	}
	if b.tap != nil {
		b.tap.OnEvent(EventBusWrite, addr, val)
	}
}

func (b *Bus) pictureBus() ppu.PictureBus {
	return pictureBusAdapter{b}
}

// pictureBusAdapter exposes Bus's cartridge + name-table RAM as the
// ppu.PictureBus the PPU expects, resolving the cartridge's deferred
// read/write tokens against the name-table RAM the bus itself owns.
// Grounded on original_source/nes-lib/src/bus/ppu_bus.rs, where the
// PPU-facing bus resolves the same DeferredRead/DeferredWrite split.
type pictureBusAdapter struct {
	b *Bus
}

func (p pictureBusAdapter) Read(addr uint16) uint8 {
	v, deferred, isDeferred := p.b.cart.ReadCHR(addr)
	if isDeferred {
		v = p.b.nameTables[deferred.Offset%nameTableSize]
		if p.b.tap != nil {
			p.b.tap.OnEvent(EventNameTableRead, deferred.Offset%nameTableSize, v)
		}
	}
	return v
}

func (p pictureBusAdapter) Write(addr uint16, val uint8) {
	deferred, isDeferred := p.b.cart.WriteCHR(addr, val)
	if !isDeferred {
		return // direct CHR ROM space: NROM's CHR is immutable.
	}
	p.b.nameTables[deferred.Offset%nameTableSize] = deferred.Value
	if p.b.tap != nil {
		p.b.tap.OnEvent(EventNameTableWrite, deferred.Offset%nameTableSize, deferred.Value)
	}
}
