// Package nes wires the CPU, bus, picture unit, and cartridge into the
// single outer emulator a host drives, and owns the monotonic time
// counter §4.8 describes.
//
// Grounded on bdwalton-gintendo/console/bus.go (construction shape,
// Update-driven step loop) and original_source/nes-lib/src/nes.rs
// (Nes<B> owning Cpu+Bus and a single tick entry point).
package nes

import (
	"fmt"

	"github.com/bdwalton/nescore/bus"
	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/mos6502"
	"github.com/bdwalton/nescore/ppu"
)

// ScreenSink receives finished pixels from the picture-unit rendering
// pipeline (outside this core's scope). row is 0..240, col is 0..256.
type ScreenSink interface {
	PutPixel(row, col int, rgb [3]uint8)
}

// EventTag and EventTap re-export package bus's event-tap types: the
// tap is delivered bus events by the bus itself (including the
// name-table reads/writes the PPU triggers through it), so the type
// lives where the events are raised and Emulator only forwards it.
type EventTag = bus.EventTag

const (
	EventBusRead        = bus.EventBusRead
	EventBusWrite       = bus.EventBusWrite
	EventNameTableRead  = bus.EventNameTableRead
	EventNameTableWrite = bus.EventNameTableWrite
)

// EventTap is notified of tagged bus events, as a debugging aid. It is
// compiled into every build; no build tag gates it. A nil tap is the
// default, and the bus never calls through a nil tap.
type EventTap = bus.EventTap

// Emulator owns the cartridge, picture unit, bus, and CPU, and the
// single outer monotonic counter that cascades into the bus and CPU's
// own private clocks (§4.8).
type Emulator struct {
	cpu  *mos6502.CPU
	bus  *bus.Bus
	ppu  *ppu.PPU
	cart cartridge.Cartridge

	screen ScreenSink

	time uint64
}

// New constructs an Emulator from an already-decoded cartridge. The
// picture unit and bus are constructed internally; callers use
// Emulator's own accessors (Registers, CHRSnapshot) for introspection.
// Emulator exposes no accessor for the picture unit itself.
func New(cart cartridge.Cartridge) *Emulator {
	p := ppu.New()
	b := bus.New(p, cart)
	c := mos6502.New(b)
	return &Emulator{cpu: c, bus: b, ppu: p, cart: cart}
}

// Load decodes rom and constructs an Emulator in one step.
func Load(rom []byte) (*Emulator, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, fmt.Errorf("nes: %w", err)
	}
	return New(cart), nil
}

// SetScreenSink installs the callback that receives rendered pixels.
// The core never calls it itself (rasterization is out of scope); it
// is stored purely for a host rendering pipeline built on top of this
// module to retrieve via ScreenSink.
func (e *Emulator) SetScreenSink(s ScreenSink) { e.screen = s }

// ScreenSink returns the installed sink, or nil if none was set.
func (e *Emulator) ScreenSink() ScreenSink { return e.screen }

// SetEventTap installs the debug event-tap callback, forwarding it to
// the bus that actually raises bus-read/bus-write/name-table-read/
// name-table-write events. Pass nil to disable it again.
func (e *Emulator) SetEventTap(tap EventTap) { e.bus.SetTap(tap) }

// Tick advances the outer time counter by one and cascades the catch-up
// into the bus and CPU, per §4.8: `outer.time` increments first, then
// `bus.catch_up` then `cpu.catch_up`, preserving `ppu.time <= bus.time
// <= outer.time` and `cpu.time <= outer.time`.
func (e *Emulator) Tick() {
	e.time++
	e.bus.CatchUp(e.time)
	e.cpu.CatchUp(e.time, e.bus)
}

// Step runs exactly one CPU instruction by ticking until the CPU's own
// instruction counter has advanced, or returns immediately if the CPU
// is jammed.
func (e *Emulator) Step() {
	if e.cpu.Jammed() {
		return
	}
	before := e.cpu.Time()
	for e.cpu.Time() == before && !e.cpu.Jammed() {
		e.Tick()
	}
}

// Registers exposes the CPU's architecturally visible state for
// introspection (debuggers, test harnesses). It is a value copy; the
// caller cannot mutate live CPU state through it.
type Registers struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  uint8
}

func (e *Emulator) Registers() Registers {
	return Registers{
		A: e.cpu.A, X: e.cpu.X, Y: e.cpu.Y,
		SP: e.cpu.SP, PC: e.cpu.PC, Status: e.cpu.Status,
	}
}

// Jammed reports whether the CPU has halted on a $02-family opcode.
func (e *Emulator) Jammed() bool { return e.cpu.Jammed() }

// CHRSnapshot returns a copy of the cartridge's CHR ROM for a
// pattern-table debug view, or ok == false if the cartridge exposes
// none.
func (e *Emulator) CHRSnapshot() (snapshot []byte, ok bool) {
	return e.cart.CHRSnapshot()
}

// String renders the CPU's register line, mirroring the teacher's
// debugger-friendly Stringer.
func (e *Emulator) String() string {
	return e.cpu.String()
}
