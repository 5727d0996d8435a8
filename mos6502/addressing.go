package mos6502

// AddressingMode identifies one of the 12 operand-addressing forms a
// handler may be paired with in the opcode table.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type AddressingMode uint8

const (
	Implicit AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

// fetch reads the byte at PC and advances PC (wrapping mod 65536).
func (c *CPU) fetch(bus Bus) uint8 {
	v := bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16(bus Bus) uint16 {
	lo := c.fetch(bus)
	hi := c.fetch(bus)
	return uint16(hi)<<8 | uint16(lo)
}

// pageCrossed reports whether addr differs from base in its high byte.
func pageCrossed(base, addr uint16) bool {
	return base&0xFF00 != addr&0xFF00
}

// resolveAddress computes the effective address for every mode except
// Implicit, Accumulator, Immediate and Relative (which have no
// bus-visible effective address of this shape), performing exactly
// the dummy-read cycles spec'd for each mode. force mirrors the
// caller's "force dummy" flag for Absolute,X/Y and Indirect,Y: read
// forms pass false (dummy only on a real carry), read-modify-write
// and store forms pass true (dummy always).
func (c *CPU) resolveAddress(bus Bus, mode AddressingMode, force bool) uint16 {
	switch mode {
	case ZeroPage:
		return uint16(c.fetch(bus))
	case ZeroPageX:
		base := c.fetch(bus)
		bus.Read(uint16(base)) // dummy read at the un-indexed address
		return uint16(base + c.X)
	case ZeroPageY:
		base := c.fetch(bus)
		bus.Read(uint16(base))
		return uint16(base + c.Y)
	case Absolute:
		return c.fetch16(bus)
	case AbsoluteX:
		return c.resolveIndexedAbsolute(bus, c.X, force)
	case AbsoluteY:
		return c.resolveIndexedAbsolute(bus, c.Y, force)
	case Indirect:
		ptr := c.fetch16(bus)
		// Address-bus wrap bug: the pointer's high byte comes from
		// the same page as its low byte, not the next page.
		hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
		lo := bus.Read(ptr)
		hi := bus.Read(hiAddr)
		return uint16(hi)<<8 | uint16(lo)
	case IndirectX:
		zp := c.fetch(bus)
		bus.Read(uint16(zp)) // dummy read before the X wrap-add
		zp += c.X
		lo := bus.Read(uint16(zp))
		hi := bus.Read(uint16(zp + 1))
		return uint16(hi)<<8 | uint16(lo)
	case IndirectY:
		zp := c.fetch(bus)
		lo := bus.Read(uint16(zp))
		hi := bus.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		if force || pageCrossed(base, addr) {
			bus.Read((base & 0xFF00) | (addr & 0x00FF))
		}
		return addr
	default:
		panic("mos6502: resolveAddress called with a mode that has no effective address")
	}
}

func (c *CPU) resolveIndexedAbsolute(bus Bus, index uint8, force bool) uint16 {
	base := c.fetch16(bus)
	addr := base + uint16(index)
	if force || pageCrossed(base, addr) {
		bus.Read((base & 0xFF00) | (addr & 0x00FF))
	}
	return addr
}

// loadOperand returns the operand byte for a read-only instruction in
// the given mode, issuing whatever bus reads that mode requires.
// Indexed modes never force their fixup dummy read here: only the
// real carry does, per the addressing table's read-form column.
func (c *CPU) loadOperand(bus Bus, mode AddressingMode) uint8 {
	if mode == Immediate {
		return c.fetch(bus)
	}
	return bus.Read(c.resolveAddress(bus, mode, false))
}
