package mos6502

// Documented illegal/undocumented opcode handlers. These combine two
// legal operations in a single instruction (e.g. SLO is ASL then ORA) or
// expose internal bus behavior directly (LAX, SAX, JAM). Grounded on
// the well-documented illegal-opcode behavior every NES-accurate core
// (including nestest) relies on, not on the teacher's opcode table,
// whose illegal rows mismodel several of these at the byte/mode level.

// slo: ASL memory, then OR the result into A.
func opSLO(c *CPU, bus Bus, mode AddressingMode) {
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v << 1 })
	c.A |= updated
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x80 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
}

// rla: ROL memory, then AND the result into A.
func opRLA(c *CPU, bus Bus, mode AddressingMode) {
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return (v << 1) | carryIn })
	c.A &= updated
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x80 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
}

// sre: LSR memory, then EOR the result into A.
func opSRE(c *CPU, bus Bus, mode AddressingMode) {
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v >> 1 })
	c.A ^= updated
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x01 != 0), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
}

// rra: ROR memory, then ADC the result into A.
func opRRA(c *CPU, bus Bus, mode AddressingMode) {
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	addr := c.resolveAddress(bus, mode, true)
	old, updated := c.rmw(bus, addr, func(v uint8) uint8 { return (v >> 1) | (carryIn << 7) })
	c.setFlags(StatusUpdate{Carry: boolPtr(old&0x01 != 0)})
	c.adc(updated)
}

// dcp: DEC memory, then CMP A against the result.
func opDCP(c *CPU, bus Bus, mode AddressingMode) {
	addr := c.resolveAddress(bus, mode, true)
	_, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v - 1 })
	c.compare(c.A, updated)
}

// isc (a.k.a. ISB): INC memory, then SBC the result from A.
func opISC(c *CPU, bus Bus, mode AddressingMode) {
	addr := c.resolveAddress(bus, mode, true)
	_, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v + 1 })
	c.adc(^updated)
}

// lax: LDA and LDX from the same operand in one fetch.
func opLAX(c *CPU, bus Bus, mode AddressingMode) {
	v := c.loadOperand(bus, mode)
	c.A = v
	c.X = v
	c.setNZ(v)
}

// sax: store A&X, no flags touched.
func opSAX(c *CPU, bus Bus, mode AddressingMode) {
	bus.Write(c.resolveAddress(bus, mode, true), c.A&c.X)
}

// anc: AND with the immediate operand, then copy N into C (the
// operation is the same instruction byte repeated at $0B/$2B).
func opANC(c *CPU, bus Bus, mode AddressingMode) {
	c.A &= c.loadOperand(bus, mode)
	c.setFlags(StatusUpdate{
		Zero:     boolPtr(c.A == 0),
		Negative: boolPtr(c.A&0x80 != 0),
		Carry:    boolPtr(c.A&0x80 != 0),
	})
}

// alr (a.k.a. ASR): AND with the immediate operand, then LSR A.
func opALR(c *CPU, bus Bus, mode AddressingMode) {
	c.A &= c.loadOperand(bus, mode)
	carryOut := c.A&0x01 != 0
	c.A >>= 1
	c.setFlags(StatusUpdate{Carry: boolPtr(carryOut), Zero: boolPtr(c.A == 0), Negative: boolPtr(c.A&0x80 != 0)})
}

// arr: AND with the immediate operand, then ROR A, with C/V derived
// from the rotated result's top two bits rather than the usual ROR
// rule.
func opARR(c *CPU, bus Bus, mode AddressingMode) {
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	c.A &= c.loadOperand(bus, mode)
	c.A = (c.A >> 1) | (carryIn << 7)
	bit6 := c.A&0x40 != 0
	bit5 := c.A&0x20 != 0
	c.setFlags(StatusUpdate{
		Zero:     boolPtr(c.A == 0),
		Negative: boolPtr(c.A&0x80 != 0),
		Carry:    boolPtr(bit6),
		Overflow: boolPtr(bit6 != bit5),
	})
}

// jam halts the CPU permanently: no documented $02-family opcode ever
// retires, and real hardware requires a reset line pulse to recover.
func opJAM(c *CPU, bus Bus, mode AddressingMode) {
	c.jammed = true
}
