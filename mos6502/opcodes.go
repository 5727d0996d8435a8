package mos6502

// buildOpcodeTable returns the 256-entry dispatch table indexed
// directly by opcode byte: a function value plus the addressing mode
// to invoke it with. Table entries are evaluated in constant time with
// no reflection and no per-call allocation.
//
// The official-opcode rows are grounded on the teacher's opcode table
// (mos6502/opcodes.go upstream); the documented-illegal rows use the
// accurate real-hardware byte/mode assignments, since the teacher's
// snapshot mismodels several of them (SAX wrongly placed at an
// IMMEDIATE byte, an invented "zero-page,X but really Y" mode for
// 0x97, DCM/ISB's illegal STA-style ABSOLUTE,Y timing). Opcodes with
// no stable, well-documented behavior (0x8B, 0x93, 0x9B, 0x9C, 0x9E,
// 0x9F, 0xAB) are left unmapped: Tick panics if one is ever fetched.
func buildOpcodeTable() [256]instruction {
	var t [256]instruction

	set := func(op uint8, exec func(c *CPU, bus Bus, mode AddressingMode), mode AddressingMode, mnemonic string) {
		t[op] = instruction{exec: exec, mode: mode, mnemonic: mnemonic}
	}

	// ADC
	set(0x69, opADC, Immediate, "ADC")
	set(0x65, opADC, ZeroPage, "ADC")
	set(0x75, opADC, ZeroPageX, "ADC")
	set(0x6D, opADC, Absolute, "ADC")
	set(0x7D, opADC, AbsoluteX, "ADC")
	set(0x79, opADC, AbsoluteY, "ADC")
	set(0x61, opADC, IndirectX, "ADC")
	set(0x71, opADC, IndirectY, "ADC")

	// AND
	set(0x29, opAND, Immediate, "AND")
	set(0x25, opAND, ZeroPage, "AND")
	set(0x35, opAND, ZeroPageX, "AND")
	set(0x2D, opAND, Absolute, "AND")
	set(0x3D, opAND, AbsoluteX, "AND")
	set(0x39, opAND, AbsoluteY, "AND")
	set(0x21, opAND, IndirectX, "AND")
	set(0x31, opAND, IndirectY, "AND")

	// ASL
	set(0x0A, opASL, Accumulator, "ASL")
	set(0x06, opASL, ZeroPage, "ASL")
	set(0x16, opASL, ZeroPageX, "ASL")
	set(0x0E, opASL, Absolute, "ASL")
	set(0x1E, opASL, AbsoluteX, "ASL")

	// Branches
	set(0x90, opBCC, Relative, "BCC")
	set(0xB0, opBCS, Relative, "BCS")
	set(0xF0, opBEQ, Relative, "BEQ")
	set(0x30, opBMI, Relative, "BMI")
	set(0xD0, opBNE, Relative, "BNE")
	set(0x10, opBPL, Relative, "BPL")
	set(0x50, opBVC, Relative, "BVC")
	set(0x70, opBVS, Relative, "BVS")

	// BIT
	set(0x24, opBIT, ZeroPage, "BIT")
	set(0x2C, opBIT, Absolute, "BIT")

	// BRK
	set(0x00, opBRK, Implicit, "BRK")

	// Flag ops
	set(0x18, opCLC, Implicit, "CLC")
	set(0xD8, opCLD, Implicit, "CLD")
	set(0x58, opCLI, Implicit, "CLI")
	set(0xB8, opCLV, Implicit, "CLV")
	set(0x38, opSEC, Implicit, "SEC")
	set(0xF8, opSED, Implicit, "SED")
	set(0x78, opSEI, Implicit, "SEI")

	// CMP
	set(0xC9, opCMP, Immediate, "CMP")
	set(0xC5, opCMP, ZeroPage, "CMP")
	set(0xD5, opCMP, ZeroPageX, "CMP")
	set(0xCD, opCMP, Absolute, "CMP")
	set(0xDD, opCMP, AbsoluteX, "CMP")
	set(0xD9, opCMP, AbsoluteY, "CMP")
	set(0xC1, opCMP, IndirectX, "CMP")
	set(0xD1, opCMP, IndirectY, "CMP")

	// CPX / CPY
	set(0xE0, opCPX, Immediate, "CPX")
	set(0xE4, opCPX, ZeroPage, "CPX")
	set(0xEC, opCPX, Absolute, "CPX")
	set(0xC0, opCPY, Immediate, "CPY")
	set(0xC4, opCPY, ZeroPage, "CPY")
	set(0xCC, opCPY, Absolute, "CPY")

	// DEC / DEX / DEY
	set(0xC6, opDECmem, ZeroPage, "DEC")
	set(0xD6, opDECmem, ZeroPageX, "DEC")
	set(0xCE, opDECmem, Absolute, "DEC")
	set(0xDE, opDECmem, AbsoluteX, "DEC")
	set(0xCA, opDEX, Implicit, "DEX")
	set(0x88, opDEY, Implicit, "DEY")

	// EOR
	set(0x49, opEOR, Immediate, "EOR")
	set(0x45, opEOR, ZeroPage, "EOR")
	set(0x55, opEOR, ZeroPageX, "EOR")
	set(0x4D, opEOR, Absolute, "EOR")
	set(0x5D, opEOR, AbsoluteX, "EOR")
	set(0x59, opEOR, AbsoluteY, "EOR")
	set(0x41, opEOR, IndirectX, "EOR")
	set(0x51, opEOR, IndirectY, "EOR")

	// INC / INX / INY
	set(0xE6, opINCmem, ZeroPage, "INC")
	set(0xF6, opINCmem, ZeroPageX, "INC")
	set(0xEE, opINCmem, Absolute, "INC")
	set(0xFE, opINCmem, AbsoluteX, "INC")
	set(0xE8, opINX, Implicit, "INX")
	set(0xC8, opINY, Implicit, "INY")

	// JMP / JSR / RTS / RTI
	set(0x4C, opJMP, Absolute, "JMP")
	set(0x6C, opJMP, Indirect, "JMP")
	set(0x20, opJSR, Absolute, "JSR")
	set(0x60, opRTS, Implicit, "RTS")
	set(0x40, opRTI, Implicit, "RTI")

	// LDA / LDX / LDY
	set(0xA9, opLDA, Immediate, "LDA")
	set(0xA5, opLDA, ZeroPage, "LDA")
	set(0xB5, opLDA, ZeroPageX, "LDA")
	set(0xAD, opLDA, Absolute, "LDA")
	set(0xBD, opLDA, AbsoluteX, "LDA")
	set(0xB9, opLDA, AbsoluteY, "LDA")
	set(0xA1, opLDA, IndirectX, "LDA")
	set(0xB1, opLDA, IndirectY, "LDA")
	set(0xA2, opLDX, Immediate, "LDX")
	set(0xA6, opLDX, ZeroPage, "LDX")
	set(0xB6, opLDX, ZeroPageY, "LDX")
	set(0xAE, opLDX, Absolute, "LDX")
	set(0xBE, opLDX, AbsoluteY, "LDX")
	set(0xA0, opLDY, Immediate, "LDY")
	set(0xA4, opLDY, ZeroPage, "LDY")
	set(0xB4, opLDY, ZeroPageX, "LDY")
	set(0xAC, opLDY, Absolute, "LDY")
	set(0xBC, opLDY, AbsoluteX, "LDY")

	// LSR
	set(0x4A, opLSR, Accumulator, "LSR")
	set(0x46, opLSR, ZeroPage, "LSR")
	set(0x56, opLSR, ZeroPageX, "LSR")
	set(0x4E, opLSR, Absolute, "LSR")
	set(0x5E, opLSR, AbsoluteX, "LSR")

	// NOP (official + illegal variants, all consuming whatever the
	// mode requires and discarding the result)
	set(0xEA, opNOP, Implicit, "NOP")
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, opNOP, Implicit, "NOP")
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, opNOP, Immediate, "NOP")
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, opNOP, ZeroPage, "NOP")
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, opNOP, ZeroPageX, "NOP")
	}
	set(0x0C, opNOP, Absolute, "NOP")
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, opNOP, AbsoluteX, "NOP")
	}

	// ORA
	set(0x09, opORA, Immediate, "ORA")
	set(0x05, opORA, ZeroPage, "ORA")
	set(0x15, opORA, ZeroPageX, "ORA")
	set(0x0D, opORA, Absolute, "ORA")
	set(0x1D, opORA, AbsoluteX, "ORA")
	set(0x19, opORA, AbsoluteY, "ORA")
	set(0x01, opORA, IndirectX, "ORA")
	set(0x11, opORA, IndirectY, "ORA")

	// Stack
	set(0x48, opPHA, Implicit, "PHA")
	set(0x08, opPHP, Implicit, "PHP")
	set(0x68, opPLA, Implicit, "PLA")
	set(0x28, opPLP, Implicit, "PLP")

	// ROL / ROR
	set(0x2A, opROL, Accumulator, "ROL")
	set(0x26, opROL, ZeroPage, "ROL")
	set(0x36, opROL, ZeroPageX, "ROL")
	set(0x2E, opROL, Absolute, "ROL")
	set(0x3E, opROL, AbsoluteX, "ROL")
	set(0x6A, opROR, Accumulator, "ROR")
	set(0x66, opROR, ZeroPage, "ROR")
	set(0x76, opROR, ZeroPageX, "ROR")
	set(0x6E, opROR, Absolute, "ROR")
	set(0x7E, opROR, AbsoluteX, "ROR")

	// SBC (0xEB is the well-documented illegal duplicate of 0xE9)
	set(0xE9, opSBC, Immediate, "SBC")
	set(0xEB, opSBC, Immediate, "SBC")
	set(0xE5, opSBC, ZeroPage, "SBC")
	set(0xF5, opSBC, ZeroPageX, "SBC")
	set(0xED, opSBC, Absolute, "SBC")
	set(0xFD, opSBC, AbsoluteX, "SBC")
	set(0xF9, opSBC, AbsoluteY, "SBC")
	set(0xE1, opSBC, IndirectX, "SBC")
	set(0xF1, opSBC, IndirectY, "SBC")

	// STA / STX / STY
	set(0x85, opSTA, ZeroPage, "STA")
	set(0x95, opSTA, ZeroPageX, "STA")
	set(0x8D, opSTA, Absolute, "STA")
	set(0x9D, opSTA, AbsoluteX, "STA")
	set(0x99, opSTA, AbsoluteY, "STA")
	set(0x81, opSTA, IndirectX, "STA")
	set(0x91, opSTA, IndirectY, "STA")
	set(0x86, opSTX, ZeroPage, "STX")
	set(0x96, opSTX, ZeroPageY, "STX")
	set(0x8E, opSTX, Absolute, "STX")
	set(0x84, opSTY, ZeroPage, "STY")
	set(0x94, opSTY, ZeroPageX, "STY")
	set(0x8C, opSTY, Absolute, "STY")

	// Transfers
	set(0xAA, opTAX, Implicit, "TAX")
	set(0xA8, opTAY, Implicit, "TAY")
	set(0xBA, opTSX, Implicit, "TSX")
	set(0x8A, opTXA, Implicit, "TXA")
	set(0x9A, opTXS, Implicit, "TXS")
	set(0x98, opTYA, Implicit, "TYA")

	// Documented illegal opcodes, real-hardware byte/mode mappings.
	set(0x07, opSLO, ZeroPage, "SLO")
	set(0x17, opSLO, ZeroPageX, "SLO")
	set(0x0F, opSLO, Absolute, "SLO")
	set(0x1F, opSLO, AbsoluteX, "SLO")
	set(0x1B, opSLO, AbsoluteY, "SLO")
	set(0x03, opSLO, IndirectX, "SLO")
	set(0x13, opSLO, IndirectY, "SLO")

	set(0x27, opRLA, ZeroPage, "RLA")
	set(0x37, opRLA, ZeroPageX, "RLA")
	set(0x2F, opRLA, Absolute, "RLA")
	set(0x3F, opRLA, AbsoluteX, "RLA")
	set(0x3B, opRLA, AbsoluteY, "RLA")
	set(0x23, opRLA, IndirectX, "RLA")
	set(0x33, opRLA, IndirectY, "RLA")

	set(0x47, opSRE, ZeroPage, "SRE")
	set(0x57, opSRE, ZeroPageX, "SRE")
	set(0x4F, opSRE, Absolute, "SRE")
	set(0x5F, opSRE, AbsoluteX, "SRE")
	set(0x5B, opSRE, AbsoluteY, "SRE")
	set(0x43, opSRE, IndirectX, "SRE")
	set(0x53, opSRE, IndirectY, "SRE")

	set(0x67, opRRA, ZeroPage, "RRA")
	set(0x77, opRRA, ZeroPageX, "RRA")
	set(0x6F, opRRA, Absolute, "RRA")
	set(0x7F, opRRA, AbsoluteX, "RRA")
	set(0x7B, opRRA, AbsoluteY, "RRA")
	set(0x63, opRRA, IndirectX, "RRA")
	set(0x73, opRRA, IndirectY, "RRA")

	set(0xC7, opDCP, ZeroPage, "DCP")
	set(0xD7, opDCP, ZeroPageX, "DCP")
	set(0xCF, opDCP, Absolute, "DCP")
	set(0xDF, opDCP, AbsoluteX, "DCP")
	set(0xDB, opDCP, AbsoluteY, "DCP")
	set(0xC3, opDCP, IndirectX, "DCP")
	set(0xD3, opDCP, IndirectY, "DCP")

	set(0xE7, opISC, ZeroPage, "ISC")
	set(0xF7, opISC, ZeroPageX, "ISC")
	set(0xEF, opISC, Absolute, "ISC")
	set(0xFF, opISC, AbsoluteX, "ISC")
	set(0xFB, opISC, AbsoluteY, "ISC")
	set(0xE3, opISC, IndirectX, "ISC")
	set(0xF3, opISC, IndirectY, "ISC")

	set(0xA7, opLAX, ZeroPage, "LAX")
	set(0xB7, opLAX, ZeroPageY, "LAX")
	set(0xAF, opLAX, Absolute, "LAX")
	set(0xBF, opLAX, AbsoluteY, "LAX")
	set(0xA3, opLAX, IndirectX, "LAX")
	set(0xB3, opLAX, IndirectY, "LAX")

	set(0x87, opSAX, ZeroPage, "SAX")
	set(0x97, opSAX, ZeroPageY, "SAX")
	set(0x8F, opSAX, Absolute, "SAX")
	set(0x83, opSAX, IndirectX, "SAX")

	set(0x0B, opANC, Immediate, "ANC")
	set(0x2B, opANC, Immediate, "ANC")
	set(0x4B, opALR, Immediate, "ALR")
	set(0x6B, opARR, Immediate, "ARR")

	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, opJAM, Implicit, "JAM")
	}

	return t
}

// opDECmem and opINCmem are the memory forms of DEC/INC, sharing the
// rmw primitive with every other read-modify-write handler. They are
// named distinctly from opDEX/opDEY/opINX/opINY, which operate on
// registers and take no addressing mode.
func opDECmem(c *CPU, bus Bus, mode AddressingMode) {
	addr := c.resolveAddress(bus, mode, true)
	_, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v - 1 })
	c.setNZ(updated)
}

func opINCmem(c *CPU, bus Bus, mode AddressingMode) {
	addr := c.resolveAddress(bus, mode, true)
	_, updated := c.rmw(bus, addr, func(v uint8) uint8 { return v + 1 })
	c.setNZ(updated)
}
