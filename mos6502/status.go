package mos6502

import "strings"

// Processor status flags, fixed bit positions.
// https://www.nesdev.org/obelisk-6502-guide/registers.html
const (
	FlagCarry            = 1 << 0 // C
	FlagZero             = 1 << 1 // Z
	FlagInterruptDisable = 1 << 2 // I
	FlagDecimal          = 1 << 3 // D
	FlagBreak            = 1 << 4 // B
	FlagUnused           = 1 << 5 // unused: PHP pushes it set, PLP clears it, RTI sets it
	FlagOverflow         = 1 << 6 // V
	FlagNegative         = 1 << 7 // N
)

// StatusUpdate composes a partial update to the status byte: any
// subset of the seven named flags set to a definite true/false. A nil
// field leaves that bit untouched. Bit 5 (unused) is never part of a
// StatusUpdate — resolve always leaves it in the mask so the stored
// unused bit survives untouched.
//
// Grounded on original_source/nes-lib/src/cpu/status_register.rs's
// SrUpdate/SrUpdateResult pair.
type StatusUpdate struct {
	Carry            *bool
	Zero             *bool
	InterruptDisable *bool
	Decimal          *bool
	Break            *bool
	Overflow         *bool
	Negative         *bool
}

func boolPtr(b bool) *bool { return &b }

// numFlags builds the StatusUpdate that sets Z and N from a byte
// result: Z when the byte is zero, N when bit 7 is set. Every other
// field is left nil.
func numFlags(result uint8) StatusUpdate {
	return StatusUpdate{
		Zero:     boolPtr(result == 0),
		Negative: boolPtr(result&0x80 != 0),
	}
}

// resolve turns the update into a (mask, val) pair such that
// `status = (status & mask) | val` applies exactly the requested
// subset of flags, leaving every other bit — including bit 5 —
// unchanged.
func (u StatusUpdate) resolve() (mask, val uint8) {
	fields := []struct {
		bit uint8
		set *bool
	}{
		{FlagCarry, u.Carry},
		{FlagZero, u.Zero},
		{FlagInterruptDisable, u.InterruptDisable},
		{FlagDecimal, u.Decimal},
		{FlagBreak, u.Break},
		{FlagOverflow, u.Overflow},
		{FlagNegative, u.Negative},
	}

	mask = 0xFF
	for _, f := range fields {
		if f.set == nil {
			continue
		}
		mask &^= uint8(f.bit)
		if *f.set {
			val |= uint8(f.bit)
		}
	}
	return mask, val
}

// apply updates status in place per u.resolve().
func (u StatusUpdate) apply(status *uint8) {
	mask, val := u.resolve()
	*status = (*status & mask) | val
}

var flagGlyphs = []struct {
	bit   uint8
	label byte
}{
	{FlagNegative, 'N'},
	{FlagOverflow, 'V'},
	{FlagUnused, '-'},
	{FlagBreak, 'B'},
	{FlagDecimal, 'D'},
	{FlagInterruptDisable, 'I'},
	{FlagZero, 'Z'},
	{FlagCarry, 'C'},
}

// statusString renders status the way a debugger trace would: one
// letter per flag, high bit to low, '.' when clear.
func statusString(status uint8) string {
	var sb strings.Builder
	for _, g := range flagGlyphs {
		if status&g.bit != 0 {
			sb.WriteByte(g.label)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
