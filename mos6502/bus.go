package mos6502

// Bus is everything the CPU needs from its memory-mapped world. The
// CPU never stores one: it is threaded through every call that needs
// it, mirroring original_source/nes-lib/src/cpu.rs's `tick(&mut self,
// bus: &mut B)` shape rather than the teacher's stored-mapper field.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}
