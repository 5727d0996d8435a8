package nes

import "testing"

func makeROM(prg, chr []byte) []byte {
	h := []byte{'N', 'E', 'S', 0x1A, byte(len(prg) / 0x4000), byte(len(chr) / 0x2000), 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	rom := append(h, prg...)
	rom = append(rom, chr...)
	return rom
}

func TestLoadAndReset(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC] = 0x00 // reset vector low byte ($FFFC - $C000 = 0x3FFC)
	prg[0x3FFD] = 0xC0 // reset vector high byte -> PC = 0xC000
	chr := make([]byte, 0x2000)

	e, err := Load(makeROM(prg, chr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := e.Registers().PC; got != 0xC000 {
		t.Fatalf("PC = %#04x, want 0xC000", got)
	}
}

func TestLoadRejectsBadROM(t *testing.T) {
	if _, err := Load([]byte("not a rom")); err == nil {
		t.Fatal("expected an error for a malformed ROM")
	}
}

func TestStepAdvancesOneInstruction(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0xC0
	prg[0x0000] = 0xEA // NOP at $C000
	prg[0x0001] = 0xEA // NOP at $C001
	chr := make([]byte, 0x2000)

	e, err := Load(makeROM(prg, chr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.Step()
	if got := e.Registers().PC; got != 0xC001 {
		t.Fatalf("PC = %#04x after one step, want 0xC001", got)
	}
}

func TestJammedStepIsANoOp(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0xC0
	prg[0x0000] = 0x02 // JAM
	chr := make([]byte, 0x2000)

	e, err := Load(makeROM(prg, chr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.Step()
	if !e.Jammed() {
		t.Fatal("expected emulator to report jammed after executing JAM")
	}
	pcAfterJam := e.Registers().PC
	e.Step()
	if e.Registers().PC != pcAfterJam {
		t.Fatalf("PC moved after Step on a jammed CPU: %#04x -> %#04x", pcAfterJam, e.Registers().PC)
	}
}

func TestCHRSnapshot(t *testing.T) {
	prg := make([]byte, 0x4000)
	chr := make([]byte, 0x2000)
	chr[10] = 0x77

	e, err := Load(makeROM(prg, chr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap, ok := e.CHRSnapshot()
	if !ok || snap[10] != 0x77 {
		t.Fatalf("CHRSnapshot() = %v, %v, want byte 10 = 0x77", ok, snap[:16])
	}
}

type fakeTap struct{ events []EventTag }

func (f *fakeTap) OnEvent(tag EventTag, addr uint16, val uint8) {
	f.events = append(f.events, tag)
}

func TestEventTapObservesBusTraffic(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0xC0
	prg[0x0000] = 0xEA // NOP at $C000
	prg[0x0001] = 0xEA // NOP at $C001
	chr := make([]byte, 0x2000)

	e, err := Load(makeROM(prg, chr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tap := &fakeTap{}
	e.SetEventTap(tap)
	e.Step()
	if len(tap.events) == 0 {
		t.Fatal("expected the event tap to observe at least one bus read during a step")
	}
	for _, tag := range tap.events {
		if tag != EventBusRead && tag != EventBusWrite {
			t.Fatalf("unexpected event tag %v from a plain ROM-resident NOP", tag)
		}
	}

	e.SetEventTap(nil)
	before := len(tap.events)
	e.Step()
	if len(tap.events) != before {
		t.Fatal("expected no further events after SetEventTap(nil)")
	}
}

type fakeSink struct{ calls int }

func (f *fakeSink) PutPixel(row, col int, rgb [3]uint8) { f.calls++ }

func TestScreenSinkStoredNotCalled(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0xC0
	prg[0x0000] = 0xEA // NOP at $C000
	chr := make([]byte, 0x2000)
	e, err := Load(makeROM(prg, chr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sink := &fakeSink{}
	e.SetScreenSink(sink)
	if e.ScreenSink() != sink {
		t.Fatal("ScreenSink() should return the installed sink")
	}
	e.Step()
	if sink.calls != 0 {
		t.Fatal("the core must never call the screen sink itself")
	}
}
