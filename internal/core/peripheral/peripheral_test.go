package peripheral

import "testing"

func TestWordRoundTrip(t *testing.T) {
	p := New("uart0", 0x1000_0000, 4, 0x1000_0000)
	p.WriteU32(0x1000_0004, 0xAB)
	if got := p.ReadU32(0x1000_0004); got != 0xAB {
		t.Fatalf("got %#x, want 0xAB", got)
	}
}

func TestOutOfRangeIsNoop(t *testing.T) {
	p := New("uart0", 0x1000_0000, 1, 0x1000_0000)
	if got := p.ReadU32(0x2000_0000); got != 0 {
		t.Fatalf("out-of-range read = %#x, want 0", got)
	}
	p.WriteU32(0x2000_0000, 0xFF) // must not panic, must be a no-op
}

func TestInterruptLine(t *testing.T) {
	p := New("timer0", 0x2000_0000, 2, 0x2000_0000)
	if p.Pending() {
		t.Fatal("should start with no pending interrupt")
	}
	p.WriteU32(0x2000_0000, InterruptPending|0x3)
	if !p.Pending() {
		t.Fatal("expected interrupt pending after setting top bit")
	}
	p.ClearIntr()
	if p.Pending() {
		t.Fatal("interrupt still pending after ClearIntr")
	}
	if got := p.GetIntr(); got != 0 {
		t.Fatalf("intr register after clear = %#x, want 0", got)
	}
}

func TestInRangeWindow(t *testing.T) {
	p := New("dev", 0x100, 4, 0x100) // span = 16 bytes: [0x100, 0x110)
	if !p.InRange(0x100) || !p.InRange(0x10F) {
		t.Fatal("boundary addresses should be in range")
	}
	if p.InRange(0x110) || p.InRange(0xFF) {
		t.Fatal("out-of-window addresses should not be in range")
	}
}

func TestDumpIsSnapshot(t *testing.T) {
	p := New("dev", 0, 2, 0)
	p.WriteU32(0, 7)
	snap := p.Dump()
	p.WriteU32(0, 8)
	if snap[0] != 7 {
		t.Fatalf("dump mutated by later write: got %d, want 7", snap[0])
	}
}
