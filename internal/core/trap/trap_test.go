package trap

import (
	"testing"

	"github.com/rv32im/core/internal/core/bus"
	"github.com/rv32im/core/internal/core/csr"
	"github.com/rv32im/core/internal/core/hart"
	"github.com/rv32im/core/internal/core/peripheral"
)

func TestSyncTrapDeliveredWhenMIESet(t *testing.T) {
	h := hart.New("hart0", 0x14, 50)
	h.CSRs.SetMIE(true)
	h.CSRs.Write(csr.MTVec, 0x200)
	h.Latch(hart.InstructionException, 0x10)

	c := New(nil)
	c.Run([]*hart.Hart{h}, bus.New(nil))

	if h.HasPending() {
		t.Fatal("pending exception should be cleared after delivery")
	}
	if h.PC != 0x200 {
		t.Fatalf("PC = %#x, want 0x200 (mtvec)", h.PC)
	}
	mepc, _ := h.CSRs.Read(csr.MEPC)
	if mepc != 0x10 {
		t.Fatalf("mepc = %#x, want 0x10", mepc)
	}
	mcause, _ := h.CSRs.Read(csr.MCause)
	if mcause != 0x02 {
		t.Fatalf("mcause = %#x, want 0x02", mcause)
	}
	if h.CSRs.MIE() {
		t.Fatal("MIE should be cleared on trap entry")
	}
}

func TestSyncTrapDeferredWhenMIEClear(t *testing.T) {
	h := hart.New("hart0", 0x14, 50)
	h.Latch(hart.InstructionException, 0x10)

	c := New(nil)
	c.Run([]*hart.Hart{h}, bus.New(nil))

	if !h.HasPending() {
		t.Fatal("exception should remain pending when MIE is clear")
	}
	if h.PC != 0x14 {
		t.Fatalf("PC should be untouched: got %#x, want 0x14", h.PC)
	}
}

func TestMRETRoundTripAfterTrap(t *testing.T) {
	// Full scenario from spec.md §8: illegal instruction at PC=0x10 with
	// mtvec=0x200 and mstatus|=0x08, then mret.
	h := hart.New("hart0", 0x10, 50)
	h.CSRs.SetMIE(true)
	h.CSRs.Write(csr.MTVec, 0x200)
	h.Latch(hart.InstructionException, 0x10)

	c := New(nil)
	c.Run([]*hart.Hart{h}, bus.New(nil))

	if h.PC != 0x200 {
		t.Fatalf("PC after trap = %#x, want 0x200", h.PC)
	}
	mepc, _ := h.CSRs.Read(csr.MEPC)
	if mepc != 0x10 {
		t.Fatalf("mepc = %#x, want 0x10", mepc)
	}
	mcause, _ := h.CSRs.Read(csr.MCause)
	if mcause != 0x02 {
		t.Fatalf("mcause = %#x, want 0x02", mcause)
	}
	if h.CSRs.MIE() {
		t.Fatal("MIE should be clear after trap")
	}

	// Simulate executing mret at the handler.
	h.CSRs.SetMIE(true)
	h.PC = h.CSRs.ReturnPC()

	if h.PC != 0x10 {
		t.Fatalf("PC after mret = %#x, want 0x10", h.PC)
	}
	if !h.CSRs.MIE() {
		t.Fatal("MIE should be set after mret")
	}
}

func TestAsyncInterruptDeliveredToHartZeroWhenNoSync(t *testing.T) {
	h0 := hart.New("hart0", 0x40, 50)
	h0.CSRs.SetMIE(true)
	h0.CSRs.Write(csr.MTVec, 0x300)

	b := bus.New(nil)
	p := peripheral.New("timer0", 0x2000_0000, 1, 0x2000_0000)
	p.WriteU32(0x2000_0000, peripheral.InterruptPending)
	b.AddPeripheral(p)

	c := New(nil)
	c.Run([]*hart.Hart{h0}, b)

	if h0.PC != 0x300 {
		t.Fatalf("PC = %#x, want 0x300", h0.PC)
	}
	mcause, _ := h0.CSRs.Read(csr.MCause)
	if mcause != 0x8000_0008 {
		t.Fatalf("mcause = %#x, want 0x80000008", mcause)
	}
	if p.Pending() {
		t.Fatal("peripheral interrupt line should be cleared after delivery")
	}
}

func TestSyncTrapTakesPriorityOverAsync(t *testing.T) {
	h0 := hart.New("hart0", 0x40, 50)
	h0.CSRs.SetMIE(true)
	h0.CSRs.Write(csr.MTVec, 0x300)
	h0.Latch(hart.InstructionException, 0x20)

	b := bus.New(nil)
	p := peripheral.New("timer0", 0x2000_0000, 1, 0x2000_0000)
	p.WriteU32(0x2000_0000, peripheral.InterruptPending)
	b.AddPeripheral(p)

	c := New(nil)
	c.Run([]*hart.Hart{h0}, b)

	mcause, _ := h0.CSRs.Read(csr.MCause)
	if mcause != 0x02 {
		t.Fatalf("expected synchronous trap to win, mcause = %#x", mcause)
	}
	if !p.Pending() {
		t.Fatal("peripheral interrupt should remain pending; only one trap per tick")
	}
}

func TestSyncTrapDeliveredToEachHartInOneRun(t *testing.T) {
	h0 := hart.New("h0", 0, 50)
	h0.CSRs.SetMIE(true)
	h1 := hart.New("h1", 0, 50)
	h1.CSRs.SetMIE(true)
	h0.Latch(hart.InstructionException, 0x4)
	h1.Latch(hart.InstructionException, 0x8)

	c := New(nil)
	c.Run([]*hart.Hart{h0, h1}, bus.New(nil))

	if h0.HasPending() || h1.HasPending() {
		t.Fatal("both harts should have had their independent sync traps delivered")
	}
}
