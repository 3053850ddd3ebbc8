package csr

import (
	"errors"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	var f File
	for _, addr := range []uint16{MStatus, MTVec, MEPC, MCause} {
		if err := f.Write(addr, 0x12345678); err != nil {
			t.Fatalf("write %#x: %v", addr, err)
		}
		got, err := f.Read(addr)
		if err != nil {
			t.Fatalf("read %#x: %v", addr, err)
		}
		if got != 0x12345678 {
			t.Fatalf("read %#x = %#x, want 0x12345678", addr, got)
		}
	}
}

func TestUnknownAddress(t *testing.T) {
	var f File
	if _, err := f.Read(0x342 + 1); !errors.Is(err, ErrUnknown) {
		t.Fatalf("read unknown: err = %v, want ErrUnknown", err)
	}
	if err := f.Write(0xC00, 1); !errors.Is(err, ErrUnknown) {
		t.Fatalf("write unknown: err = %v, want ErrUnknown", err)
	}
}

func TestEnterTrapClearsMIEAndRecordsState(t *testing.T) {
	var f File
	f.SetMIE(true)
	f.Write(MTVec, 0x200)

	f.EnterTrap(0x10, 0x02)

	if f.MIE() {
		t.Fatal("MIE still set after EnterTrap")
	}
	if f.ReturnPC() != 0x10 {
		t.Fatalf("mepc = %#x, want 0x10", f.ReturnPC())
	}
	mcause, _ := f.Read(MCause)
	if mcause != 0x02 {
		t.Fatalf("mcause = %#x, want 0x02", mcause)
	}
	if f.TrapVector() != 0x200 {
		t.Fatalf("mtvec = %#x, want 0x200", f.TrapVector())
	}
}

func TestSetMIEMret(t *testing.T) {
	var f File
	f.EnterTrap(0x10, 0x02)
	f.SetMIE(true)
	if !f.MIE() {
		t.Fatal("MIE not set after mret-style SetMIE(true)")
	}
}

func TestOtherMstatusBitsRoundTrip(t *testing.T) {
	var f File
	// bits outside MIE/MPIE must round-trip unchanged.
	f.Write(MStatus, 0xFFFFFFF7) // all bits set except MIE
	got, _ := f.Read(MStatus)
	if got != 0xFFFFFFF7 {
		t.Fatalf("mstatus = %#x, want 0xFFFFFFF7", got)
	}
}
