/*
 * rv32im core - machine-mode control and status registers
 *
 * Copyright 2026, The rv32im core Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package csr implements the small, fixed machine-mode CSR space this core
// recognizes: mstatus, mtvec, mepc, and mcause. Any other address is a fatal
// decode error for this ISA subset.
package csr

import (
	"errors"
	"fmt"
)

// Recognized CSR addresses.
const (
	MStatus uint16 = 0x300
	MTVec   uint16 = 0x305
	MEPC    uint16 = 0x341
	MCause  uint16 = 0x342
)

// mstatus bit positions meaningful to the trap protocol.
const (
	MStatusMIE  uint32 = 1 << 3 // machine interrupt enable
	MStatusMPIE uint32 = 1 << 7 // prior-MIE bit; EnterTrap and SetMIE leave it unchanged
)

// ErrUnknown is returned when an address outside the recognized set is
// read or written. It is fatal to the run, not a guest-visible exception.
var ErrUnknown = errors.New("csr: unknown register address")

// File holds the four machine-mode CSRs this core models.
type File struct {
	mstatus uint32
	mtvec   uint32
	mepc    uint32
	mcause  uint32
}

// Read returns the value at addr, or ErrUnknown if addr is not recognized.
func (f *File) Read(addr uint16) (uint32, error) {
	switch addr {
	case MStatus:
		return f.mstatus, nil
	case MTVec:
		return f.mtvec, nil
	case MEPC:
		return f.mepc, nil
	case MCause:
		return f.mcause, nil
	default:
		return 0, fmt.Errorf("%w: %#x", ErrUnknown, addr)
	}
}

// Write stores v at addr unconditionally (no field masking), or returns
// ErrUnknown if addr is not recognized.
func (f *File) Write(addr uint16, v uint32) error {
	switch addr {
	case MStatus:
		f.mstatus = v
	case MTVec:
		f.mtvec = v
	case MEPC:
		f.mepc = v
	case MCause:
		f.mcause = v
	default:
		return fmt.Errorf("%w: %#x", ErrUnknown, addr)
	}
	return nil
}

// MIE reports whether machine interrupts are currently enabled.
func (f *File) MIE() bool {
	return f.mstatus&MStatusMIE != 0
}

// EnterTrap performs the CSR side effects of trap delivery: records the
// faulting PC and cause, and clears MIE.
func (f *File) EnterTrap(pc, cause uint32) {
	f.mepc = pc
	f.mcause = cause
	f.mstatus &^= MStatusMIE
}

// TrapVector returns mtvec, the PC a trap is delivered to.
func (f *File) TrapVector() uint32 {
	return f.mtvec
}

// ReturnPC returns mepc, the PC an mret instruction resumes at.
func (f *File) ReturnPC() uint32 {
	return f.mepc
}

// SetMIE sets or clears mstatus.MIE, used by mret to re-enable interrupts.
func (f *File) SetMIE(enabled bool) {
	if enabled {
		f.mstatus |= MStatusMIE
	} else {
		f.mstatus &^= MStatusMIE
	}
}
