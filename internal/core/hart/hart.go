/*
 * rv32im core - one RV32 hardware thread
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

// Package hart models a single RV32 execution context: program counter,
// integer register file, machine-mode CSRs, and a one-slot pending
// exception latched by the executor and drained by the trap coordinator.
package hart

import (
	"github.com/rv32im/core/internal/core/csr"
	"github.com/rv32im/core/internal/core/regfile"
)

// ExceptionKind tags the single pending exception slot a hart may carry
// between the end of one tick's execute step and the trap coordinator.
type ExceptionKind int

const (
	// NoException means nothing is pending.
	NoException ExceptionKind = iota
	// UserSoftInterrupt is a software-posted interrupt (carries a code).
	UserSoftInterrupt
	// ExternalInterrupt is an asynchronous peripheral interrupt (carries a code).
	ExternalInterrupt
	// InstructionException is an illegal-instruction decode failure (carries the faulting PC).
	InstructionException
	// MemoryException is a failed instruction fetch (carries the faulting address).
	MemoryException
)

// Exception is the hart's single pending-trap slot.
type Exception struct {
	Kind    ExceptionKind
	Payload uint32
}

// Hart is one RV32 execution context: PC, integer registers, CSRs, and a
// pending exception slot. Harts never hold a back-pointer to the SoC or bus;
// the executor takes mutable references for the duration of one instruction.
type Hart struct {
	Name string
	PC   uint32

	Regs regfile.File
	CSRs csr.File

	Pending Exception

	freqMHz float64
}

// New creates a hart named name, reset to resetPC, with no pending exception.
func New(name string, resetPC uint32, freqMHz float64) *Hart {
	return &Hart{Name: name, PC: resetPC, freqMHz: freqMHz}
}

// FreqMHz returns the hart's configured clock frequency, advisory only.
func (h *Hart) FreqMHz() float64 {
	return h.freqMHz
}

// Latch records a pending exception, overwriting anything already pending.
// Only one trap is delivered per tick per hart, so overwriting is safe: the
// executor never latches twice within one step.
func (h *Hart) Latch(kind ExceptionKind, payload uint32) {
	h.Pending = Exception{Kind: kind, Payload: payload}
}

// HasPending reports whether an exception is latched.
func (h *Hart) HasPending() bool {
	return h.Pending.Kind != NoException
}

// ClearPending drops the latched exception, called once it has been
// delivered by the trap coordinator. A deferred exception stays latched.
func (h *Hart) ClearPending() {
	h.Pending = Exception{}
}
