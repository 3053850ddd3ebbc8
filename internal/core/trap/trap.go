/*
 * rv32im core - machine-mode trap coordinator
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

// Package trap implements the post-tick trap coordinator: it examines each
// hart's pending exception slot and the bus's peripheral interrupt lines,
// and mutates CSRs and PC on delivery. It runs once per tick, after every
// hart has fetched and executed.
package trap

import (
	"log/slog"

	"github.com/rv32im/core/internal/core/bus"
	"github.com/rv32im/core/internal/core/hart"
	"github.com/rv32im/core/internal/trace"
)

// syncCause is the fixed synchronous-exception cause code this ISA subset
// uses regardless of fault kind, per the design decision to preserve a
// single generic cause rather than per-cause codes.
const syncCause uint32 = 0x02

// asyncCause is the cause code written when an asynchronous peripheral
// interrupt is delivered.
const asyncCause uint32 = 0x8000_0008

// Coordinator runs the post-tick trap delivery algorithm over one SoC's
// harts and bus.
type Coordinator struct {
	logger *slog.Logger
}

// New creates a Coordinator. logger may be nil.
func New(logger *slog.Logger) *Coordinator {
	return &Coordinator{logger: trace.OrDefault(logger)}
}

// Run examines harts in array order for a pending synchronous exception,
// delivering at most one trap per hart per call. If no hart had a
// synchronous exception delivered, it then scans peripherals in insertion
// order and delivers the first asserted interrupt to harts[0].
func (c *Coordinator) Run(harts []*hart.Hart, b *bus.Bus) {
	delivered := false
	for _, h := range harts {
		if c.deliverSync(h) {
			delivered = true
		}
	}
	if delivered {
		return
	}
	c.deliverAsync(harts, b)
}

func (c *Coordinator) deliverSync(h *hart.Hart) bool {
	if !h.HasPending() {
		return false
	}
	if !h.CSRs.MIE() {
		// Deferred: the exception stays latched for a later tick.
		return false
	}

	pc := pendingPC(h)
	c.logger.Info("synchronous trap delivered",
		"hart", h.Name, "kind", kindName(h.Pending.Kind), "pc", pc)

	h.CSRs.EnterTrap(pc, syncCause)
	h.PC = h.CSRs.TrapVector()
	h.ClearPending()
	return true
}

// pendingPC returns the PC to record in mepc for the hart's pending
// exception. Both exception kinds this core latches (instruction decode
// failure, fetch fault) carry the faulting PC as their payload.
func pendingPC(h *hart.Hart) uint32 {
	return h.Pending.Payload
}

func kindName(k hart.ExceptionKind) string {
	switch k {
	case hart.UserSoftInterrupt:
		return "user-soft-interrupt"
	case hart.ExternalInterrupt:
		return "external-interrupt"
	case hart.InstructionException:
		return "illegal-instruction"
	case hart.MemoryException:
		return "fetch-fault"
	default:
		return "none"
	}
}

func (c *Coordinator) deliverAsync(harts []*hart.Hart, b *bus.Bus) {
	if len(harts) == 0 {
		return
	}
	p := b.ScanInterrupts()
	if p == nil {
		return
	}
	p.ClearIntr()

	h := harts[0]
	c.logger.Info("peripheral interrupt delivered", "hart", h.Name, "peripheral", p.Name)
	h.CSRs.EnterTrap(h.PC, asyncCause)
	h.PC = h.CSRs.TrapVector()
}
