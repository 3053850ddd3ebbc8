/*
 * rv32im core - memory-mapped peripheral register array
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

// Package peripheral implements a simple memory-mapped device: an array of
// full 32-bit registers at [base, base+regCount*4), with one designated
// register whose top bit signals a pending interrupt.
package peripheral

// InterruptPending is the bit a peripheral's interrupt register sets to
// signal a pending line.
const InterruptPending uint32 = 0x8000_0000

// Peripheral is an array of 32-bit registers addressed word-at-a-time.
// Sub-word accesses are never routed to a peripheral; the bus only offers
// one here for 4-byte accesses.
type Peripheral struct {
	Name     string
	Base     uint32
	IntrAddr uint32

	regs []uint32
}

// New creates a peripheral with regCount zeroed registers starting at base.
// intrAddr names the register (by address, not index) that carries the
// pending-interrupt bit.
func New(name string, base uint32, regCount int, intrAddr uint32) *Peripheral {
	return &Peripheral{
		Name:     name,
		Base:     base,
		IntrAddr: intrAddr,
		regs:     make([]uint32, regCount),
	}
}

// InRange reports whether addr falls within this peripheral's word-aligned
// register window.
func (p *Peripheral) InRange(addr uint32) bool {
	span := uint32(len(p.regs)) * 4
	return addr >= p.Base && addr < p.Base+span
}

func (p *Peripheral) index(addr uint32) int {
	return int((addr - p.Base) >> 2)
}

// ReadU32 returns the register at addr. Out-of-range addresses return 0.
func (p *Peripheral) ReadU32(addr uint32) uint32 {
	if !p.InRange(addr) {
		return 0
	}
	return p.regs[p.index(addr)]
}

// WriteU32 sets the register at addr. Out-of-range addresses are no-ops.
func (p *Peripheral) WriteU32(addr uint32, v uint32) {
	if !p.InRange(addr) {
		return
	}
	p.regs[p.index(addr)] = v
}

// GetIntr returns the value of the designated interrupt register.
func (p *Peripheral) GetIntr() uint32 {
	return p.ReadU32(p.IntrAddr)
}

// ClearIntr zeroes the designated interrupt register.
func (p *Peripheral) ClearIntr() {
	p.WriteU32(p.IntrAddr, 0)
}

// Pending reports whether the interrupt register's top bit is set.
func (p *Peripheral) Pending() bool {
	return p.GetIntr()&InterruptPending != 0
}

// Dump returns a snapshot of every register, for inspection between ticks.
func (p *Peripheral) Dump() []uint32 {
	out := make([]uint32, len(p.regs))
	copy(out, p.regs)
	return out
}
