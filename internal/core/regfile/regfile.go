/*
 * rv32im core - integer register file
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

// Package regfile implements the 32 general-purpose integer registers of a
// single RV32 hart. Register x0 is hard-wired to zero: reads always return
// 0 and writes are discarded.
package regfile

// NumRegs is the number of integer registers in the RV32 base ISA.
const NumRegs = 32

// File holds the 32 integer registers of one hart.
type File struct {
	regs [NumRegs]uint32
}

// Read returns the value of register i. Reading x0 always returns 0.
func (f *File) Read(i int) uint32 {
	if i == 0 {
		return 0
	}
	return f.regs[i]
}

// Write sets register i to v. Writes to x0 are silently discarded.
func (f *File) Write(i int, v uint32) {
	if i == 0 {
		return
	}
	f.regs[i] = v
}

// Reset clears every register, including the (already zero) x0 slot.
func (f *File) Reset() {
	for i := range f.regs {
		f.regs[i] = 0
	}
}

// Snapshot copies out all 32 register values, for inspection between ticks.
func (f *File) Snapshot() [NumRegs]uint32 {
	return f.regs
}
