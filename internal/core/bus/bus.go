/*
 * rv32im core - address-routed memory/peripheral bus
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

// Package bus implements the SoC's address decoder: it routes byte/halfword/
// word loads and stores, and instruction fetches, to the first matching
// memory region or (for word-wide data accesses only) peripheral.
package bus

import (
	"log/slog"

	"github.com/rv32im/core/internal/core/memregion"
	"github.com/rv32im/core/internal/core/peripheral"
	"github.com/rv32im/core/internal/trace"
)

// Bus owns the ordered collections of regions and peripherals that make up
// one SoC's address space. Regions are searched before peripherals; within
// each collection the first match (insertion order) wins.
type Bus struct {
	Regions     []*memregion.Region
	Peripherals []*peripheral.Peripheral

	logger *slog.Logger
}

// New creates an empty bus. logger may be nil, in which case diagnostics go
// to slog.Default().
func New(logger *slog.Logger) *Bus {
	return &Bus{logger: trace.OrDefault(logger)}
}

// AddRegion appends a region and returns its index.
func (b *Bus) AddRegion(r *memregion.Region) int {
	b.Regions = append(b.Regions, r)
	return len(b.Regions) - 1
}

// AddPeripheral appends a peripheral and returns its index.
func (b *Bus) AddPeripheral(p *peripheral.Peripheral) int {
	b.Peripherals = append(b.Peripherals, p)
	return len(b.Peripherals) - 1
}

func (b *Bus) findRegion(addr uint32) *memregion.Region {
	for _, r := range b.Regions {
		if r.InRange(addr) {
			return r
		}
	}
	return nil
}

func (b *Bus) findPeripheral(addr uint32) *peripheral.Peripheral {
	for _, p := range b.Peripherals {
		if p.InRange(addr) {
			return p
		}
	}
	return nil
}

// FetchWord reads a 32-bit instruction word at addr. Fetches only ever
// route through regions, never peripherals; ok is false if no region
// matches, which the caller turns into a MemoryException trap.
func (b *Bus) FetchWord(addr uint32) (word uint32, ok bool) {
	r := b.findRegion(addr)
	if r == nil {
		return 0, false
	}
	v, err := r.ReadU32(addr)
	if err != nil {
		b.logger.Warn("fetch straddles region boundary", "addr", addr, "region", r.Name, "err", err)
		return 0, false
	}
	return v, true
}

// LB reads a sign-extended byte.
func (b *Bus) LB(addr uint32) uint32 {
	v, ok := b.readByte(addr)
	if !ok {
		return 0
	}
	return uint32(int32(int8(v)))
}

// LBU reads a zero-extended byte.
func (b *Bus) LBU(addr uint32) uint32 {
	v, ok := b.readByte(addr)
	if !ok {
		return 0
	}
	return uint32(v)
}

// LH reads a sign-extended halfword.
func (b *Bus) LH(addr uint32) uint32 {
	v, ok := b.readHalf(addr)
	if !ok {
		return 0
	}
	return uint32(int32(int16(v)))
}

// LHU reads a zero-extended halfword.
func (b *Bus) LHU(addr uint32) uint32 {
	v, ok := b.readHalf(addr)
	if !ok {
		return 0
	}
	return uint32(v)
}

// LW reads a full word, falling through to peripherals if no region
// matches.
func (b *Bus) LW(addr uint32) uint32 {
	if r := b.findRegion(addr); r != nil {
		v, err := r.ReadU32(addr)
		if err != nil {
			b.logger.Warn("load straddles region boundary", "addr", addr, "region", r.Name, "err", err)
			return 0
		}
		return v
	}
	if p := b.findPeripheral(addr); p != nil {
		return p.ReadU32(addr)
	}
	b.logger.Warn("load matched no region or peripheral", "addr", addr)
	return 0
}

// SB writes a byte, truncating v.
func (b *Bus) SB(addr uint32, v uint32) {
	r := b.findRegion(addr)
	if r == nil {
		b.logger.Warn("store(byte) matched no region", "addr", addr)
		return
	}
	if err := r.WriteU8(addr, uint8(v)); err != nil {
		b.logger.Warn("store straddles region boundary", "addr", addr, "region", r.Name, "err", err)
	}
}

// SH writes a halfword, truncating v.
func (b *Bus) SH(addr uint32, v uint32) {
	r := b.findRegion(addr)
	if r == nil {
		b.logger.Warn("store(half) matched no region", "addr", addr)
		return
	}
	if err := r.WriteU16(addr, uint16(v)); err != nil {
		b.logger.Warn("store straddles region boundary", "addr", addr, "region", r.Name, "err", err)
	}
}

// SW writes a full word, falling through to peripherals if no region
// matches.
func (b *Bus) SW(addr uint32, v uint32) {
	if r := b.findRegion(addr); r != nil {
		if err := r.WriteU32(addr, v); err != nil {
			b.logger.Warn("store straddles region boundary", "addr", addr, "region", r.Name, "err", err)
		}
		return
	}
	if p := b.findPeripheral(addr); p != nil {
		p.WriteU32(addr, v)
		return
	}
	b.logger.Warn("store(word) matched no region or peripheral", "addr", addr)
}

func (b *Bus) readByte(addr uint32) (uint8, bool) {
	r := b.findRegion(addr)
	if r == nil {
		b.logger.Warn("load(byte) matched no region", "addr", addr)
		return 0, false
	}
	v, err := r.ReadU8(addr)
	if err != nil {
		b.logger.Warn("load straddles region boundary", "addr", addr, "region", r.Name, "err", err)
		return 0, false
	}
	return v, true
}

func (b *Bus) readHalf(addr uint32) (uint16, bool) {
	r := b.findRegion(addr)
	if r == nil {
		b.logger.Warn("load(half) matched no region", "addr", addr)
		return 0, false
	}
	v, err := r.ReadU16(addr)
	if err != nil {
		b.logger.Warn("load straddles region boundary", "addr", addr, "region", r.Name, "err", err)
		return 0, false
	}
	return v, true
}

// ScanInterrupts returns the first peripheral (in insertion order) whose
// interrupt line is currently asserted, or nil if none are.
func (b *Bus) ScanInterrupts() *peripheral.Peripheral {
	for _, p := range b.Peripherals {
		if p.Pending() {
			return p
		}
	}
	return nil
}
