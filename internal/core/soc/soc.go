/*
 * rv32im core - system-on-chip: harts, bus, and the tick loop
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

// Package soc wires harts, memory regions, and peripherals together behind
// one bus and drives the global tick() that steps every hart once and then
// runs the trap coordinator. It is the single root of the simulator: no
// package-level state exists anywhere in this module, and every SoC value
// is independent of every other.
package soc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rv32im/core/internal/core/bus"
	"github.com/rv32im/core/internal/core/hart"
	"github.com/rv32im/core/internal/core/isa"
	"github.com/rv32im/core/internal/core/memregion"
	"github.com/rv32im/core/internal/core/peripheral"
	"github.com/rv32im/core/internal/core/trap"
	"github.com/rv32im/core/internal/trace"
)

// ErrConfigInvalid is returned by Fill and the error-returning accessors
// when given an out-of-range hart/region index or an unresolvable name.
var ErrConfigInvalid = errors.New("soc: invalid configuration reference")

// SoC owns a set of harts sharing one bus (memory regions + peripherals)
// and drives tick().
type SoC struct {
	Name      string
	tickCount uint64

	harts []*hart.Hart
	bus   *bus.Bus
	trap  *trap.Coordinator

	logger *slog.Logger
}

// New creates an empty SoC named name. logger may be nil, in which case
// slog.Default() is used.
func New(name string, logger *slog.Logger) *SoC {
	logger = trace.OrDefault(logger)
	return &SoC{
		Name:   name,
		bus:    bus.New(logger),
		trap:   trap.New(logger),
		logger: logger,
	}
}

// AddHart appends a hart reset to resetPC, running at freqMHz (advisory
// only), and returns its index.
func (s *SoC) AddHart(name string, resetPC uint32, freqMHz float64) int {
	s.harts = append(s.harts, hart.New(name, resetPC, freqMHz))
	return len(s.harts) - 1
}

// AddRegion appends a named memory region of size bytes at base, and
// returns its index.
func (s *SoC) AddRegion(name string, base, size uint32) int {
	return s.bus.AddRegion(memregion.New(name, base, size))
}

// AddPeripheral appends a named peripheral of regCount registers at base,
// with intrAddr naming its interrupt register, and returns its index.
func (s *SoC) AddPeripheral(name string, base uint32, regCount int, intrAddr uint32) int {
	return s.bus.AddPeripheral(peripheral.New(name, base, regCount, intrAddr))
}

// Fill copies data into the region at regionIndex, starting at offset.
func (s *SoC) Fill(regionIndex int, data []byte, offset uint32) error {
	if regionIndex < 0 || regionIndex >= len(s.bus.Regions) {
		return fmt.Errorf("%w: region index %d", ErrConfigInvalid, regionIndex)
	}
	s.bus.Regions[regionIndex].Fill(offset, data)
	return nil
}

// TickCount returns the number of hart steps executed so far: each Tick
// adds one per hart.
func (s *SoC) TickCount() uint64 {
	return s.tickCount
}

// NumHarts returns the number of harts in this SoC.
func (s *SoC) NumHarts() int {
	return len(s.harts)
}

// Tick steps every hart once (fetch, decode, execute) in array order, then
// runs the trap coordinator once. It returns a non-nil error only for a
// host-fatal condition (an unrecognized CSR address); guest-visible faults
// become a pending exception handled by the trap coordinator, not a
// returned error.
func (s *SoC) Tick() error {
	for _, h := range s.harts {
		if err := s.stepHart(h); err != nil {
			return err
		}
		s.tickCount++
	}
	s.trap.Run(s.harts, s.bus)
	return nil
}

func (s *SoC) stepHart(h *hart.Hart) error {
	word, ok := s.bus.FetchWord(h.PC)
	if !ok {
		h.Latch(hart.MemoryException, h.PC)
		return nil
	}
	return isa.Execute(word, h, s.bus, s.logger)
}

func (s *SoC) hartAt(i int) (*hart.Hart, error) {
	if i < 0 || i >= len(s.harts) {
		return nil, fmt.Errorf("%w: hart index %d", ErrConfigInvalid, i)
	}
	return s.harts[i], nil
}

// GetReg returns register i of the given hart.
func (s *SoC) GetReg(hartIndex, i int) uint32 {
	h, err := s.hartAt(hartIndex)
	if err != nil {
		return 0
	}
	return h.Regs.Read(i)
}

// SetReg sets register i of the given hart, for debug/test use.
func (s *SoC) SetReg(hartIndex, i int, v uint32) {
	h, err := s.hartAt(hartIndex)
	if err != nil {
		return
	}
	h.Regs.Write(i, v)
}

// GetPC returns the given hart's program counter.
func (s *SoC) GetPC(hartIndex int) uint32 {
	h, err := s.hartAt(hartIndex)
	if err != nil {
		return 0
	}
	return h.PC
}

// ReadCSR returns the CSR at addr for the given hart.
func (s *SoC) ReadCSR(hartIndex int, addr uint16) (uint32, error) {
	h, err := s.hartAt(hartIndex)
	if err != nil {
		return 0, err
	}
	return h.CSRs.Read(addr)
}

// WriteCSR sets the CSR at addr for the given hart, for debug/test use.
func (s *SoC) WriteCSR(hartIndex int, addr uint16, v uint32) error {
	h, err := s.hartAt(hartIndex)
	if err != nil {
		return err
	}
	return h.CSRs.Write(addr, v)
}

func (s *SoC) findRegionByName(name string) *memregion.Region {
	for _, r := range s.bus.Regions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (s *SoC) findPeripheralByName(name string) *peripheral.Peripheral {
	for _, p := range s.bus.Peripherals {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// DumpRegion returns the word at addr within the named region.
func (s *SoC) DumpRegion(name string, addr uint32) (uint32, error) {
	r := s.findRegionByName(name)
	if r == nil {
		return 0, fmt.Errorf("%w: region %q", ErrConfigInvalid, name)
	}
	return r.ReadU32(addr)
}

// WriteRegionU32 writes v at addr within the named region, for debug/test use.
func (s *SoC) WriteRegionU32(name string, addr, v uint32) error {
	r := s.findRegionByName(name)
	if r == nil {
		return fmt.Errorf("%w: region %q", ErrConfigInvalid, name)
	}
	return r.WriteU32(addr, v)
}

// PeripheralDump is a point-in-time snapshot of one peripheral's registers,
// returned by DumpPeripheral for the caller to format however it likes —
// the core never renders its own text form of a dump.
type PeripheralDump struct {
	Name     string
	Base     uint32
	IntrAddr uint32
	Regs     []uint32
}

// DumpPeripheral returns a snapshot of the named peripheral's registers.
func (s *SoC) DumpPeripheral(name string) (PeripheralDump, error) {
	p := s.findPeripheralByName(name)
	if p == nil {
		return PeripheralDump{}, fmt.Errorf("%w: peripheral %q", ErrConfigInvalid, name)
	}
	return PeripheralDump{Name: p.Name, Base: p.Base, IntrAddr: p.IntrAddr, Regs: p.Dump()}, nil
}

// WritePeripheralU32 writes v at addr within the named peripheral, for
// debug/test use.
func (s *SoC) WritePeripheralU32(name string, addr, v uint32) error {
	p := s.findPeripheralByName(name)
	if p == nil {
		return fmt.Errorf("%w: peripheral %q", ErrConfigInvalid, name)
	}
	p.WriteU32(addr, v)
	return nil
}
