/*
 * rv32im core - contiguous byte-addressed memory region
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

// Package memregion implements a named, contiguous, little-endian byte
// window of RAM at [base, base+size). Each SoC may hold several regions;
// a region never touches bytes outside its own window.
package memregion

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an access would read or write outside
// [base, base+size).
var ErrOutOfRange = errors.New("memregion: access out of range")

// Region is a contiguous block of byte-addressable RAM.
type Region struct {
	Name string
	Base uint32
	Size uint32

	bytes []byte
}

// New allocates a zeroed region of size bytes starting at base.
func New(name string, base, size uint32) *Region {
	return &Region{
		Name:  name,
		Base:  base,
		Size:  size,
		bytes: make([]byte, size),
	}
}

// InRange reports whether addr falls within [Base, Base+Size).
func (r *Region) InRange(addr uint32) bool {
	return addr >= r.Base && addr < r.Base+r.Size
}

func (r *Region) fits(addr uint32, width uint32) bool {
	if addr < r.Base {
		return false
	}
	off := addr - r.Base
	return off+width <= r.Size
}

// Fill copies data into [Base+offset, Base+offset+len(data)). If the target
// range exceeds the region's window the call is silently dropped, matching
// the convention that program images are authored to fit their region.
func (r *Region) Fill(offset uint32, data []byte) {
	if uint64(offset)+uint64(len(data)) > uint64(r.Size) {
		return
	}
	copy(r.bytes[offset:], data)
}

// ReadU8 reads one byte at addr.
func (r *Region) ReadU8(addr uint32) (uint8, error) {
	if !r.fits(addr, 1) {
		return 0, fmt.Errorf("%w: %s[%#x]", ErrOutOfRange, r.Name, addr)
	}
	return r.bytes[addr-r.Base], nil
}

// WriteU8 writes one byte at addr.
func (r *Region) WriteU8(addr uint32, v uint8) error {
	if !r.fits(addr, 1) {
		return fmt.Errorf("%w: %s[%#x]", ErrOutOfRange, r.Name, addr)
	}
	r.bytes[addr-r.Base] = v
	return nil
}

// ReadU16 reads a little-endian halfword at addr.
func (r *Region) ReadU16(addr uint32) (uint16, error) {
	if !r.fits(addr, 2) {
		return 0, fmt.Errorf("%w: %s[%#x]", ErrOutOfRange, r.Name, addr)
	}
	off := addr - r.Base
	return binary.LittleEndian.Uint16(r.bytes[off : off+2]), nil
}

// WriteU16 writes a little-endian halfword at addr.
func (r *Region) WriteU16(addr uint32, v uint16) error {
	if !r.fits(addr, 2) {
		return fmt.Errorf("%w: %s[%#x]", ErrOutOfRange, r.Name, addr)
	}
	off := addr - r.Base
	binary.LittleEndian.PutUint16(r.bytes[off:off+2], v)
	return nil
}

// ReadU32 reads a little-endian word at addr.
func (r *Region) ReadU32(addr uint32) (uint32, error) {
	if !r.fits(addr, 4) {
		return 0, fmt.Errorf("%w: %s[%#x]", ErrOutOfRange, r.Name, addr)
	}
	off := addr - r.Base
	return binary.LittleEndian.Uint32(r.bytes[off : off+4]), nil
}

// WriteU32 writes a little-endian word at addr.
func (r *Region) WriteU32(addr uint32, v uint32) error {
	if !r.fits(addr, 4) {
		return fmt.Errorf("%w: %s[%#x]", ErrOutOfRange, r.Name, addr)
	}
	off := addr - r.Base
	binary.LittleEndian.PutUint32(r.bytes[off:off+4], v)
	return nil
}
