/*
 * rv32im core - RV32IM decoder and executor
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

// Package isa is the pure dispatch core of this simulator: given one fetched
// instruction word, a hart to mutate, and a bus to route memory traffic
// through, it performs exactly the state change RV32IM defines for that
// instruction. It never holds a back-pointer to the hart or the SoC; every
// call takes the state it needs for the duration of one instruction, per the
// cyclic-ownership design note.
package isa

import (
	"log/slog"
	"math/bits"

	"github.com/rv32im/core/internal/core/bus"
	"github.com/rv32im/core/internal/core/hart"
	"github.com/rv32im/core/internal/trace"
)

// Opcodes (instr[6:0]).
const (
	opLUI    uint32 = 0x37
	opAUIPC  uint32 = 0x17
	opJAL    uint32 = 0x6F
	opJALR   uint32 = 0x67
	opBranch uint32 = 0x63
	opOpImm  uint32 = 0x13
	opOp     uint32 = 0x33
	opLoad   uint32 = 0x03
	opStore  uint32 = 0x23
	opFence  uint32 = 0x0F
	opSystem uint32 = 0x73
)

func opcode(instr uint32) uint32 { return instr & 0x7F }
func rd(instr uint32) int        { return int((instr >> 7) & 0x1F) }
func funct3(instr uint32) uint32 { return (instr >> 12) & 0x7 }
func rs1(instr uint32) int       { return int((instr >> 15) & 0x1F) }
func rs2(instr uint32) int       { return int((instr >> 20) & 0x1F) }
func funct7(instr uint32) uint32 { return (instr >> 25) & 0x7F }

// signExtend treats the low `width` bits of v as a two's-complement integer
// and sign-extends it to a full int32.
func signExtend(v uint32, width int) int32 {
	shift := uint(32 - width)
	return int32(v<<shift) >> shift
}

func immI(instr uint32) int32 {
	return int32(instr) >> 20
}

// immIUnsigned is the I-immediate with no sign extension, for the one place
// spec.md calls that out explicitly: SLTIU's immediate operand.
func immIUnsigned(instr uint32) uint32 {
	return instr >> 20
}

func immS(instr uint32) int32 {
	v := ((instr >> 25) << 5) | ((instr >> 7) & 0x1F)
	return signExtend(v, 12)
}

func immB(instr uint32) int32 {
	b12 := (instr >> 31) & 1
	b11 := (instr >> 7) & 1
	b10_5 := (instr >> 25) & 0x3F
	b4_1 := (instr >> 8) & 0xF
	v := (b12 << 12) | (b11 << 11) | (b10_5 << 5) | (b4_1 << 1)
	return signExtend(v, 13)
}

func immU(instr uint32) uint32 {
	return instr & 0xFFFFF000
}

func immJ(instr uint32) int32 {
	b20 := (instr >> 31) & 1
	b19_12 := (instr >> 12) & 0xFF
	b11 := (instr >> 20) & 1
	b10_1 := (instr >> 21) & 0x3FF
	v := (b20 << 20) | (b19_12 << 12) | (b11 << 11) | (b10_1 << 1)
	return signExtend(v, 21)
}

// illegal latches an InstructionException at the current PC. Per spec.md
// §4.6, an illegal instruction does not advance PC or mutate any other
// state.
func illegal(h *hart.Hart, logger *slog.Logger) {
	logger.Warn("illegal instruction", "hart", h.Name, "pc", h.PC)
	h.Latch(hart.InstructionException, h.PC)
}

// Execute decodes and runs exactly one instruction against h, routing
// memory traffic through b. It returns a non-nil error only for the one
// host-fatal condition this ISA subset defines: an access to an
// unrecognized CSR address. Guest-visible failures (illegal instruction,
// fetch fault) are communicated by latching h.Pending, never by a returned
// error.
func Execute(instr uint32, h *hart.Hart, b *bus.Bus, logger *slog.Logger) error {
	logger = trace.OrDefault(logger)

	switch opcode(instr) {
	case opLUI:
		h.Regs.Write(rd(instr), immU(instr))
		h.PC += 4

	case opAUIPC:
		h.Regs.Write(rd(instr), h.PC+immU(instr))
		h.PC += 4

	case opJAL:
		link := h.PC + 4
		h.PC = uint32(int32(h.PC) + immJ(instr))
		h.Regs.Write(rd(instr), link)

	case opJALR:
		link := h.PC + 4
		target := uint32(int32(h.Regs.Read(rs1(instr)))+immI(instr)) &^ 1
		h.PC = target
		h.Regs.Write(rd(instr), link)

	case opBranch:
		return execBranch(instr, h, logger)

	case opOpImm:
		return execOpImm(instr, h, logger)

	case opOp:
		return execOp(instr, h, logger)

	case opLoad:
		return execLoad(instr, h, b, logger)

	case opStore:
		return execStore(instr, h, b, logger)

	case opFence:
		switch funct3(instr) {
		case 0, 1: // FENCE, FENCE.I: both no-ops in this subset.
			h.PC += 4
		default:
			illegal(h, logger)
		}

	case opSystem:
		return execSystem(instr, h, logger)

	default:
		illegal(h, logger)
	}
	return nil
}

func execBranch(instr uint32, h *hart.Hart, logger *slog.Logger) error {
	a := h.Regs.Read(rs1(instr))
	bv := h.Regs.Read(rs2(instr))
	var taken bool
	switch funct3(instr) {
	case 0: // BEQ
		taken = a == bv
	case 1: // BNE
		taken = a != bv
	case 4: // BLT
		taken = int32(a) < int32(bv)
	case 5: // BGE
		taken = int32(a) >= int32(bv)
	case 6: // BLTU
		taken = a < bv
	case 7: // BGEU
		taken = a >= bv
	default:
		illegal(h, logger)
		return nil
	}
	if taken {
		h.PC = uint32(int32(h.PC) + immB(instr))
	} else {
		h.PC += 4
	}
	return nil
}

func execOpImm(instr uint32, h *hart.Hart, logger *slog.Logger) error {
	a := h.Regs.Read(rs1(instr))
	var result uint32
	switch funct3(instr) {
	case 0: // ADDI
		result = uint32(int32(a) + immI(instr))
	case 2: // SLTI
		result = boolToWord(int32(a) < immI(instr))
	case 3: // SLTIU
		result = boolToWord(a < immIUnsigned(instr))
	case 4: // XORI
		result = a ^ uint32(immI(instr))
	case 6: // ORI
		result = a | uint32(immI(instr))
	case 7: // ANDI
		result = a & uint32(immI(instr))
	case 1: // SLLI
		if funct7(instr) != 0x00 {
			illegal(h, logger)
			return nil
		}
		result = a << (uint32(rs2(instr)) & 0x1F)
	case 5: // SRLI / SRAI, distinguished by funct7
		shamt := uint32(rs2(instr)) & 0x1F
		switch funct7(instr) {
		case 0x00: // SRLI
			result = a >> shamt
		case 0x20: // SRAI
			result = uint32(int32(a) >> shamt)
		default:
			illegal(h, logger)
			return nil
		}
	default:
		illegal(h, logger)
		return nil
	}
	h.Regs.Write(rd(instr), result)
	h.PC += 4
	return nil
}

func execOp(instr uint32, h *hart.Hart, logger *slog.Logger) error {
	a := h.Regs.Read(rs1(instr))
	bv := h.Regs.Read(rs2(instr))
	var result uint32
	switch funct7(instr) {
	case 0x00:
		switch funct3(instr) {
		case 0: // ADD
			result = a + bv
		case 1: // SLL
			result = a << (bv & 0x1F)
		case 2: // SLT
			result = boolToWord(int32(a) < int32(bv))
		case 3: // SLTU
			result = boolToWord(a < bv)
		case 4: // XOR
			result = a ^ bv
		case 5: // SRL
			result = a >> (bv & 0x1F)
		case 6: // OR
			result = a | bv
		case 7: // AND
			result = a & bv
		default:
			illegal(h, logger)
			return nil
		}
	case 0x20:
		switch funct3(instr) {
		case 0: // SUB
			result = a - bv
		case 5: // SRA
			result = uint32(int32(a) >> (bv & 0x1F))
		default:
			illegal(h, logger)
			return nil
		}
	case 0x01: // RV32M
		result = execMulDiv(funct3(instr), a, bv)
	default:
		illegal(h, logger)
		return nil
	}
	h.Regs.Write(rd(instr), result)
	h.PC += 4
	return nil
}

func execMulDiv(f3 uint32, a, b uint32) uint32 {
	switch f3 {
	case 0: // MUL
		return a * b
	case 1: // MULH: signed x signed, high 32 bits
		prod := int64(int32(a)) * int64(int32(b))
		return uint32(uint64(prod) >> 32)
	case 2: // MULHSU: signed x unsigned, high 32 bits
		prod := int64(int32(a)) * int64(uint64(b))
		return uint32(uint64(prod) >> 32)
	case 3: // MULHU: unsigned x unsigned, high 32 bits
		hi, _ := bits.Mul32(a, b)
		return hi
	case 4: // DIV
		if b == 0 {
			return 0xFFFFFFFF
		}
		if int32(a) == math32MinInt && int32(b) == -1 {
			return 0x80000000 // INT_MIN
		}
		return uint32(int32(a) / int32(b))
	case 5: // DIVU
		if b == 0 {
			return 0xFFFFFFFF
		}
		return a / b
	case 6: // REM
		if b == 0 {
			return a
		}
		if int32(a) == math32MinInt && int32(b) == -1 {
			return 0
		}
		return uint32(int32(a) % int32(b))
	case 7: // REMU
		if b == 0 {
			return a
		}
		return a % b
	}
	return 0
}

const math32MinInt = -2147483648

func execLoad(instr uint32, h *hart.Hart, b *bus.Bus, logger *slog.Logger) error {
	addr := uint32(int32(h.Regs.Read(rs1(instr))) + immI(instr))
	var result uint32
	switch funct3(instr) {
	case 0: // LB
		result = b.LB(addr)
	case 1: // LH
		result = b.LH(addr)
	case 2: // LW
		result = b.LW(addr)
	case 4: // LBU
		result = b.LBU(addr)
	case 5: // LHU
		result = b.LHU(addr)
	default:
		illegal(h, logger)
		return nil
	}
	h.Regs.Write(rd(instr), result)
	h.PC += 4
	return nil
}

func execStore(instr uint32, h *hart.Hart, b *bus.Bus, logger *slog.Logger) error {
	addr := uint32(int32(h.Regs.Read(rs1(instr))) + immS(instr))
	v := h.Regs.Read(rs2(instr))
	switch funct3(instr) {
	case 0: // SB
		b.SB(addr, v)
	case 1: // SH
		b.SH(addr, v)
	case 2: // SW
		b.SW(addr, v)
	default:
		illegal(h, logger)
		return nil
	}
	h.PC += 4
	return nil
}

func execSystem(instr uint32, h *hart.Hart, logger *slog.Logger) error {
	f3 := funct3(instr)
	csrAddr := uint16(instr >> 20)

	if f3 == 0 {
		switch csrAddr {
		case 0x000: // ECALL
			logger.Debug("ecall", "hart", h.Name, "pc", h.PC)
			h.PC += 4
		case 0x001: // EBREAK
			logger.Debug("ebreak", "hart", h.Name, "pc", h.PC)
			h.PC += 4
		case 0x302: // MRET
			h.CSRs.SetMIE(true)
			h.PC = h.CSRs.ReturnPC()
		default:
			illegal(h, logger)
		}
		return nil
	}

	a := h.Regs.Read(rs1(instr))
	uimm := uint32(rs1(instr))

	var old uint32
	var err error
	switch f3 {
	case 1: // CSRRW
		old, err = h.CSRs.Read(csrAddr)
		if err != nil {
			return err
		}
		if err := h.CSRs.Write(csrAddr, a); err != nil {
			return err
		}
	case 2: // CSRRS
		old, err = h.CSRs.Read(csrAddr)
		if err != nil {
			return err
		}
		if err := h.CSRs.Write(csrAddr, old|a); err != nil {
			return err
		}
	case 3: // CSRRC
		old, err = h.CSRs.Read(csrAddr)
		if err != nil {
			return err
		}
		if err := h.CSRs.Write(csrAddr, old&^a); err != nil {
			return err
		}
	case 5: // CSRRWI
		old, err = h.CSRs.Read(csrAddr)
		if err != nil {
			return err
		}
		if err := h.CSRs.Write(csrAddr, uimm); err != nil {
			return err
		}
	case 6: // CSRRSI
		old, err = h.CSRs.Read(csrAddr)
		if err != nil {
			return err
		}
		if err := h.CSRs.Write(csrAddr, old|uimm); err != nil {
			return err
		}
	case 7: // CSRRCI
		old, err = h.CSRs.Read(csrAddr)
		if err != nil {
			return err
		}
		if err := h.CSRs.Write(csrAddr, old&^uimm); err != nil {
			return err
		}
	default:
		illegal(h, logger)
		return nil
	}

	h.Regs.Write(rd(instr), old)
	h.PC += 4
	return nil
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
