/*
 * rv32im core - test-only RV32IM instruction encoder
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

// Package rvtest is a minimal RV32IM instruction encoder used only by this
// module's test suites to hand-assemble tiny programs in Go, the way the
// teacher's test files hand-build S/370 channel-word byte sequences instead
// of depending on a separate assembler package. It is not part of the core
// and is never imported by cmd/rv32sim or internal/core.
package rvtest

// Program is an ordered list of 32-bit words, little-endian encoded by
// Bytes for loading into a memory region.
type Program []uint32

// Bytes little-endian encodes p into a byte stream suitable for
// SoC.Fill / memregion.Fill.
func (p Program) Bytes() []byte {
	out := make([]byte, 0, len(p)*4)
	for _, w := range p {
		out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return out
}

func r(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return (funct7 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

func i(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)<<20)&0xFFF00000 | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

func s(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	return (hi << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (lo << 7) | opcode
}

func b(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	b12 := (u >> 12) & 1
	b11 := (u >> 11) & 1
	b10_5 := (u >> 5) & 0x3F
	b4_1 := (u >> 1) & 0xF
	return (b12 << 31) | (b10_5 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (b4_1 << 8) | (b11 << 7) | opcode
}

func u(opcode, rd uint32, imm uint32) uint32 {
	return (imm & 0xFFFFF000) | (rd << 7) | opcode
}

func j(opcode, rd uint32, imm int32) uint32 {
	v := uint32(imm)
	b20 := (v >> 20) & 1
	b19_12 := (v >> 12) & 0xFF
	b11 := (v >> 11) & 1
	b10_1 := (v >> 1) & 0x3FF
	return (b20 << 31) | (b10_1 << 21) | (b11 << 20) | (b19_12 << 12) | (rd << 7) | opcode
}

// Opcodes.
const (
	opLUI    = 0x37
	opAUIPC  = 0x17
	opJAL    = 0x6F
	opJALR   = 0x67
	opBranch = 0x63
	opOpImm  = 0x13
	opOp     = 0x33
	opLoad   = 0x03
	opStore  = 0x23
	opFence  = 0x0F
	opSystem = 0x73
)

func LUI(rd int, imm uint32) uint32   { return u(opLUI, uint32(rd), imm) }
func AUIPC(rd int, imm uint32) uint32 { return u(opAUIPC, uint32(rd), imm) }
func JAL(rd int, imm int32) uint32    { return j(opJAL, uint32(rd), imm) }
func JALR(rd, rs1 int, imm int32) uint32 {
	return i(opJALR, uint32(rd), 0, uint32(rs1), imm)
}

func BEQ(rs1, rs2 int, imm int32) uint32  { return b(opBranch, 0, uint32(rs1), uint32(rs2), imm) }
func BNE(rs1, rs2 int, imm int32) uint32  { return b(opBranch, 1, uint32(rs1), uint32(rs2), imm) }
func BLT(rs1, rs2 int, imm int32) uint32  { return b(opBranch, 4, uint32(rs1), uint32(rs2), imm) }
func BGE(rs1, rs2 int, imm int32) uint32  { return b(opBranch, 5, uint32(rs1), uint32(rs2), imm) }
func BLTU(rs1, rs2 int, imm int32) uint32 { return b(opBranch, 6, uint32(rs1), uint32(rs2), imm) }
func BGEU(rs1, rs2 int, imm int32) uint32 { return b(opBranch, 7, uint32(rs1), uint32(rs2), imm) }

func ADDI(rd, rs1 int, imm int32) uint32  { return i(opOpImm, uint32(rd), 0, uint32(rs1), imm) }
func SLTI(rd, rs1 int, imm int32) uint32  { return i(opOpImm, uint32(rd), 2, uint32(rs1), imm) }
func SLTIU(rd, rs1 int, imm int32) uint32 { return i(opOpImm, uint32(rd), 3, uint32(rs1), imm) }
func XORI(rd, rs1 int, imm int32) uint32  { return i(opOpImm, uint32(rd), 4, uint32(rs1), imm) }
func ORI(rd, rs1 int, imm int32) uint32   { return i(opOpImm, uint32(rd), 6, uint32(rs1), imm) }
func ANDI(rd, rs1 int, imm int32) uint32  { return i(opOpImm, uint32(rd), 7, uint32(rs1), imm) }
func SLLI(rd, rs1 int, shamt uint32) uint32 {
	return r(opOpImm, uint32(rd), 1, uint32(rs1), shamt&0x1F, 0x00)
}
func SRLI(rd, rs1 int, shamt uint32) uint32 {
	return r(opOpImm, uint32(rd), 5, uint32(rs1), shamt&0x1F, 0x00)
}
func SRAI(rd, rs1 int, shamt uint32) uint32 {
	return r(opOpImm, uint32(rd), 5, uint32(rs1), shamt&0x1F, 0x20)
}

func ADD(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 0, uint32(rs1), uint32(rs2), 0x00) }
func SUB(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 0, uint32(rs1), uint32(rs2), 0x20) }
func SLL(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 1, uint32(rs1), uint32(rs2), 0x00) }
func SLT(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 2, uint32(rs1), uint32(rs2), 0x00) }
func SLTU(rd, rs1, rs2 int) uint32 { return r(opOp, uint32(rd), 3, uint32(rs1), uint32(rs2), 0x00) }
func XOR(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 4, uint32(rs1), uint32(rs2), 0x00) }
func SRL(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 5, uint32(rs1), uint32(rs2), 0x00) }
func SRA(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 5, uint32(rs1), uint32(rs2), 0x20) }
func OR(rd, rs1, rs2 int) uint32   { return r(opOp, uint32(rd), 6, uint32(rs1), uint32(rs2), 0x00) }
func AND(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 7, uint32(rs1), uint32(rs2), 0x00) }

func MUL(rd, rs1, rs2 int) uint32    { return r(opOp, uint32(rd), 0, uint32(rs1), uint32(rs2), 0x01) }
func MULH(rd, rs1, rs2 int) uint32   { return r(opOp, uint32(rd), 1, uint32(rs1), uint32(rs2), 0x01) }
func MULHSU(rd, rs1, rs2 int) uint32 { return r(opOp, uint32(rd), 2, uint32(rs1), uint32(rs2), 0x01) }
func MULHU(rd, rs1, rs2 int) uint32  { return r(opOp, uint32(rd), 3, uint32(rs1), uint32(rs2), 0x01) }
func DIV(rd, rs1, rs2 int) uint32    { return r(opOp, uint32(rd), 4, uint32(rs1), uint32(rs2), 0x01) }
func DIVU(rd, rs1, rs2 int) uint32   { return r(opOp, uint32(rd), 5, uint32(rs1), uint32(rs2), 0x01) }
func REM(rd, rs1, rs2 int) uint32    { return r(opOp, uint32(rd), 6, uint32(rs1), uint32(rs2), 0x01) }
func REMU(rd, rs1, rs2 int) uint32   { return r(opOp, uint32(rd), 7, uint32(rs1), uint32(rs2), 0x01) }

func LB(rd, rs1 int, imm int32) uint32  { return i(opLoad, uint32(rd), 0, uint32(rs1), imm) }
func LH(rd, rs1 int, imm int32) uint32  { return i(opLoad, uint32(rd), 1, uint32(rs1), imm) }
func LW(rd, rs1 int, imm int32) uint32  { return i(opLoad, uint32(rd), 2, uint32(rs1), imm) }
func LBU(rd, rs1 int, imm int32) uint32 { return i(opLoad, uint32(rd), 4, uint32(rs1), imm) }
func LHU(rd, rs1 int, imm int32) uint32 { return i(opLoad, uint32(rd), 5, uint32(rs1), imm) }

func SB(rs1, rs2 int, imm int32) uint32 { return s(opStore, 0, uint32(rs1), uint32(rs2), imm) }
func SH(rs1, rs2 int, imm int32) uint32 { return s(opStore, 1, uint32(rs1), uint32(rs2), imm) }
func SW(rs1, rs2 int, imm int32) uint32 { return s(opStore, 2, uint32(rs1), uint32(rs2), imm) }

func FENCE() uint32  { return i(opFence, 0, 0, 0, 0) }
func FENCEI() uint32 { return i(opFence, 0, 1, 0, 0) }

func ECALL() uint32  { return i(opSystem, 0, 0, 0, 0x000) }
func EBREAK() uint32 { return i(opSystem, 0, 0, 0, 0x001) }
func MRET() uint32   { return i(opSystem, 0, 0, 0, 0x302) }

func CSRRW(rd, rs1 int, csr uint32) uint32  { return i(opSystem, uint32(rd), 1, uint32(rs1), int32(csr)) }
func CSRRS(rd, rs1 int, csr uint32) uint32  { return i(opSystem, uint32(rd), 2, uint32(rs1), int32(csr)) }
func CSRRC(rd, rs1 int, csr uint32) uint32  { return i(opSystem, uint32(rd), 3, uint32(rs1), int32(csr)) }
func CSRRWI(rd int, uimm, csr uint32) uint32 {
	return i(opSystem, uint32(rd), 5, uimm&0x1F, int32(csr))
}
func CSRRSI(rd int, uimm, csr uint32) uint32 {
	return i(opSystem, uint32(rd), 6, uimm&0x1F, int32(csr))
}
func CSRRCI(rd int, uimm, csr uint32) uint32 {
	return i(opSystem, uint32(rd), 7, uimm&0x1F, int32(csr))
}

// Illegal returns a word that never matches a valid opcode, for decode
// failure tests.
func Illegal() uint32 { return 0x00000000 | 0x7F } // opcode 0x7F is unassigned
