/*
 * rv32im core - interactive debugger command parser
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

// Package repl is the interactive debugger line parser for cmd/rv32sim: an
// abbreviation-matching command table over a *soc.SoC, in the shape of the
// teacher's command/parser package. Text formatting for dumps lives here,
// never inside the core.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rv32im/core/internal/core/csr"
	"github.com/rv32im/core/internal/core/soc"
	"github.com/rv32im/core/internal/hexfmt"
)

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *soc.SoC, io.Writer) (bool, error)
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "regs", min: 1, process: regs},
	{name: "csr", min: 1, process: csrDump},
	{name: "mem", min: 1, process: memDump},
	{name: "perip", min: 1, process: peripDump},
	{name: "quit", min: 1, process: quit},
	{name: "help", min: 1, process: help},
}

type cmdLine struct {
	line string
	pos  int
}

// Process parses and executes one command line against s, writing any
// output to out. It returns quit=true when the REPL should exit.
func Process(line string, s *soc.SoC, out io.Writer) (bool, error) {
	cl := &cmdLine{line: line}
	name := cl.getWord()

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, fmt.Errorf("command not found: %q", name)
	case 1:
		return match[0].process(cl, s, out)
	default:
		return false, fmt.Errorf("ambiguous command: %q", name)
	}
}

// Complete returns command names that could complete the given prefix, for
// liner's SetCompleter.
func Complete(prefix string) []string {
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, prefix) {
			out = append(out, c.name)
		}
	}
	return out
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			match = append(match, c)
		}
	}
	return match
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c.name[i] != name[i] {
			return false
		}
	}
	return len(name) >= c.min
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line)
}

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return l.line[start:l.pos]
}

func step(l *cmdLine, s *soc.SoC, out io.Writer) (bool, error) {
	n := 1
	if w := l.getWord(); w != "" {
		v, err := strconv.Atoi(w)
		if err != nil {
			return false, fmt.Errorf("invalid tick count %q: %w", w, err)
		}
		n = v
	}
	for i := 0; i < n; i++ {
		if err := s.Tick(); err != nil {
			return false, err
		}
	}
	fmt.Fprintf(out, "stepped %d tick(s); tick_count=%d\n", n, s.TickCount())
	return false, nil
}

func regs(l *cmdLine, s *soc.SoC, out io.Writer) (bool, error) {
	hart, err := hartIndex(l)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(out, "hart %d pc=%#010x\n", hart, s.GetPC(hart))
	for i := 0; i < 32; i++ {
		var b strings.Builder
		hexfmt.Word(&b, []uint32{s.GetReg(hart, i)})
		fmt.Fprintf(out, "  x%-2d = %s\n", i, strings.TrimSpace(b.String()))
	}
	return false, nil
}

func csrDump(l *cmdLine, s *soc.SoC, out io.Writer) (bool, error) {
	hart, err := hartIndex(l)
	if err != nil {
		return false, err
	}
	for _, addr := range []uint16{csr.MStatus, csr.MTVec, csr.MEPC, csr.MCause} {
		v, err := s.ReadCSR(hart, addr)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "  csr %#03x = %#010x\n", addr, v)
	}
	return false, nil
}

func memDump(l *cmdLine, s *soc.SoC, out io.Writer) (bool, error) {
	name := l.getWord()
	if name == "" {
		return false, errors.New("mem: region name required")
	}
	addrStr := l.getWord()
	addr, err := strconv.ParseUint(addrStr, 0, 32)
	if err != nil {
		return false, fmt.Errorf("invalid address %q: %w", addrStr, err)
	}
	v, err := s.DumpRegion(name, uint32(addr))
	if err != nil {
		return false, err
	}
	fmt.Fprintf(out, "%s[%#010x] = %#010x\n", name, addr, v)
	return false, nil
}

func peripDump(l *cmdLine, s *soc.SoC, out io.Writer) (bool, error) {
	name := l.getWord()
	if name == "" {
		return false, errors.New("perip: peripheral name required")
	}
	d, err := s.DumpPeripheral(name)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(out, "%s base=%#010x intr_addr=%#010x\n", d.Name, d.Base, d.IntrAddr)
	for i, v := range d.Regs {
		fmt.Fprintf(out, "  reg[%d] = %#010x\n", i, v)
	}
	return false, nil
}

func quit(*cmdLine, *soc.SoC, io.Writer) (bool, error) {
	return true, nil
}

func help(_ *cmdLine, _ *soc.SoC, out io.Writer) (bool, error) {
	fmt.Fprintln(out, "commands: step [n], regs [hart], csr [hart], mem <region> <addr>, perip <name>, quit")
	return false, nil
}

func hartIndex(l *cmdLine) (int, error) {
	w := l.getWord()
	if w == "" {
		return 0, nil
	}
	return strconv.Atoi(w)
}
