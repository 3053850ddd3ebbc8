/*
 * rv32im core - SoC configuration record loader
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

// Package config loads the small line-oriented record format cmd/rv32sim
// uses to describe a SoC: one soc line, one or more cpu/mem/perip lines.
// It is outer, non-core configuration plumbing — the simulator core never
// imports this package.
//
// '#' starts a comment that runs to end of line. Record lines:
//
//	soc "name" reset_pc 0x0
//	cpu "hart0" freq 50
//	mem "ram" start 0x0 size 0x10000
//	perip "uart0" start 0x10000000 size 4 intr 0x10000000
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
)

// ErrSyntax is returned for any line that does not match the expected
// record grammar.
var ErrSyntax = errors.New("config: syntax error")

// SoCRecord names the top-level SoC and its hart reset address.
type SoCRecord struct {
	Name    string
	ResetPC uint32
}

// CPURecord describes one hart.
type CPURecord struct {
	Name string
	Freq float64
}

// MemRecord describes one memory region.
type MemRecord struct {
	Name  string
	Start uint32
	Size  uint32
}

// PeriphRecord describes one memory-mapped peripheral.
type PeriphRecord struct {
	Name  string
	Start uint32
	Size  int
	Intr  uint32
}

// Config is the full parsed record set for one SoC build.
type Config struct {
	SoC     SoCRecord
	CPUs    []CPURecord
	Mems    []MemRecord
	Periphs []PeriphRecord
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := parseRecordLine(scanner.Text(), cfg); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseRecordLine(raw string, cfg *Config) error {
	ln := &lineScanner{line: raw}
	tokens, err := ln.tokens()
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0] {
	case "soc":
		return parseSoC(tokens, cfg)
	case "cpu":
		return parseCPU(tokens, cfg)
	case "mem":
		return parseMem(tokens, cfg)
	case "perip":
		return parsePerip(tokens, cfg)
	default:
		return fmt.Errorf("unknown record keyword %q", tokens[0])
	}
}

func parseSoC(tokens []string, cfg *Config) error {
	if len(tokens) != 4 || tokens[2] != "reset_pc" {
		return errors.New(`expected: soc "name" reset_pc <addr>`)
	}
	pc, err := parseUint32(tokens[3])
	if err != nil {
		return err
	}
	cfg.SoC = SoCRecord{Name: tokens[1], ResetPC: pc}
	return nil
}

func parseCPU(tokens []string, cfg *Config) error {
	if len(tokens) != 4 || tokens[2] != "freq" {
		return errors.New(`expected: cpu "name" freq <mhz>`)
	}
	freq, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return err
	}
	cfg.CPUs = append(cfg.CPUs, CPURecord{Name: tokens[1], Freq: freq})
	return nil
}

func parseMem(tokens []string, cfg *Config) error {
	if len(tokens) != 6 || tokens[2] != "start" || tokens[4] != "size" {
		return errors.New(`expected: mem "name" start <addr> size <bytes>`)
	}
	start, err := parseUint32(tokens[3])
	if err != nil {
		return err
	}
	size, err := parseUint32(tokens[5])
	if err != nil {
		return err
	}
	cfg.Mems = append(cfg.Mems, MemRecord{Name: tokens[1], Start: start, Size: size})
	return nil
}

func parsePerip(tokens []string, cfg *Config) error {
	if len(tokens) != 8 || tokens[2] != "start" || tokens[4] != "size" || tokens[6] != "intr" {
		return errors.New(`expected: perip "name" start <addr> size <regs> intr <addr>`)
	}
	start, err := parseUint32(tokens[3])
	if err != nil {
		return err
	}
	size, err := strconv.Atoi(tokens[5])
	if err != nil {
		return err
	}
	intr, err := parseUint32(tokens[7])
	if err != nil {
		return err
	}
	cfg.Periphs = append(cfg.Periphs, PeriphRecord{Name: tokens[1], Start: start, Size: size, Intr: intr})
	return nil
}

func parseUint32(tok string) (uint32, error) {
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// lineScanner walks one record line, splitting it into whitespace or
// quote-delimited tokens the way the teacher's optionLine walks a
// device-configuration line one rune at a time.
type lineScanner struct {
	line string
	pos  int
}

func (l *lineScanner) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *lineScanner) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

func (l *lineScanner) tokens() ([]string, error) {
	var out []string
	for {
		l.skipSpace()
		if l.isEOL() {
			return out, nil
		}
		tok, err := l.token()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

func (l *lineScanner) token() (string, error) {
	if l.line[l.pos] == '"' {
		return l.quoted()
	}
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) && l.line[l.pos] != '#' {
		l.pos++
	}
	return l.line[start:l.pos], nil
}

func (l *lineScanner) quoted() (string, error) {
	l.pos++ // skip opening quote
	start := l.pos
	for l.pos < len(l.line) && l.line[l.pos] != '"' {
		l.pos++
	}
	if l.pos >= len(l.line) {
		return "", errors.New("unterminated quoted string")
	}
	value := l.line[start:l.pos]
	l.pos++ // skip closing quote
	return value, nil
}
