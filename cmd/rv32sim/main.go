/*
 * rv32im core - simulator command-line harness
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

// Command rv32sim loads an RV32IM program image and a SoC configuration
// record, then either runs it for a fixed number of ticks or drops into an
// interactive debugger, following the shape of the teacher's main.go:
// getopt flags, a slog logger wired through internal/trace, and a
// liner-backed REPL for interactive sessions.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rv32im/core/internal/config"
	"github.com/rv32im/core/internal/core/soc"
	"github.com/rv32im/core/internal/repl"
	"github.com/rv32im/core/internal/trace"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "rv32sim.cfg", "SoC configuration file")
	optImage := getopt.StringLong("image", 'i', "", "Program image to load")
	optLogFile := getopt.StringLong("log", 'l', "", "Trace log file")
	optMaxTicks := getopt.IntLong("max-ticks", 'n', 0, "Run this many ticks non-interactively, then exit")
	optInteractive := getopt.BoolLong("interactive", 'x', "Start an interactive debugger session")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var out io.Writer
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rv32sim: ", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := trace.New(out, slog.LevelInfo, false)
	slog.SetDefault(logger)

	if *optImage == "" {
		logger.Error("an image file is required (-i)")
		os.Exit(1)
	}

	s, err := buildSoC(*optConfig, logger)
	if err != nil {
		logger.Error("failed to build soc", "err", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*optImage)
	if err != nil {
		logger.Error("failed to read image", "err", err)
		os.Exit(1)
	}
	if err := s.Fill(0, data, 0); err != nil {
		logger.Error("failed to load image", "err", err)
		os.Exit(1)
	}

	if *optMaxTicks > 0 {
		runBatch(s, *optMaxTicks, logger)
		if !*optInteractive {
			return
		}
	}

	runInteractive(s)
}

// buildSoC constructs a SoC from the named configuration record. Region
// index 0 in the returned SoC is always the first mem record, matching the
// assumption -i image loading makes.
func buildSoC(path string, logger *slog.Logger) (*soc.SoC, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if len(cfg.Mems) == 0 {
		return nil, errors.New("rv32sim: configuration defines no memory regions")
	}

	s := soc.New(cfg.SoC.Name, logger)
	for _, c := range cfg.CPUs {
		s.AddHart(c.Name, cfg.SoC.ResetPC, c.Freq)
	}
	if len(cfg.CPUs) == 0 {
		s.AddHart("hart0", cfg.SoC.ResetPC, 0)
	}
	for _, m := range cfg.Mems {
		s.AddRegion(m.Name, m.Start, m.Size)
	}
	for _, p := range cfg.Periphs {
		s.AddPeripheral(p.Name, p.Start, p.Size, p.Intr)
	}
	return s, nil
}

func runBatch(s *soc.SoC, maxTicks int, logger *slog.Logger) {
	for i := 0; i < maxTicks; i++ {
		if err := s.Tick(); err != nil {
			logger.Error("tick failed", "tick", i, "err", err)
			os.Exit(1)
		}
	}
	fmt.Printf("ran %d ticks\n", maxTicks)
}

func runInteractive(s *soc.SoC) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return repl.Complete(partial)
	})

	for {
		command, err := line.Prompt("rv32sim> ")
		if err == nil {
			line.AppendHistory(command)
			quit, perr := repl.Process(command, s, os.Stdout)
			if perr != nil {
				fmt.Println("error: " + perr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line", "err", err)
		return
	}
}
