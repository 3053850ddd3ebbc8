package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "soc.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullRecord(t *testing.T) {
	path := writeTemp(t, `
# a sample SoC
soc "demo" reset_pc 0x0
cpu "hart0" freq 50
mem "ram" start 0x0 size 0x10000
perip "uart0" start 0x10000000 size 4 intr 0x10000000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SoC != (SoCRecord{Name: "demo", ResetPC: 0}) {
		t.Fatalf("soc record = %+v", cfg.SoC)
	}
	if len(cfg.CPUs) != 1 || cfg.CPUs[0].Name != "hart0" || cfg.CPUs[0].Freq != 50 {
		t.Fatalf("cpu records = %+v", cfg.CPUs)
	}
	if len(cfg.Mems) != 1 || cfg.Mems[0].Start != 0 || cfg.Mems[0].Size != 0x10000 {
		t.Fatalf("mem records = %+v", cfg.Mems)
	}
	if len(cfg.Periphs) != 1 || cfg.Periphs[0].Start != 0x10000000 || cfg.Periphs[0].Size != 4 || cfg.Periphs[0].Intr != 0x10000000 {
		t.Fatalf("perip records = %+v", cfg.Periphs)
	}
}

func TestLoadMultipleCPUsAndRegions(t *testing.T) {
	path := writeTemp(t, `
soc "dual" reset_pc 0x1000
cpu "hart0" freq 50
cpu "hart1" freq 50
mem "ram" start 0x0 size 0x10000
mem "rom" start 0x20000000 size 0x1000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.CPUs) != 2 {
		t.Fatalf("expected 2 cpus, got %d", len(cfg.CPUs))
	}
	if len(cfg.Mems) != 2 {
		t.Fatalf("expected 2 mem regions, got %d", len(cfg.Mems))
	}
	if cfg.SoC.ResetPC != 0x1000 {
		t.Fatalf("reset_pc = %#x, want 0x1000", cfg.SoC.ResetPC)
	}
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	path := writeTemp(t, "\n# leading comment\n\nsoc \"x\" reset_pc 0x0\n   # trailing\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SoC.Name != "x" {
		t.Fatalf("soc name = %q, want x", cfg.SoC.Name)
	}
}

func TestLoadRejectsUnknownKeyword(t *testing.T) {
	path := writeTemp(t, `gizmo "x" start 0x0`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown keyword")
	}
}

func TestLoadRejectsMalformedMem(t *testing.T) {
	path := writeTemp(t, `mem "ram" start 0x0`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing size clause")
	}
}

func TestLoadRejectsUnterminatedQuote(t *testing.T) {
	path := writeTemp(t, `soc "demo reset_pc 0x0`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unterminated quoted string")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/does/not/exist.cfg"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
