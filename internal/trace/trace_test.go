package trace

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerWritesToFileSink(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug, false)
	logger.Info("trap delivered", "hart", 0, "cause", "0x2")

	out := buf.String()
	if !strings.Contains(out, "trap delivered") {
		t.Fatalf("output missing message: %q", out)
	}
	if !strings.Contains(out, "hart=0") {
		t.Fatalf("output missing attrs: %q", out)
	}
}

func TestOrDefaultFallsBackToStdlibDefault(t *testing.T) {
	if OrDefault(nil) != slog.Default() {
		t.Fatal("OrDefault(nil) should return slog.Default()")
	}
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if OrDefault(custom) != custom {
		t.Fatal("OrDefault(custom) should return custom unchanged")
	}
}
