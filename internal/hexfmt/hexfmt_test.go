package hexfmt

import (
	"strings"
	"testing"
)

func TestWord(t *testing.T) {
	var b strings.Builder
	Word(&b, []uint32{0xDEADBEEF, 0})
	if b.String() != "deadbeef 00000000 " {
		t.Fatalf("got %q", b.String())
	}
}

func TestBytesWithSpaces(t *testing.T) {
	var b strings.Builder
	Bytes(&b, true, []byte{0xAB, 0x0F})
	if b.String() != "ab 0f " {
		t.Fatalf("got %q", b.String())
	}
}

func TestBytesWithoutSpaces(t *testing.T) {
	var b strings.Builder
	Bytes(&b, false, []byte{0xAB, 0x0F})
	if b.String() != "ab0f" {
		t.Fatalf("got %q", b.String())
	}
}
