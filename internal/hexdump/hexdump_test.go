package hexdump

import (
	"bytes"
	"strings"
	"testing"
)

func TestDumpFullRow(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, []byte("0123456789abcdef"), 0); err != nil {
		t.Fatal(err)
	}
	want := "00000000  30 31 32 33 34 35 36 37  38 39 61 62 63 64 65 66  |0123456789abcdef|\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestDumpShortRowPadding(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, []byte{0x01, 0x02, 0x03, 0x04}, 0); err != nil {
		t.Fatal(err)
	}
	want := "00000000  01 02 03 04 " +
		strings.Repeat(" ", 12) + " " + strings.Repeat(" ", 24) +
		" |....|\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestDumpBaseAddress(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, make([]byte, 40), 0x1000); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("%d rows, want 3", len(lines))
	}
	for i, prefix := range []string{"00001000  ", "00001010  ", "00001020  "} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("row %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestDumpNonPrintable(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, []byte{0x00, 'A', 0x1f, 0x7f, '~', ' '}, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "|.A..~ |") {
		t.Errorf("ASCII gutter wrong: %q", out)
	}
}

func TestDumpEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, nil, 0); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty input produced output %q", buf.String())
	}
}

func TestRowAlignment(t *testing.T) {
	// Gutter column must not depend on the row length.
	full := Row(bytes.Repeat([]byte{0xaa}, 16), 0)
	short := Row([]byte{0xaa}, 0)
	if strings.Index(full, "|") != strings.Index(short, "|") {
		t.Errorf("gutter misaligned:\n%q\n%q", full, short)
	}
}
