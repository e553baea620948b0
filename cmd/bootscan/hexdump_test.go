package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "64", want: 64},
		{in: "0x40", want: 64},
		{in: "0x0", want: 0},
		{in: "123456789", want: 123456789},
		{in: "", wantErr: true},
		{in: "zz", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "0x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOffset(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseOffset(%q) = %d, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOffset(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseOffset(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCmdHexdump(t *testing.T) {
	dir := t.TempDir()
	img := writeFile(t, dir, "kernel", kernelPayload(t, 64, 8, 32))

	if err := cmdHexdump([]string{"--image", img, "--offset", "0x20", "--length", "16"}); err != nil {
		t.Fatalf("cmdHexdump: %v", err)
	}
}

func TestCmdHexdumpHugeLength(t *testing.T) {
	dir := t.TempDir()
	img := writeFile(t, dir, "kernel", make([]byte, 32))

	// A length at the integer ceiling clips to EOF instead of wrapping.
	err := cmdHexdump([]string{
		"--image", img,
		"--offset", "1",
		"--length", "9223372036854775807",
	})
	if err != nil {
		t.Fatalf("cmdHexdump: %v", err)
	}
}

func TestCmdHexdumpOffsetOutOfRange(t *testing.T) {
	dir := t.TempDir()
	img := writeFile(t, dir, "kernel", make([]byte, 32))

	err := cmdHexdump([]string{"--image", img, "--offset", "32"})
	if err == nil {
		t.Fatal("expected error for offset at EOF")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("err = %v", err)
	}
}

func TestCmdHexdumpBadLength(t *testing.T) {
	dir := t.TempDir()
	img := writeFile(t, dir, "kernel", make([]byte, 32))

	if err := cmdHexdump([]string{"--image", img, "--length", "-1"}); err == nil {
		t.Error("expected error for negative length")
	}
}

func TestCmdHexdumpMissingImage(t *testing.T) {
	err := cmdHexdump([]string{"--image", filepath.Join(t.TempDir(), "absent")})
	if err == nil {
		t.Error("expected error for missing image")
	}
}
