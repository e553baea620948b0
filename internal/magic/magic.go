// Package magic defines the known boot-image byte signatures and the
// primitives for locating them in a raw byte buffer.
package magic

import "bytes"

// Anchor constrains where in the image a signature may match.
type Anchor int

const (
	// AnchorAny matches at any byte offset. Boot-protocol markers are
	// embedded somewhere inside the image.
	AnchorAny Anchor = iota
	// AnchorStart matches only at offset 0. Container formats identify
	// themselves by their leading bytes; matching them anywhere else
	// produces noise.
	AnchorStart
)

// Signature is a fixed byte pattern known at definition time.
type Signature struct {
	Name   string
	Desc   string
	Bytes  []byte
	Anchor Anchor
}

// Boot is the kernel boot marker: the little-endian encoding of
// 0x1BADB002, written into the image by the boot header.
var Boot = Signature{
	Name:  "boot",
	Desc:  "kernel boot marker (0x1BADB002, little-endian)",
	Bytes: []byte{0x02, 0xb0, 0xad, 0x1b},
}

// Multiboot2 is the Multiboot 2 header magic: the little-endian encoding
// of 0xE85250D6. The byte literal is authoritative; it is never derived
// from the 32-bit value at runtime.
var Multiboot2 = Signature{
	Name:  "multiboot2",
	Desc:  "Multiboot 2 header magic (0xE85250D6, little-endian)",
	Bytes: []byte{0xd6, 0x50, 0x52, 0xe8},
}

// Container signatures. These identify the file format only; no container
// structure is ever parsed here.
var (
	ELF = Signature{
		Name:   "elf",
		Desc:   "ELF object",
		Bytes:  []byte{0x7f, 'E', 'L', 'F'},
		Anchor: AnchorStart,
	}
	Gzip = Signature{
		Name:   "gzip",
		Desc:   "gzip stream",
		Bytes:  []byte{0x1f, 0x8b},
		Anchor: AnchorStart,
	}
	Bzip2 = Signature{
		Name:   "bzip2",
		Desc:   "bzip2 stream",
		Bytes:  []byte{'B', 'Z', 'h'},
		Anchor: AnchorStart,
	}
	XZ = Signature{
		Name:   "xz",
		Desc:   "xz stream",
		Bytes:  []byte{0xfd, '7', 'z', 'X', 'Z', 0x00},
		Anchor: AnchorStart,
	}
	Zstd = Signature{
		Name:   "zstd",
		Desc:   "zstandard frame (0xFD2FB528, little-endian)",
		Bytes:  []byte{0x28, 0xb5, 0x2f, 0xfd},
		Anchor: AnchorStart,
	}
	LZ4 = Signature{
		Name:   "lz4",
		Desc:   "lz4 frame (0x184D2204, little-endian)",
		Bytes:  []byte{0x04, 0x22, 0x4d, 0x18},
		Anchor: AnchorStart,
	}
	LZ4Legacy = Signature{
		Name:   "lz4-legacy",
		Desc:   "lz4 legacy frame (0x184C2102, little-endian)",
		Bytes:  []byte{0x02, 0x21, 0x4c, 0x18},
		Anchor: AnchorStart,
	}
)

// signatures is the registry scanned by ScanAll, boot protocols first.
var signatures = []Signature{
	Boot,
	Multiboot2,
	ELF,
	Gzip,
	Bzip2,
	XZ,
	Zstd,
	LZ4,
	LZ4Legacy,
}

// Known returns the registered signatures in scan order.
func Known() []Signature {
	out := make([]Signature, len(signatures))
	copy(out, signatures)
	return out
}

// Find returns the byte offset of the first occurrence of s in data,
// or -1 if it does not occur. Anchored signatures match only at offset 0.
func (s Signature) Find(data []byte) int {
	if len(s.Bytes) == 0 || len(data) < len(s.Bytes) {
		return -1
	}
	if s.Anchor == AnchorStart {
		if bytes.HasPrefix(data, s.Bytes) {
			return 0
		}
		return -1
	}
	return bytes.Index(data, s.Bytes)
}

// Match records one located signature.
type Match struct {
	Signature Signature
	Offset    int
}

// ScanAll locates the first occurrence of every known signature in data.
// Signatures that do not occur are omitted.
func ScanAll(data []byte) []Match {
	var matches []Match
	for _, sig := range signatures {
		if off := sig.Find(data); off >= 0 {
			matches = append(matches, Match{Signature: sig, Offset: off})
		}
	}
	return matches
}

// Window copies up to n bytes of data starting at off. The window is
// clipped at the end of the buffer; an out-of-range offset yields nil.
func Window(data []byte, off, n int) []byte {
	if off < 0 || off >= len(data) || n <= 0 {
		return nil
	}
	// Clamp before adding: off+n can wrap for huge n.
	if n > len(data)-off {
		n = len(data) - off
	}
	out := make([]byte, n)
	copy(out, data[off:off+n])
	return out
}
