// Package hexdump renders byte buffers as offset/hex/ASCII rows in the
// classic hexdump -C layout.
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

const rowLen = 16

// Dump writes data as 16-byte rows: an offset column, the hex bytes with
// a mid-row gap, and an ASCII gutter. base offsets the displayed
// addresses; it does not shift the data.
func Dump(w io.Writer, data []byte, base int64) error {
	for i := 0; i < len(data); i += rowLen {
		end := i + rowLen
		if end > len(data) {
			end = len(data)
		}
		if _, err := io.WriteString(w, Row(data[i:end], base+int64(i))); err != nil {
			return fmt.Errorf("hexdump: %w", err)
		}
	}
	return nil
}

// Row formats a single row of at most 16 bytes at the given address,
// terminated by a newline. Short rows are padded so the ASCII gutter
// stays aligned.
func Row(row []byte, addr int64) string {
	if len(row) > rowLen {
		row = row[:rowLen]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%08x  ", addr)
	for j := 0; j < rowLen; j++ {
		if j == rowLen/2 {
			b.WriteByte(' ')
		}
		if j < len(row) {
			fmt.Fprintf(&b, "%02x ", row[j])
		} else {
			b.WriteString("   ")
		}
	}
	b.WriteString(" |")
	for _, c := range row {
		if c >= 0x20 && c <= 0x7e {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteString("|\n")
	return b.String()
}
