// Package image loads kernel boot images fully into memory and strips
// the compression containers they commonly ship in.
package image

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"bootscan/internal/magic"
)

// DefaultKernelPath is the kernel build artifact scanned when no path is
// given on the command line.
const DefaultKernelPath = "zig-out/bin/kernel"

// DefaultMaxDecompressed caps in-memory inflation of a compressed image.
const DefaultMaxDecompressed = 1 << 30 // 1 GiB

var (
	ErrTooLarge    = errors.New("image: decompressed payload exceeds limit")
	ErrUnsupported = errors.New("image: unsupported container format")
)

// Format identifies the on-disk container wrapping an image.
type Format int

const (
	FormatRaw Format = iota
	FormatGzip
	FormatBzip2
	FormatXZ
	FormatZstd
	FormatLZ4
	FormatLZ4Legacy
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	case FormatXZ:
		return "xz"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatLZ4Legacy:
		return "lz4-legacy"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Compressed reports whether the format is a compression container.
func (f Format) Compressed() bool { return f != FormatRaw }

// Image is a boot image read fully into memory. Data is never mutated
// after Load.
type Image struct {
	Path   string
	Data   []byte
	Format Format
}

// Size returns the in-memory image size in bytes.
func (img *Image) Size() int64 { return int64(len(img.Data)) }

// Load reads the file at path into memory and identifies its container
// format from the leading bytes. The file handle is held only for the
// duration of the read.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image: load: %w", err)
	}
	return &Image{Path: path, Data: data, Format: DetectFormat(data)}, nil
}

// DetectFormat identifies a compression container from its leading magic
// bytes. Anything unrecognized, ELF objects included, is FormatRaw.
func DetectFormat(data []byte) Format {
	switch {
	case magic.Gzip.Find(data) == 0:
		return FormatGzip
	case magic.Bzip2.Find(data) == 0:
		return FormatBzip2
	case magic.XZ.Find(data) == 0:
		return FormatXZ
	case magic.Zstd.Find(data) == 0:
		return FormatZstd
	case magic.LZ4.Find(data) == 0:
		return FormatLZ4
	case magic.LZ4Legacy.Find(data) == 0:
		return FormatLZ4Legacy
	default:
		return FormatRaw
	}
}

// Decompressed returns the image payload with any container stripped.
// Raw images are returned as-is. limit caps the inflated size; limit <= 0
// applies DefaultMaxDecompressed.
func (img *Image) Decompressed(limit int64) (*Image, error) {
	if img.Format == FormatRaw {
		return img, nil
	}
	if limit <= 0 {
		limit = DefaultMaxDecompressed
	}

	src := bytes.NewReader(img.Data)
	var r io.Reader
	switch img.Format {
	case FormatGzip:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("image: gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case FormatBzip2:
		r = bzip2.NewReader(src)
	case FormatXZ:
		xr, err := xz.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("image: xz: %w", err)
		}
		r = xr
	case FormatZstd:
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("image: zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	case FormatLZ4:
		r = lz4.NewReader(src)
	default:
		// The lz4 legacy frame is identified but not inflated.
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, img.Format)
	}

	// One byte past the cap detects overrun; limit+1 wraps at the int64
	// ceiling, so saturate there.
	maxRead := limit + 1
	if maxRead <= 0 {
		maxRead = math.MaxInt64
	}
	data, err := io.ReadAll(io.LimitReader(r, maxRead))
	if err != nil {
		return nil, fmt.Errorf("image: decompress %s: %w", img.Format, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s payload past %d bytes", ErrTooLarge, img.Format, limit)
	}
	return &Image{Path: img.Path, Data: data, Format: FormatRaw}, nil
}
