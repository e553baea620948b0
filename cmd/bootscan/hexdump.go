package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"bootscan/internal/hexdump"
	"bootscan/internal/image"
)

func cmdHexdump(args []string) error {
	fs := flag.NewFlagSet("hexdump", flag.ExitOnError)
	imagePath := fs.String("image", image.DefaultKernelPath, "path to kernel image")
	offsetStr := fs.String("offset", "0", "start offset, decimal or 0x-prefixed hex")
	length := fs.Int("length", 256, "bytes to dump")

	if err := fs.Parse(args); err != nil {
		return err
	}

	off, err := parseOffset(*offsetStr)
	if err != nil {
		return err
	}
	if *length <= 0 {
		return fmt.Errorf("bad length %d", *length)
	}

	img, err := image.Load(*imagePath)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if off >= img.Size() {
		return fmt.Errorf("offset 0x%x out of range (image is %d bytes)", off, img.Size())
	}

	// Clamp before adding: off+length can wrap for huge lengths.
	n := int64(*length)
	if n > img.Size()-off {
		n = img.Size() - off
	}
	return hexdump.Dump(os.Stdout, img.Data[off:off+n], off)
}

// parseOffset accepts decimal or 0x-prefixed hex.
func parseOffset(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad offset %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("bad offset %q: negative", s)
	}
	return v, nil
}
