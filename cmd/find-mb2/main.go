package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"bootscan/internal/image"
	"bootscan/internal/magic"
)

func main() {
	path := image.DefaultKernelPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := run(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run reports the first occurrence of the Multiboot 2 magic in the image
// at path, along with a hex preview of the header bytes that follow.
func run(path string, w io.Writer) error {
	img, err := image.Load(path)
	if err != nil {
		return err
	}

	off := magic.Multiboot2.Find(img.Data)
	if off < 0 {
		fmt.Fprintln(w, "Multiboot 2 magic not found")
		return nil
	}

	fmt.Fprintf(w, "Found Multiboot 2 magic at offset: %d\n", off)
	fmt.Fprintf(w, "Header: %s\n", hex.EncodeToString(magic.Window(img.Data, off, 32)))
	return nil
}
