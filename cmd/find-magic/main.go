package main

import (
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

// run reports the first occurrence of the boot magic in the image at path.
func run(path string, w io.Writer) error {
	img, err := image.Load(path)
	if err != nil {
		return err
	}

	if off := magic.Boot.Find(img.Data); off >= 0 {
		fmt.Fprintf(w, "Found magic at offset: %d\n", off)
	} else {
		fmt.Fprintln(w, "Magic not found")
	}
	return nil
}
