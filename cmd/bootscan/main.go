package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = cmdScan(os.Args[2:])
	case "hexdump":
		err = cmdHexdump(os.Args[2:])
	case "inventory":
		err = cmdInventory(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `bootscan — kernel image magic scanner

Usage:
  bootscan scan      --image <path> [--json] [--out <file>]       Locate known magics in an image
  bootscan hexdump   --image <path> [--offset <n>] [--length <n>]  Hex dump a window of an image
  bootscan inventory --dir <dir> [--out <file>]                   Scan every image in a directory

Flags:
  --image <path>     Path to kernel image (default zig-out/bin/kernel)
  --raw              Scan the container bytes without decompressing
  --strict           Fail when a compressed image cannot be decompressed
  --window <n>       Header preview bytes per match (default 32)
  --max-bytes <n>    Decompressed size cap
  --json             Output as JSON
  --out <file>       Output file (default stdout)
  --dir <dir>        Directory of images to inventory
  --offset <n>       Dump start offset, decimal or 0x-prefixed hex
  --length <n>       Dump length in bytes (default 256)
`)
}
