package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"bootscan/internal/image"
	"bootscan/internal/magic"
	"bootscan/internal/output"
)

// InventoryRow is one row of the image inventory JSONL. Matches lists
// the names of the signatures located in the scanned bytes.
type InventoryRow struct {
	File    string   `json:"file"`
	Size    int64    `json:"size"`
	Format  string   `json:"format"`
	Matches []string `json:"matches,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func cmdInventory(args []string) error {
	fs := flag.NewFlagSet("inventory", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory containing images")
	outPath := fs.String("out", "", "output JSONL file (default: stdout)")
	raw := fs.Bool("raw", false, "scan container bytes without decompressing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		return fmt.Errorf("readdir %s: %w", *dir, err)
	}

	var rows []InventoryRow
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		rows = append(rows, inventoryScan(filepath.Join(*dir, e.Name()), e.Name(), *raw))
	}

	// Stable sort by file name.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].File < rows[j].File
	})

	var w io.Writer = os.Stdout
	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := output.WriteJSONL(w, rows); err != nil {
		return err
	}

	// Summary to stderr.
	var withMatch, errCount int
	sigCount := map[string]int{}
	for _, r := range rows {
		if r.Error != "" {
			errCount++
			continue
		}
		if len(r.Matches) > 0 {
			withMatch++
		}
		for _, name := range r.Matches {
			sigCount[name]++
		}
	}

	fmt.Fprintf(os.Stderr, "inventory: %d files, %d with matches, %d errors\n",
		len(rows), withMatch, errCount)

	names := make([]string, 0, len(sigCount))
	for name := range sigCount {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-12s %d\n", name, sigCount[name])
	}
	return nil
}

// inventoryScan loads one image and records its format and located
// signatures. Load failures become rows with Error set rather than
// aborting the walk.
func inventoryScan(path, name string, raw bool) InventoryRow {
	row := InventoryRow{File: name}

	img, err := image.Load(path)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Size = img.Size()
	row.Format = img.Format.String()

	scanned := img
	if img.Format.Compressed() && !raw {
		if inflated, err := img.Decompressed(image.DefaultMaxDecompressed); err == nil {
			scanned = inflated
		}
	}
	for _, m := range magic.ScanAll(scanned.Data) {
		row.Matches = append(row.Matches, m.Signature.Name)
	}
	return row
}
