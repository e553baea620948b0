package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"bootscan/internal/image"
	"bootscan/internal/magic"
	"bootscan/internal/output"
)

// Report is the machine-readable result of a scan.
type Report struct {
	Image        string        `json:"image"`
	SizeBytes    int64         `json:"size_bytes"`
	Format       string        `json:"format"`
	Decompressed bool          `json:"decompressed,omitempty"`
	ScannedBytes int64         `json:"scanned_bytes"`
	Matches      []MatchReport `json:"matches"`
}

// MatchReport is one located magic. Offset counts from the start of the
// scanned bytes, which are the decompressed payload unless --raw is set.
type MatchReport struct {
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	Offset int64  `json:"offset"`
	Header string `json:"header,omitempty"`
}

func cmdScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	imagePath := fs.String("image", image.DefaultKernelPath, "path to kernel image")
	raw := fs.Bool("raw", false, "scan container bytes without decompressing")
	strict := fs.Bool("strict", false, "fail when decompression fails")
	window := fs.Int("window", 32, "header preview bytes per match")
	maxBytes := fs.Int64("max-bytes", image.DefaultMaxDecompressed, "decompressed size cap")
	jsonOut := fs.Bool("json", false, "output as JSON")
	outPath := fs.String("out", "", "output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	img, err := image.Load(*imagePath)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	fmt.Fprintf(os.Stderr, "image: %s (%s, %s)\n",
		img.Path, humanize.Bytes(uint64(img.Size())), img.Format)

	// A compressed image is scanned after inflation. Failure to inflate is
	// fatal only under --strict; otherwise the container bytes are scanned.
	scanned := img
	decompressed := false
	if img.Format.Compressed() && !*raw {
		inflated, err := img.Decompressed(*maxBytes)
		if err != nil {
			if *strict {
				return fmt.Errorf("decompress: %w", err)
			}
			fmt.Fprintf(os.Stderr, "warning: decompress failed, scanning container bytes: %v\n", err)
		} else {
			scanned = inflated
			decompressed = true
			fmt.Fprintf(os.Stderr, "decompressed: %s\n", humanize.Bytes(uint64(inflated.Size())))
		}
	}

	matches := magic.ScanAll(scanned.Data)

	report := Report{
		Image:        img.Path,
		SizeBytes:    img.Size(),
		Format:       img.Format.String(),
		Decompressed: decompressed,
		ScannedBytes: scanned.Size(),
		Matches:      make([]MatchReport, 0, len(matches)),
	}
	for _, m := range matches {
		report.Matches = append(report.Matches, MatchReport{
			Name:   m.Signature.Name,
			Desc:   m.Signature.Desc,
			Offset: int64(m.Offset),
			Header: hex.EncodeToString(magic.Window(scanned.Data, m.Offset, *window)),
		})
	}
	fmt.Fprintf(os.Stderr, "scan: %d matches\n", len(report.Matches))

	if *jsonOut {
		if *outPath != "" {
			return output.WriteJSON(*outPath, report)
		}
		return output.EncodeJSON(os.Stdout, report)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeScanText(w, report)
}

func writeScanText(w io.Writer, report Report) error {
	if len(report.Matches) == 0 {
		_, err := fmt.Fprintln(w, "no known magics found")
		return err
	}

	fmt.Fprintln(w, "Matches:")
	for _, m := range report.Matches {
		preview := m.Header
		if len(preview) > 16 {
			preview = preview[:16] + "..."
		}
		if _, err := fmt.Fprintf(w, "  %-12s 0x%08x  %-44s %s\n",
			m.Name, m.Offset, m.Desc, preview); err != nil {
			return err
		}
	}
	return nil
}
