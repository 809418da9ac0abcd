package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minisys/masm/assembler"
	"github.com/minisys/masm/format"
)

// outputFlags are shared by build and link.
type outputFlags struct {
	dir    string
	format string
	stats  bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.dir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&o.format, "format", "coe", "output format: coe, hex, bin or json")
	cmd.Flags().BoolVar(&o.stats, "stats", false, "print assembly statistics")
}

// write serializes the image next to the source file's base name in
// the chosen format. Instruction and data memory are separate files
// because the board loads them into separate block RAMs.
func (o *outputFlags) write(cmd *cobra.Command, source string, img *assembler.Image, stats *assembler.Stats) error {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	switch o.format {
	case "coe":
		if err := o.writeFile(cmd, base+".coe", func(w io.Writer) error {
			return format.COE(w, img.TextBytes)
		}); err != nil {
			return err
		}
		if len(img.DataBytes) == 0 {
			return nil
		}
		return o.writeFile(cmd, base+"_data.coe", func(w io.Writer) error {
			return format.COE(w, img.DataBytes)
		})
	case "hex":
		return o.writeFile(cmd, base+".hex", func(w io.Writer) error {
			return format.HexText(w, img.TextBytes)
		})
	case "bin":
		if err := o.writeFile(cmd, base+".bin", func(w io.Writer) error {
			return format.Binary(w, img.TextBytes)
		}); err != nil {
			return err
		}
		if len(img.DataBytes) == 0 {
			return nil
		}
		return o.writeFile(cmd, base+"_data.bin", func(w io.Writer) error {
			return format.Binary(w, img.DataBytes)
		})
	case "json":
		return o.writeFile(cmd, base+".json", func(w io.Writer) error {
			return format.JSON(w, img, stats)
		})
	}
	return fmt.Errorf("unknown output format %q", o.format)
}

// writeFile renders into memory first so a formatter error never
// leaves a truncated file behind.
func (o *outputFlags) writeFile(cmd *cobra.Command, name string, fill func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}
	path := filepath.Join(o.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
	return nil
}

func printStats(w io.Writer, s *assembler.Stats) {
	fmt.Fprintf(w, "instructions: %d\n", s.Instructions)
	fmt.Fprintf(w, "data bytes:   %d\n", s.DataBytes)
	fmt.Fprintf(w, "labels:       %d\n", s.Labels)
	fmt.Fprintf(w, "image bytes:  %d\n", s.ImageBytes)
	fmt.Fprintf(w, "elapsed:      %s\n", s.Elapsed)
}
