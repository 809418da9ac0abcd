// Package format serializes assembled memory images for downstream
// tools: Vivado COE coefficient files for block RAM initialization,
// plain hex text, raw big-endian binary and a JSON report. Formatters
// write complete outputs only; a failed assembly yields no image, so
// nothing partial ever reaches disk.
package format

import (
	"fmt"
	"io"

	"github.com/minisys/masm/isa"
)

// COE writes memory contents as a Vivado coefficient file, one 32-bit
// word per line in hexadecimal. A trailing partial word is zero padded
// so the data memory always initializes whole block RAM words.
func COE(w io.Writer, data []byte) error {
	if _, err := io.WriteString(w, "memory_initialization_radix=16;\nmemory_initialization_vector=\n"); err != nil {
		return err
	}
	words := isa.BytesToWords(data)
	if len(words) == 0 {
		_, err := io.WriteString(w, ";\n")
		return err
	}
	for i, word := range words {
		sep := ","
		if i == len(words)-1 {
			sep = ";"
		}
		if _, err := fmt.Fprintf(w, "%08x%s\n", word, sep); err != nil {
			return err
		}
	}
	return nil
}

// HexText writes one 8-digit hexadecimal word per line.
func HexText(w io.Writer, data []byte) error {
	for _, word := range isa.BytesToWords(data) {
		if _, err := fmt.Fprintf(w, "%08x\n", word); err != nil {
			return err
		}
	}
	return nil
}

// Binary writes the image bytes as they are, big-endian words.
func Binary(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
