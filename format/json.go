package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/minisys/masm/assembler"
	"github.com/minisys/masm/isa"
)

// Report is the JSON shape of an assembled image. Machine words are
// hexadecimal strings so the output is diffable and greppable.
type Report struct {
	InstructionCount int      `json:"instructionCount"`
	DataByteCount    int      `json:"dataByteCount"`
	EntryPoint       uint32   `json:"entryPoint"`
	Text             []string `json:"text"`
	Data             []string `json:"data,omitempty"`

	Stats *ReportStats `json:"stats,omitempty"`
}

// ReportStats mirrors assembler.Stats for the JSON report.
type ReportStats struct {
	Instructions int    `json:"instructions"`
	DataBytes    int    `json:"dataBytes"`
	Labels       int    `json:"labels"`
	ImageBytes   int    `json:"imageBytes"`
	Elapsed      string `json:"elapsed"`
}

// JSON writes an image, and optionally its statistics, as an indented
// JSON report.
func JSON(w io.Writer, img *assembler.Image, stats *assembler.Stats) error {
	if img == nil {
		return errors.New("no image to format")
	}
	r := Report{
		InstructionCount: img.InstructionCount,
		DataByteCount:    img.DataByteCount,
		EntryPoint:       img.EntryPoint,
		Text:             hexWords(img.TextBytes),
		Data:             hexWords(img.DataBytes),
	}
	if stats != nil {
		r.Stats = &ReportStats{
			Instructions: stats.Instructions,
			DataBytes:    stats.DataBytes,
			Labels:       stats.Labels,
			ImageBytes:   stats.ImageBytes,
			Elapsed:      stats.Elapsed.String(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func hexWords(data []byte) []string {
	words := isa.BytesToWords(data)
	out := make([]string, len(words))
	for i, word := range words {
		out[i] = fmt.Sprintf("%08x", word)
	}
	return out
}
