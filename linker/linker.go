// Package linker composes BIOS, user application and interrupt
// fragments into a single source covering all of instruction memory.
// Each fragment is sized by expanding its pseudo instructions, checked
// against its region budget and padded with nop to the region
// boundary, so the assembled image always fills exactly 64 KB.
package linker

import (
	"fmt"
	"strings"

	"github.com/minisys/masm/assembler"
	"github.com/minisys/masm/isa"
)

type fragment struct {
	region    Region
	src       string
	allowData bool

	count int
	data  []string
	text  []string
}

// LinkAll composes the four program fragments into one assemblable
// source. The user fragment's .data segment is hoisted to the top of
// the output; the other fragments must not declare data. A fragment
// larger than its region is a linking error and nothing is produced.
func LinkAll(bios, user, intEntry, intHandler string) (string, error) {
	frags := []*fragment{
		{region: RegionBIOS, src: bios},
		{region: RegionUser, src: user, allowData: true},
		{region: RegionIntEntry, src: intEntry},
		{region: RegionIntHandler, src: intHandler},
	}
	for _, f := range frags {
		f.data, f.text = splitSegments(f.src)
		if len(f.data) > 0 && !f.allowData {
			return "", assembler.Errorf(assembler.Linking, 0, "",
				"%s fragment must not declare a .data segment", f.region.Name)
		}
		count, err := assembler.CountTextInstructions(f.src)
		if err != nil {
			return "", fmt.Errorf("sizing %s fragment: %w", f.region.Name, err)
		}
		f.count = count
		if count > f.region.Words() {
			return "", assembler.Errorf(assembler.Linking, 0, "",
				"%s region overflow: program needs %d instructions, region holds %d",
				f.region.Name, count, f.region.Words())
		}
	}

	var b strings.Builder
	if data := frags[1].data; len(data) > 0 {
		b.WriteString(".data\n")
		for _, line := range data {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString(".text\n")

	total := 0
	empty := &fragment{region: RegionEmpty}
	for _, f := range []*fragment{frags[0], frags[1], empty, frags[2], frags[3]} {
		fmt.Fprintf(&b, "# ----- %s @ 0x%04X -----\n", f.region.Name, f.region.Start)
		for _, line := range f.text {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		pad := f.region.Words() - f.count
		b.WriteString(strings.Repeat("nop\n", pad))
		total += f.region.Words()
	}
	if total != isa.InstructionMemoryWords {
		return "", assembler.Errorf(assembler.Linking, 0, "",
			"memory layout builds %d words, expected %d", total, isa.InstructionMemoryWords)
	}
	return b.String(), nil
}

// LinkUserProgram links a bare user program against the default BIOS
// and interrupt fragments.
func LinkUserProgram(user string) (string, error) {
	return LinkAll(DefaultBIOS, user, DefaultInterruptEntry, DefaultInterruptHandler)
}

// splitSegments separates a fragment's lines into its .data and .text
// parts without assembling them. Segment directives are consumed;
// everything before the first directive counts as text, matching the
// assembler's default segment. Blank lines are dropped, comments kept.
func splitSegments(src string) (data, text []string) {
	inData := false
	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		switch directiveOf(line) {
		case ".data":
			inData = true
			continue
		case ".text":
			inData = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if inData {
			data = append(data, line)
		} else {
			text = append(text, line)
		}
	}
	return data, text
}

// directiveOf reports the segment directive a line consists of, or ""
// when the line is anything else.
func directiveOf(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	switch t := strings.TrimSpace(line); t {
	case ".data", ".text":
		return t
	}
	return ""
}
