// Package disassembler turns Minisys-1A machine code back into
// assembly source. It is driven by the same instruction registry the
// assembler encodes from, so the two stay in step: disassembling an
// assembled program and assembling the listing again reproduces the
// original words.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/minisys/masm/isa"
)

// labelKind separates plain jump targets from subroutine entries.
type labelKind int

const (
	jumpTarget labelKind = iota
	subroutineEntry
)

// Disassemble takes big-endian Minisys machine code and returns it as
// assembly source. Branch and jump targets inside the code become
// loc_/sub_ labels; out-of-range targets stay numeric. Words matching
// no instruction are kept as .word lines.
func Disassemble(code []byte) (string, error) {
	insts, err := decodeAll(code)
	if err != nil {
		return "", err
	}

	// Collect control transfer targets so the listing can name them.
	labels := make(map[uint32]labelKind)
	size := int64(len(code))
	for _, d := range insts {
		if d.target < 0 || d.target >= size {
			continue
		}
		addr := uint32(d.target)
		if d.call {
			labels[addr] = subroutineEntry
		} else if _, ok := labels[addr]; !ok {
			labels[addr] = jumpTarget
		}
	}

	var out strings.Builder
	for _, d := range insts {
		if kind, ok := labels[d.inst.Address]; ok {
			fmt.Fprintf(&out, "%s:\n", labelName(d.inst.Address, kind))
		}
		text := d.inst.Operands
		if d.target >= 0 && d.target < size {
			if kind, ok := labels[uint32(d.target)]; ok {
				text = replaceLastOperand(text, labelName(uint32(d.target), kind))
			}
		}
		if text != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", d.inst.Mnemonic, text)
		} else {
			fmt.Fprintf(&out, "    %s\n", d.inst.Mnemonic)
		}
	}
	return out.String(), nil
}

// Decode decodes big-endian machine code into instructions without any
// label analysis.
func Decode(code []byte) ([]Instruction, error) {
	decoded, err := decodeAll(code)
	if err != nil {
		return nil, err
	}
	insts := make([]Instruction, len(decoded))
	for i, d := range decoded {
		insts[i] = d.inst
	}
	return insts, nil
}

type decoded struct {
	inst   Instruction
	target int64
	call   bool
}

func decodeAll(code []byte) ([]decoded, error) {
	if len(code)%isa.WordSize != 0 {
		return nil, fmt.Errorf("code is %d bytes, not a whole number of %d byte words",
			len(code), isa.WordSize)
	}
	words := isa.BytesToWords(code)
	insts := make([]decoded, len(words))
	for i, word := range words {
		addr := uint32(i * isa.WordSize)
		inst, target, call := decodeWord(addr, word)
		insts[i] = decoded{inst: inst, target: target, call: call}
	}
	return insts, nil
}

// replaceLastOperand swaps the final operand for a label name. The
// control transfer operand is always written last.
func replaceLastOperand(operands, label string) string {
	if i := strings.LastIndex(operands, ", "); i >= 0 {
		return operands[:i+2] + label
	}
	return label
}

func labelName(addr uint32, kind labelKind) string {
	prefix := "loc_"
	if kind == subroutineEntry {
		prefix = "sub_"
	}
	return fmt.Sprintf("%s%04X", prefix, addr)
}
