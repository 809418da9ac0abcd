package disassembler

import (
	"fmt"
	"strings"

	"github.com/minisys/masm/isa"
)

// Instruction is a single decoded machine word.
type Instruction struct {
	Address  uint32
	Word     uint32
	Mnemonic string
	Operands string
}

// Text renders the instruction the way it would appear in source.
func (i Instruction) Text() string {
	if i.Operands == "" {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + i.Operands
}

// Mnemonics rendered with hexadecimal immediates. These are the
// bit-pattern instructions where a sign-extended decimal would obscure
// the mask being built.
var hexImmediate = map[string]bool{
	"andi": true,
	"ori":  true,
	"xori": true,
	"lui":  true,
}

// DecodeWord decodes one word at the given byte address. Words that
// match no instruction come back as a .word line holding the raw value.
func DecodeWord(addr, word uint32) Instruction {
	inst, _, _ := decodeWord(addr, word)
	return inst
}

// decodeWord additionally reports the control transfer target the word
// encodes, if any, and whether the transfer is a subroutine call.
func decodeWord(addr, word uint32) (inst Instruction, target int64, call bool) {
	inst = Instruction{Address: addr, Word: word}
	target = -1

	def := match(word)
	if def == nil {
		inst.Mnemonic = ".word"
		inst.Operands = fmt.Sprintf("0x%08X", word)
		return inst, target, false
	}

	inst.Mnemonic = def.Mnemonic
	var ops []string
	for _, slot := range def.Slots {
		field := (word >> slot.Shift) & ((1 << slot.Width) - 1)
		switch slot.Role {
		case isa.RoleRD, isa.RoleRS, isa.RoleRT:
			if def.Encoding == isa.EncodingCP0 && slot.Role == isa.RoleRD {
				// Coprocessor register, written by number.
				ops = append(ops, fmt.Sprintf("$%d", field))
				break
			}
			ops = append(ops, isa.RegisterName(uint8(field)))
		case isa.RoleShamt:
			ops = append(ops, fmt.Sprintf("%d", field))
		case isa.RoleImm:
			if hexImmediate[def.Mnemonic] {
				ops = append(ops, fmt.Sprintf("0x%X", field))
			} else {
				ops = append(ops, fmt.Sprintf("%d", int16(field)))
			}
		case isa.RoleBranch:
			offset := int32(int16(field))
			target = int64(addr) + 4 + int64(offset)*4
			ops = append(ops, fmt.Sprintf("%d", offset))
		case isa.RoleTarget:
			target = int64(field) * 4
			ops = append(ops, fmt.Sprintf("%d", field))
		case isa.RoleMem:
			base := (word >> 21) & 0x1F
			offset := int16(word & 0xFFFF)
			ops = append(ops, fmt.Sprintf("%d(%s)", offset, isa.RegisterName(uint8(base))))
		case isa.RoleSel:
			if field != 0 {
				ops = append(ops, fmt.Sprintf("%d", field))
			}
		}
	}
	inst.Operands = strings.Join(ops, ", ")
	call = def.Mnemonic == "jal" || def.Mnemonic == "bgezal" || def.Mnemonic == "bltzal"
	return inst, target, call
}

// match finds the most specific registry entry whose fixed bits equal
// the word's.
func match(word uint32) *isa.Definition {
	for _, def := range isa.Definitions() {
		if word&def.FixedMask() == def.Base {
			return def
		}
	}
	return nil
}
