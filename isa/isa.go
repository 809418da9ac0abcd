// Package isa describes the Minisys-1A instruction set: the binary
// layout of every machine instruction, the register file names and the
// pseudo instructions the assembler accepts. Both the assembler and the
// disassembler are driven by the tables in this package, so an
// instruction added here is automatically understood by both.
package isa

import (
	"math/bits"
	"strings"
)

// Class separates the three MIPS-style instruction layouts plus the
// instructions that take no register or immediate operands at all.
type Class int

const (
	// ClassR is register form: [op:6][rs:5][rt:5][rd:5][shamt:5][funct:6].
	ClassR Class = iota
	// ClassI is immediate form: [op:6][rs:5][rt:5][imm:16].
	ClassI
	// ClassJ is jump form: [op:6][target:26].
	ClassJ
	// ClassSpecial covers operand-free instructions such as nop and
	// syscall, where the whole word is fixed.
	ClassSpecial
)

// Encoding distinguishes instructions whose fields deviate from the
// plain layout of their class.
type Encoding int

const (
	// EncodingPlain fills the class fields from the written operands.
	EncodingPlain Encoding = iota
	// EncodingCP0 marks the coprocessor-0 transfer pair mfc0/mtc0,
	// whose rs field selects the transfer direction and whose last
	// operand is an optional select value in the low three bits.
	EncodingCP0
	// EncodingFixed marks instructions that encode to a single exact
	// word, such as eret.
	EncodingFixed
)

// Role names what an operand slot means so the encoder knows how to
// read the written operand and the disassembler how to print it back.
type Role int

const (
	// RoleRD is a destination register.
	RoleRD Role = iota
	// RoleRS is the first source register.
	RoleRS
	// RoleRT is the second source register.
	RoleRT
	// RoleShamt is a five bit shift amount.
	RoleShamt
	// RoleImm is a sixteen bit immediate. A label here resolves to its
	// absolute byte address.
	RoleImm
	// RoleBranch is a sixteen bit PC-relative word offset, resolved in
	// the second assembler pass when written as a label.
	RoleBranch
	// RoleTarget is a 26 bit jump target, resolved in the second
	// assembler pass when written as a label.
	RoleTarget
	// RoleMem is an offset(base) memory operand. It fills two fields at
	// once: the base register at bit 21 and the offset at bit 0.
	RoleMem
	// RoleSel is the three bit coprocessor register select field.
	RoleSel
)

// Slot describes one written operand of an instruction: what it means
// and where its bits land in the 32-bit word. Slots are listed in the
// order the operands are written in source, which for branches is not
// the order of the fields in the word.
type Slot struct {
	Role  Role
	Width uint
	Shift uint
	// Optional slots may be omitted in source and encode as zero.
	Optional bool
}

// Mask returns the bits of the word this slot occupies.
func (s Slot) Mask() uint32 {
	if s.Role == RoleMem {
		// Base register plus sixteen bit offset.
		return 0x1F<<21 | 0xFFFF
	}
	return ((1 << s.Width) - 1) << s.Shift
}

// Definition is one entry of the instruction registry. Base carries the
// opcode, function code and any fixed register fields already in place,
// so encoding an instruction is Base OR'ed with the operand slots.
type Definition struct {
	Mnemonic string
	Class    Class
	Encoding Encoding
	Base     uint32
	Slots    []Slot
}

// FixedMask returns the bits of the word not covered by any operand
// slot. A word matches this definition when word&FixedMask == Base.
func (d *Definition) FixedMask() uint32 {
	m := ^uint32(0)
	for _, s := range d.Slots {
		m &^= s.Mask()
	}
	return m
}

// fixedBits orders definitions for decoding: more fixed bits means a
// more specific pattern. It keeps the all-zero word decoding as nop
// rather than as a zero-operand sll.
func (d *Definition) fixedBits() int {
	return bits.OnesCount32(d.FixedMask())
}

// Lookup returns the definition for a mnemonic, case-insensitively.
func Lookup(mnemonic string) (*Definition, bool) {
	d, ok := instructions[strings.ToLower(mnemonic)]
	return d, ok
}

// Mnemonics returns every real (non-pseudo) mnemonic in the registry.
func Mnemonics() []string {
	names := make([]string, 0, len(instructions))
	for name := range instructions {
		names = append(names, name)
	}
	return names
}

// Definitions returns the registry ordered from most to fewest fixed
// bits, the order a decoder should try matches in.
func Definitions() []*Definition {
	return decodeOrder
}
