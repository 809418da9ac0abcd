package isa

import "strings"

// Pseudo instructions come in two kinds. Most expand by substituting
// the written operands into the template lines below: $1, $2 and $3
// stand for the first, second and third operand as written, label for
// the name of the label operand, and %hi(label)/%lo(label) for the
// upper and lower sixteen bits of the label's resolved address. A few
// (li, push, pop, jg, jle) need real logic and are expanded in code by
// the assembler; they are listed in customPseudo so that lookups still
// recognise them.

var pseudoTemplates = map[string][]string{
	"move": {"addu $1, $zero, $2"},
	"la":   {"lui $1, %hi(label)", "ori $1, $1, %lo(label)"},
	"not":  {"nor $1, $2, $zero"},
	"neg":  {"sub $1, $zero, $2"},
	"b":    {"beq $zero, $zero, label"},
	"bal":  {"bgezal $zero, label"},
	"beqz": {"beq $1, $zero, label"},
	"bnez": {"bne $1, $zero, label"},
	"bgt":  {"slt $at, $2, $1", "bne $at, $zero, label"},
	"bge":  {"slt $at, $1, $2", "beq $at, $zero, label"},
	"blt":  {"slt $at, $1, $2", "bne $at, $zero, label"},
	"ble":  {"slt $at, $2, $1", "beq $at, $zero, label"},
}

var customPseudo = map[string]bool{
	"li":   true,
	"push": true,
	"pop":  true,
	"jg":   true,
	"jle":  true,
}

// Templates returns the expansion template lines for a pseudo
// instruction, or false for mnemonics that are real instructions or
// expand through custom logic.
func Templates(mnemonic string) ([]string, bool) {
	t, ok := pseudoTemplates[strings.ToLower(mnemonic)]
	return t, ok
}

// IsPseudo reports whether the mnemonic is any pseudo instruction,
// template-driven or custom.
func IsPseudo(mnemonic string) bool {
	m := strings.ToLower(mnemonic)
	if customPseudo[m] {
		return true
	}
	_, ok := pseudoTemplates[m]
	return ok
}
