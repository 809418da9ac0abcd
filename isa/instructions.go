package isa

import "sort"

// Field positions within an instruction word.
const (
	shiftRS     = 21
	shiftRT     = 16
	shiftRD     = 11
	shiftShamt  = 6
	shiftOp     = 26
	widthReg    = 5
	widthImm    = 16
	widthTarget = 26
	widthSel    = 3
)

// Operand slot shorthands for the registry table below. Each names a
// field of the word; the table lists them in written operand order.
var (
	slotRD     = Slot{Role: RoleRD, Width: widthReg, Shift: shiftRD}
	slotRS     = Slot{Role: RoleRS, Width: widthReg, Shift: shiftRS}
	slotRT     = Slot{Role: RoleRT, Width: widthReg, Shift: shiftRT}
	slotShamt  = Slot{Role: RoleShamt, Width: widthReg, Shift: shiftShamt}
	slotImm    = Slot{Role: RoleImm, Width: widthImm}
	slotBranch = Slot{Role: RoleBranch, Width: widthImm}
	slotTarget = Slot{Role: RoleTarget, Width: widthTarget}
	slotMem    = Slot{Role: RoleMem}
	slotSel    = Slot{Role: RoleSel, Width: widthSel, Optional: true}
)

func rIns(name string, funct uint32, slots ...Slot) Definition {
	return Definition{Mnemonic: name, Class: ClassR, Base: funct, Slots: slots}
}

func iIns(name string, op uint32, slots ...Slot) Definition {
	return Definition{Mnemonic: name, Class: ClassI, Base: op << shiftOp, Slots: slots}
}

// condIns covers the branch-on-condition family whose rt field is not
// an operand but part of the opcode.
func condIns(name string, op, rt uint32) Definition {
	return Definition{
		Mnemonic: name,
		Class:    ClassI,
		Base:     op<<shiftOp | rt<<shiftRT,
		Slots:    []Slot{slotRS, slotBranch},
	}
}

func jIns(name string, op uint32) Definition {
	return Definition{Mnemonic: name, Class: ClassJ, Base: op << shiftOp, Slots: []Slot{slotTarget}}
}

func fixedIns(name string, word uint32) Definition {
	return Definition{Mnemonic: name, Class: ClassSpecial, Encoding: EncodingFixed, Base: word}
}

// cp0Ins covers the coprocessor-0 transfer family whose rs field is
// not an operand but part of the opcode.
func cp0Ins(name string, rs uint32) Definition {
	return Definition{
		Mnemonic: name,
		Class:    ClassI,
		Encoding: EncodingCP0,
		Base:     0x10<<shiftOp | rs<<shiftRS,
		Slots:    []Slot{slotRT, slotRD, slotSel},
	}
}

// table is the complete Minisys-1A instruction registry. Branch
// instructions with two registers list rt before rs because the
// hardware compares the first written operand out of the rt field.
var table = []Definition{
	// Three-register arithmetic and logic.
	rIns("add", 0x20, slotRD, slotRS, slotRT),
	rIns("addu", 0x21, slotRD, slotRS, slotRT),
	rIns("sub", 0x22, slotRD, slotRS, slotRT),
	rIns("subu", 0x23, slotRD, slotRS, slotRT),
	rIns("and", 0x24, slotRD, slotRS, slotRT),
	rIns("or", 0x25, slotRD, slotRS, slotRT),
	rIns("xor", 0x26, slotRD, slotRS, slotRT),
	rIns("nor", 0x27, slotRD, slotRS, slotRT),
	rIns("slt", 0x2A, slotRD, slotRS, slotRT),
	rIns("sltu", 0x2B, slotRD, slotRS, slotRT),

	// Shifts by constant and by register.
	rIns("sll", 0x00, slotRD, slotRT, slotShamt),
	rIns("srl", 0x02, slotRD, slotRT, slotShamt),
	rIns("sra", 0x03, slotRD, slotRT, slotShamt),
	rIns("sllv", 0x04, slotRD, slotRT, slotRS),
	rIns("srlv", 0x06, slotRD, slotRT, slotRS),
	rIns("srav", 0x07, slotRD, slotRT, slotRS),

	// Multiply, divide and the hi/lo accumulator moves.
	rIns("mult", 0x18, slotRS, slotRT),
	rIns("multu", 0x19, slotRS, slotRT),
	rIns("div", 0x1A, slotRS, slotRT),
	rIns("divu", 0x1B, slotRS, slotRT),
	rIns("mfhi", 0x10, slotRD),
	rIns("mthi", 0x11, slotRS),
	rIns("mflo", 0x12, slotRD),
	rIns("mtlo", 0x13, slotRS),

	// Register jumps.
	rIns("jr", 0x08, slotRS),
	rIns("jalr", 0x09, slotRS, slotRD),

	// Immediate arithmetic and logic.
	iIns("addi", 0x08, slotRT, slotRS, slotImm),
	iIns("addiu", 0x09, slotRT, slotRS, slotImm),
	iIns("slti", 0x0A, slotRT, slotRS, slotImm),
	iIns("sltiu", 0x0B, slotRT, slotRS, slotImm),
	iIns("andi", 0x0C, slotRT, slotRS, slotImm),
	iIns("ori", 0x0D, slotRT, slotRS, slotImm),
	iIns("xori", 0x0E, slotRT, slotRS, slotImm),
	iIns("lui", 0x0F, slotRT, slotImm),

	// Compare-and-branch. The first written register lands in rt.
	iIns("beq", 0x04, slotRT, slotRS, slotBranch),
	iIns("bne", 0x05, slotRT, slotRS, slotBranch),
	condIns("bgez", 0x01, 0x01),
	condIns("bltz", 0x01, 0x00),
	condIns("bgezal", 0x01, 0x11),
	condIns("bltzal", 0x01, 0x10),
	condIns("blez", 0x06, 0x00),
	condIns("bgtz", 0x07, 0x00),

	// Loads and stores.
	iIns("lb", 0x20, slotRT, slotMem),
	iIns("lh", 0x21, slotRT, slotMem),
	iIns("lw", 0x23, slotRT, slotMem),
	iIns("lbu", 0x24, slotRT, slotMem),
	iIns("lhu", 0x25, slotRT, slotMem),
	iIns("sb", 0x28, slotRT, slotMem),
	iIns("sh", 0x29, slotRT, slotMem),
	iIns("sw", 0x2B, slotRT, slotMem),

	// Absolute jumps.
	jIns("j", 0x02),
	jIns("jal", 0x03),

	// Coprocessor 0 transfers and exception return.
	cp0Ins("mfc0", 0x00),
	cp0Ins("mtc0", 0x04),
	{Mnemonic: "eret", Class: ClassI, Encoding: EncodingFixed, Base: 0x42000018},

	// Fixed words.
	fixedIns("nop", 0x00000000),
	fixedIns("syscall", 0x0000000C),
	fixedIns("break", 0x0000000D),
}

var (
	instructions map[string]*Definition
	decodeOrder  []*Definition
)

func init() {
	instructions = make(map[string]*Definition, len(table))
	decodeOrder = make([]*Definition, 0, len(table))
	for i := range table {
		d := &table[i]
		instructions[d.Mnemonic] = d
		decodeOrder = append(decodeOrder, d)
	}
	sort.Slice(decodeOrder, func(i, j int) bool {
		a, b := decodeOrder[i], decodeOrder[j]
		if a.fixedBits() != b.fixedBits() {
			return a.fixedBits() > b.fixedBits()
		}
		return a.Mnemonic < b.Mnemonic
	})
}
