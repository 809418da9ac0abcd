package assembler_test

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minisys/masm/assembler"
)

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ToLower(strings.Join(strings.Fields(s), "")))
	require.NoError(t, err, "invalid expected hex")
	return b
}

// Assembles source and checks the instruction memory against an
// expected byte sequence (in hex).
func assembleAndMatchHex(t *testing.T, name, src, expectedHex string) {
	t.Helper()
	expected := decodeHex(t, expectedHex)
	img, _, err := assembler.Assemble(src)
	require.NoError(t, err, "[%s] failed to assemble:\n%s", name, src)
	require.Equal(t, expected, img.TextBytes, "[%s] text bytes", name)
}

func TestRTypeEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"ADD", "add $v0, $a0, $a1", "00 85 10 20"},
		{"ADDU", "addu $v0, $a0, $a1", "00 85 10 21"},
		{"SUB", "sub $s0, $s1, $s2", "02 32 80 22"},
		{"SUBU", "subu $s0, $s1, $s2", "02 32 80 23"},
		{"AND", "and $t0, $t1, $t2", "01 2A 40 24"},
		{"OR", "or $t0, $t1, $t2", "01 2A 40 25"},
		{"XOR", "xor $t0, $t1, $t2", "01 2A 40 26"},
		{"NOR", "nor $t0, $t1, $t2", "01 2A 40 27"},
		{"SLT", "slt $at, $t1, $t0", "01 28 08 2A"},
		{"SLTU", "sltu $at, $t1, $t0", "01 28 08 2B"},
		{"SLL", "sll $t1, $t0, 4", "00 08 49 00"},
		{"SRL", "srl $t1, $t0, 4", "00 08 49 02"},
		{"SRA", "sra $t1, $t0, 4", "00 08 49 03"},
		{"SLLV", "sllv $t2, $t1, $t0", "01 09 50 04"},
		{"SRLV", "srlv $t2, $t1, $t0", "01 09 50 06"},
		{"SRAV", "srav $t2, $t1, $t0", "01 09 50 07"},
		{"JR", "jr $ra", "03 E0 00 08"},
		{"JALR", "jalr $t0, $ra", "01 00 F8 09"},
		{"MULT", "mult $a0, $a1", "00 85 00 18"},
		{"MULTU", "multu $a0, $a1", "00 85 00 19"},
		{"DIV", "div $a0, $a1", "00 85 00 1A"},
		{"DIVU", "divu $a0, $a1", "00 85 00 1B"},
		{"MFHI", "mfhi $v0", "00 00 10 10"},
		{"MTHI", "mthi $a0", "00 80 00 11"},
		{"MFLO", "mflo $v0", "00 00 10 12"},
		{"MTLO", "mtlo $a0", "00 80 00 13"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestITypeEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"ADDI", "addi $t0, $zero, 5", "20 08 00 05"},
		{"ADDI_Negative", "addi $t0, $zero, -1", "20 08 FF FF"},
		{"ADDIU", "addiu $sp, $sp, -4", "27 BD FF FC"},
		{"SLTI", "slti $t0, $t1, 10", "29 28 00 0A"},
		{"SLTIU", "sltiu $t0, $t1, 10", "2D 28 00 0A"},
		{"ANDI", "andi $t0, $t1, 0xFF", "31 28 00 FF"},
		{"ORI", "ori $t0, $t0, 0x8000", "35 08 80 00"},
		{"XORI", "xori $t0, $t1, 0xF0", "39 28 00 F0"},
		{"LUI", "lui $t0, 0x1234", "3C 08 12 34"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestMemoryEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"LW", "lw $t0, 4($sp)", "8F A8 00 04"},
		{"SW", "sw $t0, 0($sp)", "AF A8 00 00"},
		{"LB", "lb $t0, 1($t1)", "81 28 00 01"},
		{"LBU", "lbu $t0, 1($t1)", "91 28 00 01"},
		{"LH", "lh $a0, 2($s0)", "86 04 00 02"},
		{"LHU", "lhu $a0, 2($s0)", "96 04 00 02"},
		{"SB", "sb $t0, 3($t1)", "A1 28 00 03"},
		{"SH", "sh $a0, 2($s0)", "A6 04 00 02"},
		{"LW_BareBase", "lw $t0, ($t1)", "8D 28 00 00"},
		{"SW_NegativeOffset", "sw $t0, -8($fp)", "AF C8 FF F8"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestSpecialAndCP0Encodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"NOP", "nop", "00 00 00 00"},
		{"SYSCALL", "syscall", "00 00 00 0C"},
		{"BREAK", "break", "00 00 00 0D"},
		{"ERET", "eret", "42 00 00 18"},
		{"MFC0", "mfc0 $t0, $12", "40 08 60 00"},
		{"MFC0_Sel", "mfc0 $t0, $12, 2", "40 08 60 02"},
		{"MTC0", "mtc0 $t0, $12", "40 88 60 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

// The first written branch register lands in the rt field and the
// second in rs, mirroring the board's comparator wiring.
func TestBranchOperandsLandSwapped(t *testing.T) {
	assembleAndMatchHex(t, "BEQ_Swap",
		"beq $t0, $t1, next\nnext: nop",
		"11 28 00 00  00 00 00 00")
}

func TestBranchEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"BNE_Backward", "loop: nop\nbne $t0, $zero, loop",
			"00 00 00 00  14 08 FF FE"},
		{"BEQ_Forward", "beq $zero, $zero, fwd\nnop\nfwd: nop",
			"10 00 00 01  00 00 00 00  00 00 00 00"},
		{"BGEZ", "bgez $a0, fwd\nnop\nfwd: nop",
			"04 81 00 01  00 00 00 00  00 00 00 00"},
		{"BLTZ", "bltz $a0, next\nnext: nop",
			"04 80 00 00  00 00 00 00"},
		{"BGEZAL", "bgezal $s0, next\nnext: nop",
			"06 11 00 00  00 00 00 00"},
		{"BLTZAL", "bltzal $s0, next\nnext: nop",
			"06 10 00 00  00 00 00 00"},
		{"BLEZ", "blez $v0, next\nnext: nop",
			"18 40 00 00  00 00 00 00"},
		{"BGTZ", "bgtz $v0, next\nnext: nop",
			"1C 40 00 00  00 00 00 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestJumpEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"J_LabelBack", "main: nop\nj main", "00 00 00 00  08 00 00 00"},
		{"J_Literal", "j 320", "08 00 01 40"},
		{"JAL_Forward", "jal fn\nnop\nfn: nop",
			"0C 00 00 02  00 00 00 00  00 00 00 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

// Label operands outside branch and jump slots read as the label's
// absolute address at encode time.
func TestInlineLabelResolution(t *testing.T) {
	assembleAndMatchHex(t, "InlineText",
		"nop\nnop\nhere: addi $t0, $zero, here",
		"00 00 00 00  00 00 00 00  20 08 00 08")

	src := `
.data
pad: .space 4
val: .word 1
.text
lw $t0, val($gp)
`
	img, _, err := assembler.Assemble(src)
	require.NoError(t, err)
	require.Equal(t, decodeHex(t, "8F 88 00 04"), img.TextBytes)
	require.Equal(t, decodeHex(t, "00 00 00 00 00 00 00 01"), img.DataBytes)
}

func TestPseudoEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"PushPop", "push $t0\npop $t0",
			"27 BD FF FC  AF A8 00 00  8F A8 00 00  27 BD 00 04"},
		{"Move", "move $v0, $a0", "00 04 10 21"},
		{"Not", "not $t0, $t1", "01 20 40 27"},
		{"Neg", "neg $t0, $t1", "00 09 40 22"},
		{"LI_Small", "li $t0, 5", "20 08 00 05"},
		{"LI_Large", "li $t0, 100000", "3C 08 00 01  35 08 86 A0"},
		{"JG", "jg $t0, $t1, done\ndone: nop",
			"01 28 08 2A  14 01 00 00  00 00 00 00"},
		{"JLE", "jle $t0, $t1, done\ndone: nop",
			"01 09 08 2A  10 01 00 00  00 00 00 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

// Labels after a multi-word pseudo instruction must account for every
// emitted word.
func TestLabelAddressAfterExpansion(t *testing.T) {
	assembleAndMatchHex(t, "LabelAfterLI",
		"b skip\nli $t0, 100000\nskip: nop",
		"10 00 00 02  3C 08 00 01  35 08 86 A0  00 00 00 00")
}

func TestDataEncodings(t *testing.T) {
	src := `
.data
.byte 1, -1, 0x7F
.half 0x1234, -2
.word 0xDEADBEEF
.ascii "AB"
.space 3
`
	img, _, err := assembler.Assemble(src)
	require.NoError(t, err)
	require.Empty(t, img.TextBytes)
	require.Equal(t,
		decodeHex(t, "01 FF 7F  12 34 FF FE  DE AD BE EF  41 42  00 00 00"),
		img.DataBytes)
	require.Equal(t, 16, img.DataByteCount)
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown mnemonic", "frob $t0", "unknown instruction"},
		{"missing operand", "add $t0, $t1", "expects 3 operands, got 2"},
		{"too many operands", "nop $t0", "too many operands"},
		{"wrong operand kind", "add $t0, $t1, 5", "must be a register"},
		{"undefined inline label", "addi $t0, $zero, nowhere", "undefined label"},
		{"undefined memory label", "lw $t0, nowhere($gp)", "undefined label"},
		{"undefined branch label", "beq $t0, $t1, nowhere", "undefined label"},
		{"undefined jump label", "j nowhere", "undefined label"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, _, err := assembler.Assemble(tc.src)
			require.Error(t, err)
			require.Nil(t, img)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

// Undefined labels found while patching fixups are collected, not
// fatal, so one run reports them all.
func TestFixupErrorsAreCollected(t *testing.T) {
	src := `
beq $t0, $t1, missing1
j missing2
nop
`
	_, _, err := assembler.Assemble(src)
	require.Error(t, err)
	var list assembler.ErrorList
	require.True(t, errors.As(err, &list))
	require.Len(t, list, 2)
	require.Contains(t, list[0].Error(), "missing1")
	require.Contains(t, list[1].Error(), "missing2")
	for _, e := range list {
		require.Equal(t, assembler.Semantic, e.Kind)
	}
}

func TestProgramTooLargeForInstructionMemory(t *testing.T) {
	src := strings.Repeat("nop\n", 16385)
	_, _, err := assembler.Assemble(src)
	require.Error(t, err)
	require.Contains(t, err.Error(), "instruction memory holds")

	img, _, err := assembler.Assemble(strings.Repeat("nop\n", 16384))
	require.NoError(t, err)
	require.Equal(t, 16384, img.InstructionCount)
}

// The second pass patches the branch using the branch's own recorded
// word index, so instructions emitted after it cannot skew the offset.
func TestBranchOffsetUsesOwnIndex(t *testing.T) {
	src := `
beq $zero, $zero, target
li $t0, 100000
li $t1, 200000
target: nop
`
	img, _, err := assembler.Assemble(src)
	require.NoError(t, err)
	word := binary.BigEndian.Uint32(img.TextBytes[:4])
	// target is word 5; delta from word 1 is 4 words.
	require.Equal(t, uint32(4), word&0xFFFF)
}
