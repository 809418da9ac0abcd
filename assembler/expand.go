package assembler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/minisys/masm/isa"
)

// Expander rewrites pseudo instructions into their real equivalents.
// With a nil label table it runs in sizing mode: %hi and %lo of a
// label read as zero. Expansion counts never depend on label values,
// so sizing mode still yields exact instruction counts.
type Expander struct {
	labels *LabelTable
}

// NewExpander creates an expander resolving labels from the given
// table, which may be nil for sizing mode.
func NewExpander(labels *LabelTable) *Expander {
	return &Expander{labels: labels}
}

// Expand returns the real instructions an instruction stands for. Real
// instructions come back unchanged as a single element, so expansion
// is idempotent.
func (e *Expander) Expand(in *Instruction) ([]*Instruction, error) {
	switch in.Mnemonic {
	case "li":
		return e.expandLI(in)
	case "push":
		return e.expandPush(in)
	case "pop":
		return e.expandPop(in)
	case "jg":
		return e.expandSetBranch(in, 1, 0, "bne")
	case "jle":
		return e.expandSetBranch(in, 0, 1, "beq")
	}
	if lines, ok := isa.Templates(in.Mnemonic); ok {
		return e.expandTemplates(in, lines)
	}
	return []*Instruction{in}, nil
}

// expandLI loads a 32-bit constant: one addi when it fits in a signed
// halfword, otherwise lui of the high half plus ori of the low half.
func (e *Expander) expandLI(in *Instruction) ([]*Instruction, error) {
	if err := wantOperands(in, OperandRegister, OperandImmediate); err != nil {
		return nil, err
	}
	rd := in.Operands[0].Raw
	imm := in.Operands[1].Value
	if imm < math.MinInt32 || imm > math.MaxUint32 {
		return nil, Errorf(Semantic, in.Line, in.Source, "immediate %d does not fit in 32 bits", imm)
	}
	if fitsSigned16(imm) {
		return e.synthAll(in, fmt.Sprintf("addi %s, $zero, %d", rd, imm))
	}
	u := uint32(imm)
	return e.synthAll(in,
		fmt.Sprintf("lui %s, %d", rd, u>>16),
		fmt.Sprintf("ori %s, %s, %d", rd, rd, u&0xFFFF),
	)
}

func (e *Expander) expandPush(in *Instruction) ([]*Instruction, error) {
	if err := wantOperands(in, OperandRegister); err != nil {
		return nil, err
	}
	return e.synthAll(in,
		"addiu $sp, $sp, -4",
		fmt.Sprintf("sw %s, 0($sp)", in.Operands[0].Raw),
	)
}

func (e *Expander) expandPop(in *Instruction) ([]*Instruction, error) {
	if err := wantOperands(in, OperandRegister); err != nil {
		return nil, err
	}
	return e.synthAll(in,
		fmt.Sprintf("lw %s, 0($sp)", in.Operands[0].Raw),
		"addiu $sp, $sp, 4",
	)
}

// expandSetBranch covers jg and jle: set $at from a register compare,
// then branch on it. a and b pick which written register lands on each
// side of the slt.
func (e *Expander) expandSetBranch(in *Instruction, a, b int, branch string) ([]*Instruction, error) {
	if err := wantOperands(in, OperandRegister, OperandRegister, OperandLabel); err != nil {
		return nil, err
	}
	return e.synthAll(in,
		fmt.Sprintf("slt $at, %s, %s", in.Operands[a].Raw, in.Operands[b].Raw),
		fmt.Sprintf("%s $at, $zero, %s", branch, in.Operands[2].Label),
	)
}

func (e *Expander) expandTemplates(in *Instruction, lines []string) ([]*Instruction, error) {
	out := make([]*Instruction, 0, len(lines))
	for _, tmpl := range lines {
		text, err := e.substitute(in, tmpl)
		if err != nil {
			return nil, err
		}
		real, err := synth(in, text)
		if err != nil {
			return nil, err
		}
		out = append(out, real)
	}
	return out, nil
}

func (e *Expander) substitute(in *Instruction, tmpl string) (string, error) {
	mnemonic, rest := splitMnemonic(tmpl)
	if rest == "" {
		return tmpl, nil
	}
	parts := splitOperands(rest)
	for i, part := range parts {
		s, err := e.substituteToken(in, part)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return mnemonic + " " + strings.Join(parts, ", "), nil
}

func (e *Expander) substituteToken(in *Instruction, tok string) (string, error) {
	if len(tok) == 2 && tok[0] == '$' && tok[1] >= '1' && tok[1] <= '9' {
		n := int(tok[1] - '1')
		if n >= len(in.Operands) {
			return "", Errorf(Runtime, in.Line, in.Source,
				"template for %s refers to operand %d of %d", in.Mnemonic, n+1, len(in.Operands))
		}
		return in.Operands[n].Raw, nil
	}
	if tok == "label" {
		return labelOperand(in)
	}
	if (strings.HasPrefix(tok, "%hi(") || strings.HasPrefix(tok, "%lo(")) && strings.HasSuffix(tok, ")") {
		name := tok[4 : len(tok)-1]
		if name == "label" {
			var err error
			if name, err = labelOperand(in); err != nil {
				return "", err
			}
		}
		addr, err := e.resolve(in, name)
		if err != nil {
			return "", err
		}
		half := addr >> 16
		if strings.HasPrefix(tok, "%lo(") {
			half = addr & 0xFFFF
		}
		return strconv.FormatUint(uint64(half), 10), nil
	}
	return tok, nil
}

// resolve reads a label address for %hi/%lo substitution. In sizing
// mode every label reads as zero.
func (e *Expander) resolve(in *Instruction, name string) (uint32, error) {
	if e.labels == nil {
		return 0, nil
	}
	lbl, ok := e.labels.Lookup(name)
	if !ok {
		return 0, Errorf(Semantic, in.Line, in.Source, "undefined label %q", name)
	}
	return lbl.Address, nil
}

func (e *Expander) synthAll(in *Instruction, lines ...string) ([]*Instruction, error) {
	out := make([]*Instruction, 0, len(lines))
	for _, text := range lines {
		real, err := synth(in, text)
		if err != nil {
			return nil, err
		}
		out = append(out, real)
	}
	return out, nil
}

// synth parses generated instruction text. Failure here is a bug in an
// expansion, not a user error.
func synth(in *Instruction, text string) (*Instruction, error) {
	real, err := parseInstructionText(text, in.Line)
	if err != nil {
		return nil, Errorf(Runtime, in.Line, in.Source, "bad expansion %q for %s: %v", text, in.Mnemonic, err)
	}
	real.Source = in.Source
	return real, nil
}

func labelOperand(in *Instruction) (string, error) {
	for _, op := range in.Operands {
		if op.Kind == OperandLabel {
			return op.Label, nil
		}
	}
	return "", Errorf(Semantic, in.Line, in.Source, "%s expects a label operand", in.Mnemonic)
}

func wantOperands(in *Instruction, kinds ...OperandKind) error {
	if len(in.Operands) != len(kinds) {
		return Errorf(Semantic, in.Line, in.Source,
			"%s expects %d operands, got %d", in.Mnemonic, len(kinds), len(in.Operands))
	}
	for i, k := range kinds {
		if in.Operands[i].Kind != k {
			return Errorf(Semantic, in.Line, in.Source,
				"operand %d of %s must be %s", i+1, in.Mnemonic, k)
		}
	}
	return nil
}

// expansionCount returns how many machine words an instruction
// occupies after pseudo expansion. It never needs label addresses:
// only the value of a li immediate changes a count.
func expansionCount(in *Instruction) int {
	switch in.Mnemonic {
	case "li":
		if len(in.Operands) == 2 && in.Operands[1].Kind == OperandImmediate && !fitsSigned16(in.Operands[1].Value) {
			return 2
		}
		return 1
	case "push", "pop", "jg", "jle":
		return 2
	}
	if lines, ok := isa.Templates(in.Mnemonic); ok {
		return len(lines)
	}
	return 1
}

func fitsSigned16(v int64) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}
