package assembler

import (
	"github.com/minisys/masm/isa"
)

// wordBuffer collects emitted instruction words with random access, so
// the fixup pass can patch earlier words in place.
type wordBuffer struct {
	words []uint32
}

func (b *wordBuffer) emit(w uint32) int {
	b.words = append(b.words, w)
	return len(b.words) - 1
}

func (b *wordBuffer) word(i int) uint32 {
	return b.words[i]
}

func (b *wordBuffer) setWord(i int, w uint32) {
	b.words[i] = w
}

func (b *wordBuffer) len() int {
	return len(b.words)
}

func (b *wordBuffer) bytes() []byte {
	return isa.WordsToBytes(b.words)
}

type fixupKind int

const (
	fixupJump fixupKind = iota
	fixupBranch
)

// fixup records one emitted word whose label field is filled in once
// every label address is known. index is the word's own position, so
// branch offsets are computed relative to the right instruction no
// matter how many words follow.
type fixup struct {
	kind   fixupKind
	index  int
	label  string
	line   int
	source string
}

// Encoder turns a parsed program into machine words over two passes:
// emit everything with label references recorded as fixups, then patch
// the recorded words.
type Encoder struct {
	prog   *Program
	exp    *Expander
	text   wordBuffer
	fixups []fixup
	errs   ErrorList
}

func newEncoder(prog *Program) *Encoder {
	return &Encoder{prog: prog, exp: NewExpander(prog.Labels)}
}

// encode runs both passes and the data encoder. Any recorded
// diagnostic fails the whole encode; the caller gets every diagnostic
// at once.
func (e *Encoder) encode() (*Image, error) {
	e.emitText()
	e.resolveFixups()
	data := encodeData(&e.prog.Data)
	if err := e.errs.Err(); err != nil {
		return nil, err
	}
	return &Image{
		TextBytes:        e.text.bytes(),
		DataBytes:        data,
		InstructionCount: e.text.len(),
		DataByteCount:    len(data),
	}, nil
}

func (e *Encoder) emitText() {
	for _, in := range e.prog.Text.Instructions {
		expanded, err := e.exp.Expand(in)
		if err != nil {
			e.errs.addErr(err, in.Line, in.Source)
			continue
		}
		for _, real := range expanded {
			e.emitOne(real)
		}
	}
	if e.text.len() > isa.InstructionMemoryWords {
		e.errs.addf(Semantic, 0, "",
			"program needs %d instructions, instruction memory holds %d",
			e.text.len(), isa.InstructionMemoryWords)
	}
}

func (e *Encoder) emitOne(in *Instruction) {
	index := e.text.len()
	in.Address = uint32(index * isa.WordSize)
	word, fx, err := e.encodeInstruction(in, index)
	if err != nil {
		e.errs.addErr(err, in.Line, in.Source)
		word = 0
	}
	e.text.emit(word)
	if fx != nil && err == nil {
		e.fixups = append(e.fixups, *fx)
	}
}

func (e *Encoder) encodeInstruction(in *Instruction, index int) (uint32, *fixup, error) {
	def, ok := isa.Lookup(in.Mnemonic)
	if !ok {
		return 0, nil, Errorf(Semantic, in.Line, in.Source, "unknown instruction %q", in.Mnemonic)
	}
	word := def.Base
	var fx *fixup
	used := 0
	for _, slot := range def.Slots {
		if used >= len(in.Operands) {
			if slot.Optional {
				continue
			}
			return 0, nil, Errorf(Semantic, in.Line, in.Source,
				"%s expects %d operands, got %d", in.Mnemonic, len(def.Slots), len(in.Operands))
		}
		op := in.Operands[used]
		used++
		bits, f, err := e.encodeSlot(slot, op, in, index, used)
		if err != nil {
			return 0, nil, err
		}
		word |= bits
		if f != nil {
			fx = f
		}
	}
	if used < len(in.Operands) {
		return 0, nil, Errorf(Semantic, in.Line, in.Source,
			"too many operands for %s", in.Mnemonic)
	}
	return word, fx, nil
}

func (e *Encoder) encodeSlot(slot isa.Slot, op Operand, in *Instruction, index, pos int) (uint32, *fixup, error) {
	switch slot.Role {
	case isa.RoleRD, isa.RoleRS, isa.RoleRT:
		if op.Kind != OperandRegister {
			return 0, nil, e.badOperand(in, pos, "a register", op)
		}
		return uint32(op.Reg) << slot.Shift, nil, nil

	case isa.RoleShamt, isa.RoleSel:
		if op.Kind != OperandImmediate {
			return 0, nil, e.badOperand(in, pos, "an immediate", op)
		}
		mask := uint32(1)<<slot.Width - 1
		return (uint32(op.Value) & mask) << slot.Shift, nil, nil

	case isa.RoleImm:
		switch op.Kind {
		case OperandImmediate:
			return uint32(op.Value) & 0xFFFF, nil, nil
		case OperandLabel:
			// Non-branch label operands read as the absolute address.
			addr, err := e.mustResolve(in, op.Label)
			if err != nil {
				return 0, nil, err
			}
			return addr & 0xFFFF, nil, nil
		}
		return 0, nil, e.badOperand(in, pos, "an immediate or label", op)

	case isa.RoleBranch:
		switch op.Kind {
		case OperandLabel:
			return 0, &fixup{kind: fixupBranch, index: index, label: op.Label, line: in.Line, source: in.Source}, nil
		case OperandImmediate:
			return uint32(op.Value) & 0xFFFF, nil, nil
		}
		return 0, nil, e.badOperand(in, pos, "a label", op)

	case isa.RoleTarget:
		switch op.Kind {
		case OperandLabel:
			return 0, &fixup{kind: fixupJump, index: index, label: op.Label, line: in.Line, source: in.Source}, nil
		case OperandImmediate:
			return uint32(op.Value) & 0x3FFFFFF, nil, nil
		}
		return 0, nil, e.badOperand(in, pos, "a label", op)

	case isa.RoleMem:
		if op.Kind != OperandMemory {
			return 0, nil, e.badOperand(in, pos, "a memory reference", op)
		}
		// Base register sits in the rs field.
		bits := uint32(op.Reg) << 21
		if op.Label != "" {
			addr, err := e.mustResolve(in, op.Label)
			if err != nil {
				return 0, nil, err
			}
			return bits | addr&0xFFFF, nil, nil
		}
		return bits | uint32(op.Value)&0xFFFF, nil, nil
	}
	return 0, nil, Errorf(Runtime, in.Line, in.Source, "unhandled operand role %d", slot.Role)
}

func (e *Encoder) badOperand(in *Instruction, pos int, want string, op Operand) *Error {
	return Errorf(Semantic, in.Line, in.Source,
		"operand %d of %s must be %s, got %q", pos, in.Mnemonic, want, op.Raw)
}

// mustResolve looks up a label used in an inline position. Unlike
// branch and jump targets this cannot wait for the fixup pass.
func (e *Encoder) mustResolve(in *Instruction, name string) (uint32, error) {
	lbl, ok := e.prog.Labels.Lookup(name)
	if !ok {
		return 0, Errorf(Semantic, in.Line, in.Source, "undefined label %q", name)
	}
	return lbl.Address, nil
}

func (e *Encoder) resolveFixups() {
	for _, fx := range e.fixups {
		lbl, ok := e.prog.Labels.Lookup(fx.label)
		if !ok {
			e.errs.addf(Semantic, fx.line, fx.source, "undefined label %q", fx.label)
			continue
		}
		var bits uint32
		switch fx.kind {
		case fixupJump:
			bits = (lbl.Address >> 2) & 0x3FFFFFF
		case fixupBranch:
			// Word-granular delta from the instruction after the
			// branch, truncated to sixteen bits.
			delta := int32(lbl.Address) - int32(fx.index*isa.WordSize+isa.WordSize)
			bits = uint32(delta>>2) & 0xFFFF
		}
		e.text.setWord(fx.index, e.text.word(fx.index)|bits)
	}
}
