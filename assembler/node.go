package assembler

// OperandKind defines the type of a parsed operand.
type OperandKind int

const (
	// OperandRegister is a general purpose register such as $t0.
	OperandRegister OperandKind = iota
	// OperandImmediate is a numeric constant.
	OperandImmediate
	// OperandLabel is a reference to a label by name.
	OperandLabel
	// OperandMemory is an offset(base) memory reference.
	OperandMemory
)

// String names the kind with its article, for diagnostics.
func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "a register"
	case OperandImmediate:
		return "an immediate"
	case OperandLabel:
		return "a label"
	case OperandMemory:
		return "a memory reference"
	}
	return "an operand"
}

// Operand is one parsed instruction operand. Memory operands reuse Reg
// for the base register and carry their offset either in Value or, when
// written as a label, in Label.
type Operand struct {
	Kind  OperandKind
	Reg   uint8
	Value int64
	Label string
	Raw   string
}

// Instruction is one text-segment instruction as written, before
// pseudo expansion. Expanded instructions keep the line and source of
// the pseudo instruction they came from.
type Instruction struct {
	Mnemonic string
	Operands []Operand
	Line     int
	Source   string
	Address  uint32
}

// DataItem is one data-segment directive. Size is the number of bytes
// it occupies in data memory.
type DataItem struct {
	Directive string
	Values    []int64
	Text      string
	Size      int
	Line      int
	Address   uint32
}

// Label is a named address in instruction or data memory.
type Label struct {
	Name    string
	Address uint32
	Data    bool
	Line    int
}

// LabelTable maps names to labels across both segments.
type LabelTable struct {
	byName map[string]*Label
	order  []*Label
}

// NewLabelTable creates an empty label table.
func NewLabelTable() *LabelTable {
	return &LabelTable{byName: make(map[string]*Label)}
}

// Define adds a label. Redefining a name is an error, reported against
// the second definition.
func (t *LabelTable) Define(l *Label) error {
	if prev, ok := t.byName[l.Name]; ok {
		return Errorf(Semantic, l.Line, "", "label %q already defined at line %d", l.Name, prev.Line)
	}
	t.byName[l.Name] = l
	t.order = append(t.order, l)
	return nil
}

// Lookup finds a label by name. Safe on a nil table, which defines
// nothing.
func (t *LabelTable) Lookup(name string) (*Label, bool) {
	if t == nil {
		return nil, false
	}
	l, ok := t.byName[name]
	return l, ok
}

// Len returns the number of defined labels.
func (t *LabelTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// All returns the labels in definition order.
func (t *LabelTable) All() []*Label {
	if t == nil {
		return nil
	}
	return t.order
}

// TextSegment is the parsed instruction list. Size is the number of
// machine words the segment occupies once pseudo instructions are
// expanded.
type TextSegment struct {
	Instructions []*Instruction
	Size         int
}

// DataSegment is the parsed data directive list. Size is in bytes.
type DataSegment struct {
	Items []*DataItem
	Size  int
}

// Program is a parsed source unit with its merged label table.
type Program struct {
	Text   TextSegment
	Data   DataSegment
	Labels *LabelTable
}
