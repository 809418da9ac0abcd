package assembler

import (
	"strconv"
	"strings"

	"github.com/minisys/masm/isa"
)

type segment int

const (
	segText segment = iota
	segData
)

type parser struct {
	prog *Program
	seg  segment
	errs ErrorList
}

// Parse turns Minisys assembly source into a Program. Label addresses
// are assigned while scanning, using the expanded instruction count of
// every preceding instruction, so a later pass can rely on them. All
// problems found in the unit are reported together.
func Parse(src string) (*Program, error) {
	p := &parser{prog: &Program{Labels: NewLabelTable()}}
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	for i, line := range lines {
		p.parseLine(i+1, line)
	}
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return p.prog, nil
}

func (p *parser) parseLine(num int, raw string) {
	line := raw
	if i := strings.IndexByte(line, '#'); i != -1 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	// Peel off leading labels. A colon inside a string literal never
	// follows a bare identifier, so it is left alone.
	for {
		i := strings.IndexByte(line, ':')
		if i == -1 {
			break
		}
		name := strings.TrimSpace(line[:i])
		if !isIdent(name) {
			break
		}
		p.defineLabel(name, num)
		line = strings.TrimSpace(line[i+1:])
		if line == "" {
			return
		}
	}

	if strings.HasPrefix(line, ".") {
		p.parseDirective(num, line)
		return
	}
	p.parseInstruction(num, line)
}

func (p *parser) defineLabel(name string, num int) {
	l := &Label{Name: name, Line: num}
	if p.seg == segData {
		l.Address = uint32(p.prog.Data.Size)
		l.Data = true
	} else {
		l.Address = uint32(p.prog.Text.Size * isa.WordSize)
	}
	if err := p.prog.Labels.Define(l); err != nil {
		p.errs.addErr(err, num, name+":")
	}
}

func (p *parser) parseDirective(num int, line string) {
	name, rest := splitMnemonic(line)
	switch strings.ToLower(name) {
	case ".text":
		if rest != "" {
			p.errs.addf(Syntax, num, line, ".text takes no operands")
			return
		}
		p.seg = segText
	case ".data":
		if rest != "" {
			p.errs.addf(Syntax, num, line, ".data takes no operands")
			return
		}
		p.seg = segData
	case ".byte":
		p.parseDataValues(num, line, "byte", rest, 1)
	case ".half":
		p.parseDataValues(num, line, "half", rest, 2)
	case ".word":
		p.parseDataValues(num, line, "word", rest, 4)
	case ".ascii":
		p.parseAscii(num, line, rest)
	case ".space":
		p.parseSpace(num, line, rest)
	default:
		p.errs.addf(Syntax, num, line, "unknown directive %s", name)
	}
}

func (p *parser) parseDataValues(num int, line, directive, rest string, width int) {
	if !p.requireData(num, line, directive) {
		return
	}
	if rest == "" {
		p.errs.addf(Syntax, num, line, ".%s expects at least one value", directive)
		return
	}
	item := &DataItem{Directive: directive, Line: num}
	for _, s := range splitOperands(rest) {
		v, err := parseNumber(s)
		if err != nil {
			p.errs.addErr(err, num, line)
			return
		}
		item.Values = append(item.Values, v)
	}
	item.Size = width * len(item.Values)
	p.appendData(num, line, item)
}

func (p *parser) parseAscii(num int, line, rest string) {
	if !p.requireData(num, line, "ascii") {
		return
	}
	text, err := strconv.Unquote(rest)
	if err != nil {
		p.errs.addf(Syntax, num, line, ".ascii expects a double-quoted string")
		return
	}
	p.appendData(num, line, &DataItem{
		Directive: "ascii",
		Text:      text,
		Size:      len(text),
		Line:      num,
	})
}

func (p *parser) parseSpace(num int, line, rest string) {
	if !p.requireData(num, line, "space") {
		return
	}
	n, err := parseNumber(rest)
	if err != nil {
		p.errs.addErr(err, num, line)
		return
	}
	if n < 0 {
		p.errs.addf(Semantic, num, line, ".space size must not be negative")
		return
	}
	p.appendData(num, line, &DataItem{
		Directive: "space",
		Values:    []int64{n},
		Size:      int(n),
		Line:      num,
	})
}

func (p *parser) requireData(num int, line, directive string) bool {
	if p.seg != segData {
		p.errs.addf(Syntax, num, line, ".%s outside the .data segment", directive)
		return false
	}
	return true
}

func (p *parser) appendData(num int, line string, item *DataItem) {
	if p.prog.Data.Size+item.Size > isa.DataMemoryBytes {
		p.errs.addf(Semantic, num, line, "data segment exceeds %d bytes", isa.DataMemoryBytes)
		return
	}
	item.Address = uint32(p.prog.Data.Size)
	p.prog.Data.Items = append(p.prog.Data.Items, item)
	p.prog.Data.Size += item.Size
}

func (p *parser) parseInstruction(num int, line string) {
	if p.seg != segText {
		p.errs.addf(Syntax, num, line, "instruction outside the .text segment")
		return
	}
	in, err := parseInstructionText(line, num)
	if err != nil {
		p.errs.addErr(err, num, line)
		// Keep the location counter moving so later label addresses
		// stay plausible for further diagnostics.
		p.prog.Text.Size++
		return
	}
	p.prog.Text.Instructions = append(p.prog.Text.Instructions, in)
	p.prog.Text.Size += expansionCount(in)
}

// parseInstructionText parses a single instruction with its operands.
// The line must already be free of labels and comments.
func parseInstructionText(line string, num int) (*Instruction, error) {
	mnemonic, rest := splitMnemonic(line)
	in := &Instruction{Mnemonic: strings.ToLower(mnemonic), Line: num, Source: line}
	if rest == "" {
		return in, nil
	}
	for _, s := range splitOperands(rest) {
		if s == "" {
			return nil, Errorf(Syntax, num, line, "empty operand")
		}
		op, err := parseOperand(s)
		if err != nil {
			return nil, err
		}
		in.Operands = append(in.Operands, op)
	}
	return in, nil
}

func parseOperand(s string) (Operand, error) {
	op := Operand{Raw: s}
	switch {
	case strings.HasPrefix(s, "$"):
		n, ok := isa.Register(s)
		if !ok {
			return op, Errorf(Syntax, 0, "", "unknown register %q", s)
		}
		op.Kind = OperandRegister
		op.Reg = n
	case strings.HasSuffix(s, ")") && strings.ContainsRune(s, '('):
		return parseMemoryOperand(s)
	case looksNumeric(s):
		v, err := parseNumber(s)
		if err != nil {
			return op, err
		}
		op.Kind = OperandImmediate
		op.Value = v
	default:
		if !isIdent(s) {
			return op, Errorf(Syntax, 0, "", "malformed operand %q", s)
		}
		op.Kind = OperandLabel
		op.Label = s
	}
	return op, nil
}

func parseMemoryOperand(s string) (Operand, error) {
	op := Operand{Kind: OperandMemory, Raw: s}
	open := strings.IndexByte(s, '(')
	offset := strings.TrimSpace(s[:open])
	base := strings.TrimSpace(s[open+1 : len(s)-1])
	reg, ok := isa.Register(base)
	if !ok {
		return op, Errorf(Syntax, 0, "", "bad base register in %q", s)
	}
	op.Reg = reg
	switch {
	case offset == "":
	case looksNumeric(offset):
		v, err := parseNumber(offset)
		if err != nil {
			return op, err
		}
		op.Value = v
	case isIdent(offset):
		op.Label = offset
	default:
		return op, Errorf(Syntax, 0, "", "bad offset in %q", s)
	}
	return op, nil
}

// parseNumber accepts decimal, 0x hexadecimal and 0b binary literals
// with an optional sign.
func parseNumber(s string) (int64, error) {
	t := strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	case strings.HasPrefix(t, "-"):
		neg = true
		t = t[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(t, "0x"), strings.HasPrefix(t, "0X"):
		base = 16
		t = t[2:]
	case strings.HasPrefix(t, "0b"), strings.HasPrefix(t, "0B"):
		base = 2
		t = t[2:]
	}
	// ParseInt would accept a second sign here.
	if t == "" || t[0] == '+' || t[0] == '-' {
		return 0, Errorf(Syntax, 0, "", "bad number %q", s)
	}
	v, err := strconv.ParseInt(t, base, 64)
	if err != nil {
		return 0, Errorf(Syntax, 0, "", "bad number %q", s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	return s[0] == '-' || s[0] == '+' || (s[0] >= '0' && s[0] <= '9')
}

// isIdent reports whether s is a plain label identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func splitMnemonic(line string) (string, string) {
	if i := strings.IndexAny(line, " \t"); i != -1 {
		return line[:i], strings.TrimSpace(line[i:])
	}
	return line, ""
}

// splitOperands splits an operand string by commas, but ignores commas
// inside parentheses.
func splitOperands(s string) []string {
	var result []string
	parenLevel := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			parenLevel++
		case ')':
			parenLevel--
		case ',':
			if parenLevel == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	return append(result, strings.TrimSpace(s[last:]))
}
