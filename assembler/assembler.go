// Package assembler assembles Minisys-1A source into big-endian
// machine code.
package assembler

import "time"

// Assembler holds the state for the assembly process.
type Assembler struct {
	prog *Program
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{}
}

// Assemble takes Minisys-1A assembly code and returns the memory image
// together with run statistics. On failure the returned error is an
// ErrorList carrying every diagnostic found.
func (a *Assembler) Assemble(src string) (*Image, *Stats, error) {
	start := time.Now()
	prog, err := Parse(src)
	if err != nil {
		return nil, nil, err
	}
	a.prog = prog
	img, err := newEncoder(prog).encode()
	if err != nil {
		return nil, nil, err
	}
	stats := &Stats{
		Instructions: img.InstructionCount,
		DataBytes:    img.DataByteCount,
		Labels:       prog.Labels.Len(),
		ImageBytes:   len(img.TextBytes) + len(img.DataBytes),
		Elapsed:      time.Since(start),
	}
	return img, stats, nil
}

// Labels returns the labels of the last assembled program in
// definition order, for symbol listings.
func (a *Assembler) Labels() []*Label {
	if a.prog == nil {
		return nil
	}
	return a.prog.Labels.All()
}

// Assemble is a convenience for one-shot use.
func Assemble(src string) (*Image, *Stats, error) {
	return New().Assemble(src)
}

// CountTextInstructions parses a fragment and returns how many machine
// words its text segment needs once pseudo instructions are expanded.
// The linker sizes fragments with this before composing them.
func CountTextInstructions(src string) (int, error) {
	prog, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return prog.Text.Size, nil
}
