package assembler

import "time"

// Image is an assembled memory image. Instruction and data memory are
// separate address spaces on the board, so they are kept as separate
// byte sequences, both big-endian.
type Image struct {
	TextBytes        []byte
	DataBytes        []byte
	InstructionCount int
	DataByteCount    int
	// EntryPoint is the first executed address. The board always
	// starts at zero.
	EntryPoint uint32
}

// Stats summarises one assembly run.
type Stats struct {
	Instructions int
	DataBytes    int
	Labels       int
	ImageBytes   int
	Elapsed      time.Duration
}
