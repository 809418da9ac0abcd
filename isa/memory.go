package isa

// Memory geometry of the Minisys-1A board. Instruction and data memory
// are separate address spaces of 64 KB each.
const (
	// InstructionMemoryWords is the capacity of instruction memory in
	// 32-bit words.
	InstructionMemoryWords = 16384
	// InstructionMemoryBytes is the same capacity in bytes.
	InstructionMemoryBytes = InstructionMemoryWords * WordSize
	// DataMemoryBytes is the capacity of data memory.
	DataMemoryBytes = 65536
)
