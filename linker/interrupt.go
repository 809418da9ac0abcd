package linker

import "strings"

// VectorCount is the number of interrupt vectors a user program may
// install. Interrupt 5 is the syscall and stays under board control.
const VectorCount = 5

const syscallVector = "j __syscall_entry"

// The fixed syscall handler. It advances EPC past the trapping
// instruction and resumes, leaving dispatch to the user's convention.
const syscallHandler = `__syscall_entry:
	mfc0 $k0, $14
	addiu $k0, $k0, 4
	mtc0 $k0, $14
	eret`

// MergeInterrupt splices a user's partial interrupt code with the
// fixed syscall plumbing. The entry text's instruction lines fill
// vectors 0-4 in order; extra lines are truncated, missing vectors
// become nop. Vector 5 and its handler are always appended and cannot
// be overridden. It returns the entry and handler fragment texts ready
// for LinkAll.
func MergeInterrupt(entry, handler string) (string, string) {
	vectors := instructionLines(entry)
	if len(vectors) > VectorCount {
		vectors = vectors[:VectorCount]
	}
	for len(vectors) < VectorCount {
		vectors = append(vectors, "nop")
	}
	vectors = append(vectors, syscallVector)

	var h strings.Builder
	if strings.TrimSpace(handler) != "" {
		h.WriteString(strings.TrimRight(handler, "\n"))
		h.WriteByte('\n')
	}
	h.WriteString(syscallHandler)
	h.WriteByte('\n')
	return strings.Join(vectors, "\n") + "\n", h.String()
}

// instructionLines returns the non-blank, non-comment lines of a
// vector table source. Each surviving line occupies one vector slot.
func instructionLines(src string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
