package linker

// DefaultBIOS hands control straight to the user region. The jump
// target is in words, so 320 lands on byte address 0x500.
const DefaultBIOS = `# boot: jump to the user program
j 320
`

// Default interrupt fragments for programs that install no interrupt
// code of their own: five idle vectors plus the syscall plumbing.
var DefaultInterruptEntry, DefaultInterruptHandler = MergeInterrupt("", "")
