// Command masm assembles, links and disassembles Minisys-1A programs.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "masm",
		Short: "Minisys-1A assembler toolchain",
		Long: `masm turns Minisys-1A assembly into memory images for the board:
build assembles a single file, link composes BIOS, user program and
interrupt code into the full 64 KB instruction memory, and disasm turns
an image back into source.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(buildCommand(), linkCommand(), disasmCommand())
	return root
}

const version = "1.0.0"
