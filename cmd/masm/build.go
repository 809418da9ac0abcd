package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/minisys/masm/assembler"
)

func buildCommand() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "build <file.asm>",
		Short: "Assemble one source file into a memory image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			img, stats, err := assembler.Assemble(string(src))
			if err != nil {
				return err
			}
			if out.stats {
				printStats(cmd.OutOrStdout(), stats)
			}
			return out.write(cmd, args[0], img, stats)
		},
	}
	out.register(cmd)
	return cmd
}
