package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/minisys/masm/assembler"
	"github.com/minisys/masm/linker"
)

func linkCommand() *cobra.Command {
	var (
		out       outputFlags
		biosFile  string
		entryFile string
		handler   string
		merge     bool
		compose   string
	)
	cmd := &cobra.Command{
		Use:   "link <user.asm>",
		Short: "Link a user program into the full 64 KB instruction memory",
		Long: `link composes the BIOS, the user program, the interrupt vector table
and the interrupt handler into one image covering all of instruction
memory. Omitted fragments fall back to the builtin boot jump and idle
interrupt code. With --interrupt, the entry and handler files are
treated as partial user interrupt code and merged with the fixed
syscall vector.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bios, err := readFragment(biosFile, linker.DefaultBIOS)
			if err != nil {
				return err
			}
			entry, err := readFragment(entryFile, "")
			if err != nil {
				return err
			}
			hand, err := readFragment(handler, "")
			if err != nil {
				return err
			}
			switch {
			case merge:
				entry, hand = linker.MergeInterrupt(entry, hand)
			case entryFile == "" && handler == "":
				entry, hand = linker.DefaultInterruptEntry, linker.DefaultInterruptHandler
			}

			composed, err := linker.LinkAll(bios, string(user), entry, hand)
			if err != nil {
				return err
			}
			if compose != "" {
				if err := os.WriteFile(compose, []byte(composed), 0o644); err != nil {
					return err
				}
			}

			img, stats, err := assembler.Assemble(composed)
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
	cmd.Flags().StringVar(&biosFile, "bios", "", "BIOS fragment file")
	cmd.Flags().StringVar(&entryFile, "int-entry", "", "interrupt vector table file")
	cmd.Flags().StringVar(&handler, "int-handler", "", "interrupt handler file")
	cmd.Flags().BoolVar(&merge, "interrupt", false, "merge the interrupt files with the fixed syscall block")
	cmd.Flags().StringVar(&compose, "compose", "", "also write the composed source to this file")
	return cmd
}

func readFragment(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
