package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minisys/masm/disassembler"
	"github.com/minisys/masm/isa"
)

func disasmCommand() *cobra.Command {
	var (
		outFile string
		hexIn   bool
	)
	cmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Disassemble a machine code image back to source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			code := data
			if hexIn || strings.HasSuffix(args[0], ".hex") {
				code, err = parseHexWords(string(data))
				if err != nil {
					return err
				}
			}
			listing, err := disassembler.Disassemble(code)
			if err != nil {
				return err
			}
			if outFile == "" {
				fmt.Fprint(cmd.OutOrStdout(), listing)
				return nil
			}
			if err := os.WriteFile(outFile, []byte(listing), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the listing to a file instead of standard output")
	cmd.Flags().BoolVar(&hexIn, "hex", false, "input is hex text rather than raw binary")
	return cmd
}

// parseHexWords reads the hex text format back into machine code.
func parseHexWords(text string) ([]byte, error) {
	var words []uint32
	for _, tok := range strings.Fields(text) {
		v, err := strconv.ParseUint(tok, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad hex word %q", tok)
		}
		words = append(words, uint32(v))
	}
	return isa.WordsToBytes(words), nil
}
