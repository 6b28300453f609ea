package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file.hex>",
	Short: "Show the segments and entry point of a hex file",
	Long: `Show the segments and entry point of an Intel HEX file.

Example:
  ihex info firmware.hex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, _, err := parseFile(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := 0
		for _, s := range f.Segments().Segments() {
			fmt.Fprintf(out, "segment 0x%08X - 0x%08X  %d bytes\n", s.Start(), s.End(), s.Len())
			total += s.Len()
		}
		fmt.Fprintf(out, "total: %d bytes, end address 0x%X\n", total, f.MaxAddress())
		if ssa, ok := f.StartSegmentAddress(); ok {
			fmt.Fprintf(out, "start segment address: CS=0x%04X IP=0x%04X\n", ssa.CodeSegment, ssa.InstructionPointer)
		}
		if sla, ok := f.StartLinearAddress(); ok {
			fmt.Fprintf(out, "start linear address: 0x%08X\n", sla)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
