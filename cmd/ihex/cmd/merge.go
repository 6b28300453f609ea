package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <a.hex> <b.hex> [more.hex...]",
	Short: "Merge several hex files into one image",
	Long: `Merge several Intel HEX files into one image. Files are applied
in argument order; where address ranges overlap, bytes from later files
win. Start addresses are taken from the last file that carries one.

Example:
  ihex merge bootloader.hex app.hex -o combined.hex`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		merged, _, err := newFile(cmd)
		if err != nil {
			return err
		}
		for _, path := range args {
			part, _, err := newFile(cmd)
			if err != nil {
				return err
			}
			in, err := os.Open(path)
			if err != nil {
				return err
			}
			err = part.Parse(in)
			in.Close()
			if err != nil {
				return err
			}
			for _, s := range part.Segments().Segments() {
				merged.AddBinary(s.Start(), s.Bytes())
			}
			if ssa, ok := part.StartSegmentAddress(); ok {
				merged.SetStartSegmentAddress(ssa.CodeSegment, ssa.InstructionPointer)
			}
			if sla, ok := part.StartLinearAddress(); ok {
				merged.SetStartLinearAddress(sla)
			}
		}
		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, merged, output)
	},
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(mergeCmd)
}
