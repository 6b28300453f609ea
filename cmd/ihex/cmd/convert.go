package cmd

import (
	"github.com/spf13/cobra"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <in.hex>",
	Short: "Rewrite a hex file with different presentation settings",
	Long: `Parse an Intel HEX file and write it back with the configured
format, line length and start code.

Example:
  ihex convert -f i8hex -l 32 boot.hex -o boot8.hex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, _, err := parseFile(cmd, args[0])
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, f, output)
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(convertCmd)
}
