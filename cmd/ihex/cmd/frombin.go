package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// frombinCmd represents the frombin command
var frombinCmd = &cobra.Command{
	Use:   "frombin <in.bin>",
	Short: "Wrap a raw binary image into a hex file",
	Long: `Wrap a raw binary image into an Intel HEX file, placed at the
given base address.

Example:
  ihex frombin firmware.bin --address 0x08000000 -o firmware.hex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		address := uint64(0)
		if cmd.Flags().Changed("address") {
			s, _ := cmd.Flags().GetString("address")
			if address, err = strconv.ParseUint(s, 0, 64); err != nil {
				return fmt.Errorf("invalid address %q: %w", s, err)
			}
		}

		f, _, err := newFile(cmd)
		if err != nil {
			return err
		}
		f.AddBinary(address, data)

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, f, output)
	},
}

func init() {
	frombinCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	frombinCmd.Flags().StringP("address", "a", "0", "Base address for the image")
	rootCmd.AddCommand(frombinCmd)
}
