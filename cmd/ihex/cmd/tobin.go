package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// tobinCmd represents the tobin command
var tobinCmd = &cobra.Command{
	Use:   "tobin <in.hex>",
	Short: "Flatten a hex file into a raw binary image",
	Long: `Flatten an Intel HEX file into a raw binary image. Gaps between
segments are filled with the padding byte. By default the image spans
from the lowest to the highest used address.

Example:
  ihex tobin firmware.hex -o firmware.bin --padding 0x00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, cfg, err := parseFile(cmd, args[0])
		if err != nil {
			return err
		}

		padding, err := cfg.ParsePadding()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("padding") {
			s, _ := cmd.Flags().GetString("padding")
			cfg.Padding = s
			if padding, err = cfg.ParsePadding(); err != nil {
				return err
			}
		}

		segs := f.Segments().Segments()
		if len(segs) == 0 {
			return fmt.Errorf("%s holds no data", args[0])
		}
		base := segs[0].Start()
		if cmd.Flags().Changed("base") {
			s, _ := cmd.Flags().GetString("base")
			if base, err = strconv.ParseUint(s, 0, 64); err != nil {
				return fmt.Errorf("invalid base address %q: %w", s, err)
			}
		}
		size := int(f.MaxAddress() - base)
		if cmd.Flags().Changed("size") {
			s, _ := cmd.Flags().GetString("size")
			v, err := strconv.ParseUint(s, 0, 32)
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", s, err)
			}
			size = int(v)
		}

		output, _ := cmd.Flags().GetString("output")
		data := f.Binary(base, size, padding)
		if output == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(output, data, 0644)
	},
}

func init() {
	tobinCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	tobinCmd.Flags().String("base", "", "Base address of the image (default lowest used address)")
	tobinCmd.Flags().String("size", "", "Image size in bytes (default up to highest used address)")
	tobinCmd.Flags().String("padding", "", "Gap fill byte (default from config, 0xFF)")
	rootCmd.AddCommand(tobinCmd)
}
