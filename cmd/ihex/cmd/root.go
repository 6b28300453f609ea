/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hexforge/ihex/pkg/config"
	"github.com/hexforge/ihex/pkg/hexfile"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ihex",
	Short: "ihex - Intel HEX image tool",
	Long: `ihex inspects, converts and merges Intel HEX firmware images and
translates between HEX and raw binary files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/ihex/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Presentation format: i8hex, i16hex or i32hex")
	rootCmd.PersistentFlags().IntP("line-length", "l", 0, "Payload bytes per data record (1-255)")
	rootCmd.PersistentFlags().StringP("mark", "m", "", "Record start code, a single character")
	rootCmd.PersistentFlags().Bool("allow-overlap", false, "Accept overlapping data records, last one wins")
}

// settings merges the config file with any command line overrides.
func settings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if p := config.GetDefaultConfigPath(); config.ConfigExists(p) {
			path = p
		}
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("line-length") {
		cfg.LineLength, _ = cmd.Flags().GetInt("line-length")
	}
	if cmd.Flags().Changed("mark") {
		cfg.Mark, _ = cmd.Flags().GetString("mark")
	}
	return cfg, nil
}

// newFile builds an empty hex file from the effective settings.
func newFile(cmd *cobra.Command) (*hexfile.File, *config.Config, error) {
	cfg, err := settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	format, err := cfg.ParseFormat()
	if err != nil {
		return nil, nil, err
	}
	allowOverlap, _ := cmd.Flags().GetBool("allow-overlap")
	f, err := hexfile.New(hexfile.Config{
		Mark:         cfg.Mark,
		Format:       format,
		LineLength:   cfg.LineLength,
		AllowOverlap: allowOverlap,
	})
	if err != nil {
		return nil, nil, err
	}
	return f, cfg, nil
}

// parseFile builds a hex file from the effective settings and fills it
// from the named input file.
func parseFile(cmd *cobra.Command, path string) (*hexfile.File, *config.Config, error) {
	f, cfg, err := newFile(cmd)
	if err != nil {
		return nil, nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()
	if err := f.Parse(in); err != nil {
		return nil, nil, err
	}
	return f, cfg, nil
}

// writeOutput dumps f to the named file, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, f *hexfile.File, path string) error {
	if path == "" {
		return f.Dump(cmd.OutOrStdout())
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Dump(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
