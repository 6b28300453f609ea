package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag state left behind by a previous Execute, since
// rootCmd is a package global shared by every test.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestHex(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConvertCommand(t *testing.T) {
	in := writeTestHex(t, "in.hex", ":0300300002337A1E\n:00000001FF\n")

	out, err := runCommand(t, "convert", "--line-length", "2", in)
	require.NoError(t, err)
	assert.Equal(t, ":02003000023399\n:010032007A53\n:00000001FF\n", out)
}

func TestConvertCommandRejectsBadInput(t *testing.T) {
	in := writeTestHex(t, "bad.hex", ":00000001FE\n")

	_, err := runCommand(t, "convert", in)
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	in := writeTestHex(t, "in.hex",
		":0300300002337A1E\n:04000005000000CD2A\n:00000001FF\n")

	out, err := runCommand(t, "info", in)
	require.NoError(t, err)
	assert.Contains(t, out, "segment 0x00000030 - 0x00000033  3 bytes")
	assert.Contains(t, out, "start linear address: 0x000000CD")
}

func TestToBinAndFromBinCommands(t *testing.T) {
	tmpDir := t.TempDir()
	hexPath := filepath.Join(tmpDir, "in.hex")
	binPath := filepath.Join(tmpDir, "out.bin")
	require.NoError(t, os.WriteFile(hexPath, []byte(":0300300002337A1E\n:00000001FF\n"), 0600))

	_, err := runCommand(t, "tobin", hexPath, "-o", binPath)
	require.NoError(t, err)

	data, err := os.ReadFile(binPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x33, 0x7A}, data)

	out, err := runCommand(t, "frombin", binPath, "--address", "0x30")
	require.NoError(t, err)
	assert.Equal(t, ":0300300002337A1E\n:00000001FF\n", out)
}

func TestMergeCommand(t *testing.T) {
	a := writeTestHex(t, "a.hex", ":020030000102CB\n:00000001FF\n")
	b := writeTestHex(t, "b.hex", ":020031000304C6\n:00000001FF\n")

	out, err := runCommand(t, "merge", a, b)
	require.NoError(t, err)
	// b overlaps a at 0x31 and wins there.
	assert.Equal(t, ":03003000010304C5\n:00000001FF\n", out)
}
