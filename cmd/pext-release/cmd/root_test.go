package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
)

// TestValidateArgs accepts exactly a mode and its argument.
func TestValidateArgs(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateArgs(rootCmd, []string{"update", "1.2.3"}))

	for _, args := range [][]string{nil, {"update"}, {"pack", "out", "extra"}} {
		require.ErrorIs(t, validateArgs(rootCmd, args), release.ErrArgumentCount)
	}
}

// TestValidArgs offers every mode for completion.
func TestValidArgs(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"copy", "pack", "update"}, rootCmd.ValidArgs)

	for _, name := range rootCmd.ValidArgs {
		mode, err := release.ParseMode(name)
		require.NoError(t, err)
		require.Equal(t, name, mode.String())
	}
}
