package packager

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
	"github.com/playnite-extensions/pext-release/internal/logger"
)

// newBuildOutput creates a plugin whose build output holds a nested tree.
func newBuildOutput(t *testing.T) release.Plugin {
	t.Helper()

	dir := t.TempDir()
	plugin := release.Plugin{
		Name:           "F95ZoneMetadata",
		Dir:            dir,
		BuildOutputDir: filepath.Join(dir, "bin", "Release", "net462"),
	}

	files := map[string]string{
		"F95ZoneMetadata.dll":          "assembly",
		"extension.yaml":               "Version: 1.0.0\n",
		filepath.Join("ja", "res.dll"): "satellite",
	}
	for name, contents := range files {
		path := filepath.Join(plugin.BuildOutputDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	}

	return plugin
}

// TestCopy_ReplacesPreviousOutput ensures stale files from an earlier copy do not survive.
func TestCopy_ReplacesPreviousOutput(t *testing.T) {
	t.Parallel()

	plugin := newBuildOutput(t)
	output := t.TempDir()

	stale := filepath.Join(output, plugin.Name, "stale.dll")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	require.NoError(t, Copy(context.Background(), plugin, output))

	_, err := os.Stat(stale)
	require.ErrorIs(t, err, os.ErrNotExist)

	contents, err := os.ReadFile(filepath.Join(output, plugin.Name, "ja", "res.dll"))
	require.NoError(t, err)
	require.Equal(t, "satellite", string(contents))

	contents, err = os.ReadFile(filepath.Join(output, plugin.Name, "F95ZoneMetadata.dll"))
	require.NoError(t, err)
	require.Equal(t, "assembly", string(contents))
}

// TestPack_FlattensTree checks that archive entries are stored under base names only.
func TestPack_FlattensTree(t *testing.T) {
	t.Parallel()

	plugin := newBuildOutput(t)
	output := t.TempDir()

	require.NoError(t, Pack(context.Background(), plugin, output))

	reader, err := zip.OpenReader(filepath.Join(output, "F95ZoneMetadata.pext"))
	require.NoError(t, err)

	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, 0, len(reader.File))
	contents := make(map[string]string, len(reader.File))

	for _, file := range reader.File {
		names = append(names, file.Name)
		require.Equal(t, zip.Deflate, file.Method)

		rc, err := file.Open()
		require.NoError(t, err)

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		contents[file.Name] = string(data)
	}

	sort.Strings(names)
	require.Equal(t, []string{"F95ZoneMetadata.dll", "extension.yaml", "res.dll"}, names)
	require.Equal(t, "satellite", contents["res.dll"])
}

// TestDryRun verifies neither operation writes anything.
func TestDryRun(t *testing.T) {
	t.Parallel()

	plugin := newBuildOutput(t)
	output := t.TempDir()

	require.NoError(t, Copy(context.Background(), plugin, output, WithDryRun(true)))
	require.NoError(t, Pack(context.Background(), plugin, output, WithDryRun(true)))

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// TestRunningProcesses finds the test binary and ignores unknown names.
func TestRunningProcesses(t *testing.T) {
	t.Parallel()

	running, err := runningProcesses(nil)
	require.NoError(t, err)
	require.Empty(t, running)

	running, err = runningProcesses([]string{"Playnite.DesktopApp.exe"})
	require.NoError(t, err)
	require.Empty(t, running)

	self := filepath.Base(os.Args[0])

	running, err = runningProcesses([]string{self})
	require.NoError(t, err)
	require.Equal(t, []string{self}, running)
}

// TestCopy_WarnsWhenHostRunning logs a warning for a running host and still copies.
func TestCopy_WarnsWhenHostRunning(t *testing.T) {
	t.Parallel()

	const message = "Host application is running, copied assemblies may be locked"

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	warnIfHostRunning(ctx, []string{"Playnite.DesktopApp.exe"})
	require.Zero(t, logs.FilterMessage(message).Len())

	self := filepath.Base(os.Args[0])
	plugin := newBuildOutput(t)
	output := t.TempDir()

	require.NoError(t, Copy(ctx, plugin, output, WithHostProcesses("Playnite.DesktopApp.exe", self)))
	require.FileExists(t, filepath.Join(output, plugin.Name, "F95ZoneMetadata.dll"))

	warnings := logs.FilterMessage(message).All()
	require.Len(t, warnings, 1)
	require.Equal(t, zapcore.WarnLevel, warnings[0].Level)
	require.Equal(t, []any{self}, warnings[0].ContextMap()["processes"])
}
