package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
)

const playniteMarker = `<PackageReference Include="PlayniteSDK" Version="`

func writeDescriptor(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Extensions.Common.csproj")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestReadDependencyVersion extracts the SDK version from a package reference line.
func TestReadDependencyVersion(t *testing.T) {
	t.Parallel()

	path := writeDescriptor(t, `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="AngleSharp" Version="0.17.1" />
    <PackageReference Include="PlayniteSDK" Version="1.2.3" />
    <PackageReference Include="PlayniteSDK" Version="9.9.9" />
  </ItemGroup>
</Project>
`)

	version, err := ReadDependencyVersion(path, playniteMarker)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", version)
}

// TestReadDependencyVersion_Errors covers the missing file, missing marker and bad version cases.
func TestReadDependencyVersion_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadDependencyVersion(filepath.Join(t.TempDir(), "missing.csproj"), playniteMarker)
	require.ErrorIs(t, err, release.ErrPathNotFound)

	path := writeDescriptor(t, `<PackageReference Include="AngleSharp" Version="0.17.1" />`)
	_, err = ReadDependencyVersion(path, playniteMarker)
	require.ErrorIs(t, err, release.ErrManifestFieldMissing)

	path = writeDescriptor(t, `<PackageReference Include="PlayniteSDK" Version="$(SdkVersion)" />`)
	_, err = ReadDependencyVersion(path, playniteMarker)
	require.ErrorIs(t, err, release.ErrInvalidVersion)
}

// TestReadDependencyVersion_FixedWidth documents that only five characters are taken.
func TestReadDependencyVersion_FixedWidth(t *testing.T) {
	t.Parallel()

	path := writeDescriptor(t, `<PackageReference Include="PlayniteSDK" Version="6.11.0" />`)

	version, err := ReadDependencyVersion(path, playniteMarker)
	require.ErrorIs(t, err, release.ErrInvalidVersion)
	require.Empty(t, version)
}

// TestReadDependencyVersion_ShortWindow checks that a window cut short by the end of the line is validated as is.
func TestReadDependencyVersion_ShortWindow(t *testing.T) {
	t.Parallel()

	path := writeDescriptor(t, `<PackageReference Include="PlayniteSDK" Version="6.1`)

	_, err := ReadDependencyVersion(path, playniteMarker)
	require.ErrorIs(t, err, release.ErrInvalidVersion)
	require.NotErrorIs(t, err, release.ErrManifestFieldMissing)
	require.ErrorContains(t, err, `"6.1"`)
}
