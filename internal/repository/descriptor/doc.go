// Package descriptor reads the host SDK version out of a build-dependency
// descriptor (the common .csproj every plugin references).
package descriptor
