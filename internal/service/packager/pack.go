package packager

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
	"github.com/playnite-extensions/pext-release/internal/logger"
)

// ArchiveExtension is the file extension of Playnite extension packages.
const ArchiveExtension = ".pext"

// ArchivePath returns <outputDir>/<plugin>.pext.
func ArchivePath(plugin release.Plugin, outputDir string) string {
	return filepath.Join(outputDir, plugin.Name+ArchiveExtension)
}

// Pack writes every regular file below the build output into
// <outputDir>/<plugin>.pext under its base name, in walk order.
func Pack(ctx context.Context, plugin release.Plugin, outputDir string, opts ...Option) (err error) {
	o := newOptions(opts)
	archivePath := ArchivePath(plugin, outputDir)

	if o.dryRun {
		logger.InfoKV(ctx, "Dry run: would pack build output", "from", plugin.BuildOutputDir, "to", archivePath)
		return nil
	}

	logger.InfoKV(ctx, "Packing build output", "from", plugin.BuildOutputDir, "to", archivePath)

	archive, err := os.Create(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	defer func() {
		if closeErr := archive.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive: %w", closeErr)
		}
	}()

	writer := zip.NewWriter(archive)
	writer.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	count := 0

	walkErr := filepath.WalkDir(plugin.BuildOutputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		count++

		return addFile(writer, path, entry.Name())
	})
	if walkErr != nil {
		_ = writer.Close()
		return fmt.Errorf("pack build output: %w", walkErr)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}

	logger.DebugKV(ctx, "Archive written", "path", archivePath, "files", count)

	return nil
}

// addFile stores the file at path as name.
func addFile(writer *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("zip header %s: %w", path, err)
	}

	header.Name = name
	header.Method = zip.Deflate

	dst, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}

	src, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}

	defer func() {
		_ = src.Close()
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("compress %s: %w", path, err)
	}

	return nil
}
