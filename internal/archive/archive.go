// Package archive bundles a course folder into a zip archive under a
// sibling output directory. The archive is written to a temp file and
// renamed into place so a failed run never leaves a partial archive behind.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/scormpack/internal/course"
)

// DefaultOutputDir is the sibling directory archives are written to.
const DefaultOutputDir = "ZippedFiles"

// Zip archives the folder's full contents into
// <parent>/<outputDir>/<foldername>.zip and returns the archive path.
// An empty outputDir selects DefaultOutputDir.
//
// Fails when the folder does not exist or has no contents; in either case no
// archive file (partial or zero-byte) is produced.
func Zip(folder course.Folder, outputDir string) (string, error) {
	if !folder.Exists() {
		return "", fmt.Errorf("%w: %s", course.ErrMissingFile, folder.Path)
	}

	entries, err := os.ReadDir(folder.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", course.ErrUnreadableFile, folder.Path, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: %s", course.ErrEmptyFolder, folder.Path)
	}

	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	destDir := filepath.Join(filepath.Dir(filepath.Clean(folder.Path)), outputDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	destPath := filepath.Join(destDir, folder.Name()+".zip")

	tempFile, err := os.CreateTemp(destDir, ".tmp-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp archive: %w", err)
	}
	tempPath := tempFile.Name()

	if err := writeArchive(tempFile, folder.Path); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", err
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to close temp archive: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to move archive to %s: %w", destPath, err)
	}

	return destPath, nil
}

// writeArchive streams every file under root into a zip written to w.
// Entry names are root-relative with forward slashes, per the zip spec.
func writeArchive(w io.Writer, root string) error {
	zw := zip.NewWriter(w)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}
		if path == root || d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		name := strings.ReplaceAll(rel, string(filepath.Separator), "/")

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to build header for %s: %w", path, err)
		}
		header.Name = name
		header.Method = zip.Deflate

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", name, err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", course.ErrUnreadableFile, path, err)
		}
		defer f.Close()

		if _, err := io.Copy(entry, f); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		zw.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
