package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures course-folder enumeration
type ScanOptions struct {
	// ExcludeDirs is a list of directory names to exclude (e.g., the
	// archive output directory)
	ExcludeDirs []string
	// IncludeHidden includes dot-directories, which are skipped by default
	IncludeHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Folders contains the absolute paths of all immediate subdirectories
	Folders []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanSubfolders enumerates the immediate subdirectories of dir, sorted by
// name. Bulk processing treats each one as a candidate course folder; files
// directly under dir are ignored.
func ScanSubfolders(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	result := &ScanResult{
		Folders: make([]string, 0),
		Errors:  make([]error, 0),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if excludeMap[name] {
			continue
		}
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		absPath, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", name, err))
			continue
		}
		result.Folders = append(result.Folders, absPath)
	}

	// Sort folders for consistent output
	sort.Strings(result.Folders)

	return result, nil
}
