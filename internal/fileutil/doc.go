// Package fileutil provides centralized file system scanning utilities.
//
// This package serves as a single source of truth for course-folder
// discovery in scormpack: bulk processing enumerates the immediate
// subdirectories of a parent folder through ScanSubfolders rather than
// implementing custom os.ReadDir logic per command.
//
// # Main Components
//
// ScanOptions - Configuration struct for folder enumeration:
//   - ExcludeDirs: Directory names to skip (e.g., the archive output dir)
//   - IncludeHidden: Include dot-directories, which are skipped by default
//
// ScanResult - Results of a scan:
//   - Folders: Absolute paths of all immediate subdirectories (sorted)
//   - Errors: Non-fatal errors encountered during the scan
//
// # Usage Example
//
// Enumerating course folders while skipping the archive output directory:
//
//	result, err := fileutil.ScanSubfolders("/path/to/exports", fileutil.ScanOptions{
//	    ExcludeDirs: []string{"ZippedFiles"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, folder := range result.Folders {
//	    fmt.Println(folder)
//	}
//
// # Design Principles
//
// Sorted output ensures deterministic processing order across runs and
// platforms. Non-fatal errors (e.g., an unresolvable path) are collected
// and scanning continues; only a missing or unreadable parent directory
// causes immediate failure. The package uses only Go's standard library.
package fileutil
