package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanSubfolders(t *testing.T) {
	// Create a temporary test directory structure:
	// tmpDir/
	//   CourseA/
	//   CourseB/
	//   ZippedFiles/
	//   .scormpack/
	//   stray.txt
	tmpDir := t.TempDir()

	for _, dir := range []string{"CourseA", "CourseB", "ZippedFiles", ".scormpack"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	result, err := ScanSubfolders(tmpDir, ScanOptions{
		ExcludeDirs: []string{"ZippedFiles"},
	})
	if err != nil {
		t.Fatalf("ScanSubfolders() error = %v", err)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected scan errors: %v", result.Errors)
	}

	if len(result.Folders) != 2 {
		t.Fatalf("len(Folders) = %d, want 2: %v", len(result.Folders), result.Folders)
	}
	// Sorted output, files and excluded/hidden dirs skipped.
	if filepath.Base(result.Folders[0]) != "CourseA" || filepath.Base(result.Folders[1]) != "CourseB" {
		t.Errorf("Folders = %v, want CourseA, CourseB", result.Folders)
	}
	for _, f := range result.Folders {
		if !filepath.IsAbs(f) {
			t.Errorf("folder path not absolute: %s", f)
		}
	}
}

func TestScanSubfoldersIncludeHidden(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".hidden"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	result, err := ScanSubfolders(tmpDir, ScanOptions{IncludeHidden: true})
	if err != nil {
		t.Fatalf("ScanSubfolders() error = %v", err)
	}
	if len(result.Folders) != 1 {
		t.Errorf("len(Folders) = %d, want 1 with IncludeHidden", len(result.Folders))
	}
}

func TestScanSubfoldersEmptyParent(t *testing.T) {
	result, err := ScanSubfolders(t.TempDir(), ScanOptions{})
	if err != nil {
		t.Fatalf("ScanSubfolders() error = %v", err)
	}
	if len(result.Folders) != 0 {
		t.Errorf("len(Folders) = %d, want 0", len(result.Folders))
	}
}

func TestScanSubfoldersMissingParent(t *testing.T) {
	if _, err := ScanSubfolders(filepath.Join(t.TempDir(), "missing"), ScanOptions{}); err == nil {
		t.Error("ScanSubfolders() = nil error for missing directory")
	}
}

func TestScanSubfoldersFileAsParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if _, err := ScanSubfolders(path, ScanOptions{}); err == nil {
		t.Error("ScanSubfolders() = nil error for file path")
	}
}
