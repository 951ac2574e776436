package course

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFolderName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/exports/MyCourse", "MyCourse"},
		{"/exports/MyCourse/", "MyCourse"},
		{"relative/Course 01", "Course 01"},
		{"Course", "Course"},
	}

	for _, tt := range tests {
		got := NewFolder(tt.path).Name()
		if got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFolderPaths(t *testing.T) {
	f := NewFolder("/exports/Course")

	if got := f.LaunchPath(); got != filepath.Join("/exports/Course", "index_lms.html") {
		t.Errorf("LaunchPath() = %q", got)
	}
	if got := f.DataPath(); got != filepath.Join("/exports/Course", "html5", "data", "js", "data.js") {
		t.Errorf("DataPath() = %q", got)
	}
	if got := f.APIPath(); got != filepath.Join("/exports/Course", "scormAPI.min.js") {
		t.Errorf("APIPath() = %q", got)
	}
}

func TestFolderHasEntryFile(t *testing.T) {
	tmpDir := t.TempDir()
	f := NewFolder(tmpDir)

	if f.HasEntryFile() {
		t.Error("HasEntryFile() = true for empty folder")
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "story.html"), []byte("<html>"), 0644); err != nil {
		t.Fatalf("failed to create story.html: %v", err)
	}
	if !f.HasEntryFile() {
		t.Error("HasEntryFile() = false with story.html present")
	}

	if err := os.Remove(filepath.Join(tmpDir, "story.html")); err != nil {
		t.Fatalf("failed to remove story.html: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte("<html>"), 0644); err != nil {
		t.Fatalf("failed to create index.html: %v", err)
	}
	if !f.HasEntryFile() {
		t.Error("HasEntryFile() = false with index.html present")
	}
}

func TestFolderExists(t *testing.T) {
	tmpDir := t.TempDir()

	if !NewFolder(tmpDir).Exists() {
		t.Error("Exists() = false for existing directory")
	}
	if NewFolder(filepath.Join(tmpDir, "missing")).Exists() {
		t.Error("Exists() = true for missing directory")
	}

	// A plain file is not a course folder.
	filePath := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if NewFolder(filePath).Exists() {
		t.Error("Exists() = true for regular file")
	}
}

func TestComplianceResult(t *testing.T) {
	var r ComplianceResult
	if !r.Compliant() {
		t.Error("empty result should be compliant")
	}

	r.AddProblem("structure", "scormAPI.min.js is missing")
	r.AddProblem("launch-file", "initialization hook call not found")

	if r.Compliant() {
		t.Error("result with problems should not be compliant")
	}
	if len(r.Problems) != 2 {
		t.Fatalf("len(Problems) = %d, want 2", len(r.Problems))
	}
	if r.Problems[0].Check != "structure" {
		t.Errorf("Problems[0].Check = %q, want %q", r.Problems[0].Check, "structure")
	}
}

func TestPatchOutcomeString(t *testing.T) {
	tests := []struct {
		outcome PatchOutcome
		want    string
	}{
		{PatchFailed, "failed"},
		{PatchAlreadyApplied, "already patched"},
		{PatchApplied, "patched"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("PatchOutcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
