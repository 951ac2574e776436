// Package course defines the data model for SCORM course export folders:
// folder layout expectations, compliance results, patch outcomes, and the
// error taxonomy shared by the processing pipeline.
package course

import (
	"os"
	"path/filepath"
)

// Well-known files inside a course export folder.
const (
	LaunchFile   = "index_lms.html"
	APIFile      = "scormAPI.min.js"
	EntryFile    = "index.html"
	LegacyEntry  = "story.html"
	DataFileName = "data.js"
)

// DataFile is the folder-relative path of the course data file that carries
// scoring and completion-trigger records.
var DataFile = filepath.Join("html5", "data", "js", DataFileName)

// InitHookMarker is the initialization-hook call the patcher injects into
// the launch file and the validator requires of a compliant one.
const InitHookMarker = "initializeScormAPI();"

// Folder represents a single course export folder on disk.
// It carries no state beyond its path; every operation re-reads the
// filesystem.
type Folder struct {
	// Path is the absolute or working-directory-relative folder path.
	Path string
}

// NewFolder creates a Folder for the given path.
func NewFolder(path string) Folder {
	return Folder{Path: path}
}

// Name returns the folder's base name, used to name the produced archive.
func (f Folder) Name() string {
	return filepath.Base(filepath.Clean(f.Path))
}

// LaunchPath returns the path of the LMS launch file (index_lms.html).
func (f Folder) LaunchPath() string {
	return filepath.Join(f.Path, LaunchFile)
}

// APIPath returns the path of the SCORM API dependency file.
func (f Folder) APIPath() string {
	return filepath.Join(f.Path, APIFile)
}

// DataPath returns the path of the course data file (html5/data/js/data.js).
func (f Folder) DataPath() string {
	return filepath.Join(f.Path, DataFile)
}

// EntryPath returns the path of the normalized entry file (index.html).
func (f Folder) EntryPath() string {
	return filepath.Join(f.Path, EntryFile)
}

// LegacyEntryPath returns the path of the legacy entry file (story.html).
func (f Folder) LegacyEntryPath() string {
	return filepath.Join(f.Path, LegacyEntry)
}

// HasEntryFile reports whether the folder contains either entry file
// variant (story.html or index.html).
func (f Folder) HasEntryFile() bool {
	return fileExists(f.EntryPath()) || fileExists(f.LegacyEntryPath())
}

// Exists reports whether the folder exists and is a directory.
func (f Folder) Exists() bool {
	info, err := os.Stat(f.Path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Problem describes a single failed compliance check in human-readable form.
type Problem struct {
	// Check names the failed check (e.g. "completion-trigger").
	Check string
	// Detail explains what was expected and what was found.
	Detail string
}

// ComplianceResult is the outcome of validating one folder. It is produced
// and consumed within a single validation call and never persisted.
type ComplianceResult struct {
	Folder   string
	Problems []Problem
}

// Compliant reports whether every check passed.
func (r ComplianceResult) Compliant() bool {
	return len(r.Problems) == 0
}

// AddProblem appends a failed check to the result.
func (r *ComplianceResult) AddProblem(check, detail string) {
	r.Problems = append(r.Problems, Problem{Check: check, Detail: detail})
}

// PatchOutcome is the tri-state result of patching a launch file.
type PatchOutcome int

const (
	// PatchFailed means the anchor line was not found and the target marker
	// was also missing; the file was left untouched.
	PatchFailed PatchOutcome = iota
	// PatchAlreadyApplied means the target marker was already present and
	// no insertion was performed.
	PatchAlreadyApplied
	// PatchApplied means at least one insertion occurred and the file was
	// rewritten.
	PatchApplied
)

// String returns a human-readable label for logging.
func (o PatchOutcome) String() string {
	switch o {
	case PatchAlreadyApplied:
		return "already patched"
	case PatchApplied:
		return "patched"
	default:
		return "failed"
	}
}
