package course

import "time"

// FolderResult records the outcome of processing one course folder.
type FolderResult struct {
	// Folder is the processed folder's path.
	Folder string
	// Name is the folder's base name.
	Name string
	// Score is the summed maxpoints total, valid when Err is nil.
	Score int
	// Outcome is the patch result for the folder's launch file.
	Outcome PatchOutcome
	// ArchivePath is the produced archive, empty when archiving did not run.
	ArchivePath string
	// Err is the failure that aborted this folder's processing, nil on
	// success.
	Err error
}

// Succeeded reports whether the folder was processed without error.
func (r FolderResult) Succeeded() bool {
	return r.Err == nil
}

// RunSummary aggregates the results of a processing run.
type RunSummary struct {
	Results  []FolderResult
	Duration time.Duration
}

// Total returns the number of processed folders.
func (s RunSummary) Total() int {
	return len(s.Results)
}

// Completed returns the number of folders processed without error.
func (s RunSummary) Completed() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of folders whose processing aborted.
func (s RunSummary) Failed() int {
	return s.Total() - s.Completed()
}

// FailedResults returns the results that carry an error, in run order.
func (s RunSummary) FailedResults() []FolderResult {
	var failed []FolderResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	return failed
}
