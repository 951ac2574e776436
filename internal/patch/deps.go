package patch

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/filelock"
)

//go:embed scormAPI.min.js
var apiFile []byte

// EnsureAPIFile writes the bundled scormAPI.min.js into the folder when it
// is missing. An existing copy is left untouched, so locally modified API
// files survive re-processing. Returns true when the file was written.
func EnsureAPIFile(folder course.Folder) (bool, error) {
	path := folder.APIPath()

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return false, nil
	}

	if err := filelock.AtomicWrite(path, apiFile); err != nil {
		return false, fmt.Errorf("failed to copy %s: %w", course.APIFile, err)
	}
	return true, nil
}

// NormalizeEntryFile renames the legacy story.html entry file to index.html
// so the LMS finds the expected entry point. Folders that already carry
// index.html, or carry neither file, are left untouched. Returns true when
// a rename happened.
func NormalizeEntryFile(folder course.Folder) (bool, error) {
	legacy := folder.LegacyEntryPath()
	entry := folder.EntryPath()

	if _, err := os.Stat(entry); err == nil {
		return false, nil
	}
	if _, err := os.Stat(legacy); err != nil {
		return false, nil
	}

	if err := os.Rename(legacy, entry); err != nil {
		return false, fmt.Errorf("failed to rename %s to %s: %w", course.LegacyEntry, course.EntryFile, err)
	}
	return true, nil
}
