// Package validate implements SCORM compliance validation for course export
// folders: completion-trigger detection in the course data file and
// structural checks on the folder layout and launch file.
package validate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/harrison/scormpack/internal/course"
)

// completionTrigger matches an action-type record inside a scorings array.
// This is a containment test against the raw data file, not a JSON parse:
// the Storyline export format is stable enough that "found anywhere in file"
// is the documented contract.
var completionTrigger = regexp.MustCompile(`(?s)"scorings"\s*:\s*\[[^\]]*?"type"\s*:\s*"action"`)

// HasCompletionTrigger reports whether the folder's data file contains a
// completion-trigger record. Returns false with an error when the data file
// is missing or unreadable.
func HasCompletionTrigger(folder course.Folder) (bool, error) {
	data, err := os.ReadFile(folder.DataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", course.ErrMissingFile, folder.DataPath())
		}
		return false, fmt.Errorf("%w: %s: %v", course.ErrUnreadableFile, folder.DataPath(), err)
	}

	return completionTrigger.Match(data), nil
}

// CheckFolder validates a course folder's structure and launch-file markers.
// Every failed check is reported independently; the folder is compliant iff
// all checks pass. Remediation beyond re-running the patcher is out of scope.
func CheckFolder(folder course.Folder) course.ComplianceResult {
	result := course.ComplianceResult{Folder: folder.Path}

	if !folder.Exists() {
		result.AddProblem("folder", fmt.Sprintf("%s does not exist or is not a directory", folder.Path))
		return result
	}

	// Required files.
	if !fileExists(folder.LaunchPath()) {
		result.AddProblem("structure", fmt.Sprintf("%s is missing", course.LaunchFile))
	}
	if !fileExists(folder.APIPath()) {
		result.AddProblem("structure", fmt.Sprintf("%s is missing", course.APIFile))
	}
	if !folder.HasEntryFile() {
		result.AddProblem("structure", fmt.Sprintf("neither %s nor %s is present", course.LegacyEntry, course.EntryFile))
	}

	// Completion trigger in the data file.
	hasTrigger, err := HasCompletionTrigger(folder)
	switch {
	case err != nil:
		result.AddProblem("completion-trigger", err.Error())
	case !hasTrigger:
		result.AddProblem("completion-trigger", fmt.Sprintf("no action-type scoring record found in %s", course.DataFile))
	}

	// Two independent marker checks inside the launch file. Skipped when the
	// launch file itself is absent; that is already reported above.
	if content, err := os.ReadFile(folder.LaunchPath()); err == nil {
		text := string(content)
		if !strings.Contains(text, course.InitHookMarker) {
			result.AddProblem("launch-file", fmt.Sprintf("%s does not call %s", course.LaunchFile, course.InitHookMarker))
		}
		if !strings.Contains(text, course.APIFile) {
			result.AddProblem("launch-file", fmt.Sprintf("%s does not reference %s", course.LaunchFile, course.APIFile))
		}
	}

	return result
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
