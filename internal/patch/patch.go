// Package patch performs line-oriented text surgery on a course's LMS launch
// file: it injects the SCORM initialization hook after a known anchor line
// and adds the API script reference before the closing body tag. Both
// insertions are idempotent; running the patcher twice produces no change on
// the second run.
package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/filelock"
)

// AnchorLine is the assignment statement the Storyline template emits in
// index_lms.html. The initialization block is inserted immediately after the
// first line containing it. Matched as a substring after trimming, so
// indentation variations are tolerated.
const AnchorLine = `var g_bLMSPresent = false;`

// ScriptReference is the one-line script tag inserted before the last
// closing body tag when the launch file does not already reference the API
// file.
const ScriptReference = `<script src="scormAPI.min.js"></script>`

// closingTag is the literal the script reference is anchored against.
const closingTag = `</body>`

// initBlock is the initialization hook injected after the anchor line. Its
// initializeScormAPI() call doubles as the idempotence marker: when the call
// is already present anywhere in the file, the block is not inserted again.
const initBlock = `var g_bScormAPILoaded = false;

function initializeScormAPI() {
	g_bLMSPresent = true;
	g_bScormAPILoaded = ScormProcessInitialize();
}

window.addEventListener("load", function () {
	initializeScormAPI();
});`

// legacyArtifact is a two-line bootstrap left behind by older exports
// directly after the anchor line. It is removed when present so the injected
// block does not run the legacy driver a second time.
var legacyArtifact = [2]string{
	`g_bLMSPresent = true;`,
	`loadScormDriver();`,
}

// Logger receives diagnostics from the patcher. The missing-closing-tag case
// is logged rather than aborting the patch.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Apply patches the folder's launch file. It returns the patch outcome and
// an error for the failure cases: missing or unreadable launch file, or
// anchor not found while the init-hook marker is also absent (the file is
// left byte-identical in that case).
func Apply(folder course.Folder, log Logger) (course.PatchOutcome, error) {
	path := folder.LaunchPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return course.PatchFailed, fmt.Errorf("%w: %s", course.ErrMissingFile, path)
		}
		return course.PatchFailed, fmt.Errorf("%w: %s: %v", course.ErrUnreadableFile, path, err)
	}

	content := string(data)
	lines := strings.Split(content, "\n")
	modified := false

	// Rule 1: insert the init block after the anchor, unless the marker is
	// already present.
	if !strings.Contains(content, course.InitHookMarker) {
		anchorIdx := findAnchor(lines)
		if anchorIdx < 0 {
			return course.PatchFailed, fmt.Errorf("%w: %q not in %s", course.ErrAnchorNotFound, AnchorLine, path)
		}
		lines = insertInitBlock(lines, anchorIdx)
		modified = true
		log.LogDebug(fmt.Sprintf("inserted initialization block after line %d of %s", anchorIdx+1, path))
	} else {
		log.LogDebug(fmt.Sprintf("%s already calls %s, skipping block insertion", path, course.InitHookMarker))
	}

	// Rule 2: insert the script reference before the last closing body tag,
	// unless the filename is already referenced. A missing closing tag is
	// logged and does not abort the patch.
	if !strings.Contains(strings.Join(lines, "\n"), course.APIFile) {
		closingIdx := findLastClosingTag(lines)
		if closingIdx < 0 {
			log.LogWarn(fmt.Sprintf("no %s tag in %s, script reference not inserted", closingTag, path))
		} else {
			lines = insertLine(lines, closingIdx, ScriptReference)
			modified = true
			log.LogDebug(fmt.Sprintf("inserted script reference before line %d of %s", closingIdx+1, path))
		}
	}

	if !modified {
		return course.PatchAlreadyApplied, nil
	}

	if err := filelock.AtomicWrite(path, []byte(strings.Join(lines, "\n"))); err != nil {
		return course.PatchFailed, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	return course.PatchApplied, nil
}

// findAnchor returns the index of the first line containing the anchor
// statement, or -1. The comparison trims surrounding whitespace so the
// anchor is found at any indentation.
func findAnchor(lines []string) int {
	for i, line := range lines {
		if strings.Contains(strings.TrimSpace(line), AnchorLine) {
			return i
		}
	}
	return -1
}

// findLastClosingTag returns the index of the last line containing the
// closing body tag, or -1.
func findLastClosingTag(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], closingTag) {
			return i
		}
	}
	return -1
}

// insertInitBlock splices the init block immediately after the anchor line,
// dropping the legacy two-line bootstrap artifact when the file is long
// enough and both following lines match it exactly.
//
// Precondition: 0 <= anchorIdx < len(lines).
// Postcondition: lines[anchorIdx+1..] start with the init block.
func insertInitBlock(lines []string, anchorIdx int) []string {
	tail := lines[anchorIdx+1:]
	if len(tail) >= len(legacyArtifact) &&
		strings.TrimSpace(tail[0]) == legacyArtifact[0] &&
		strings.TrimSpace(tail[1]) == legacyArtifact[1] {
		tail = tail[len(legacyArtifact):]
	}

	block := strings.Split(initBlock, "\n")
	result := make([]string, 0, anchorIdx+1+len(block)+len(tail))
	result = append(result, lines[:anchorIdx+1]...)
	result = append(result, block...)
	result = append(result, tail...)
	return result
}

// insertLine splices a single line immediately before index idx.
//
// Precondition: 0 <= idx < len(lines).
func insertLine(lines []string, idx int, line string) []string {
	result := make([]string, 0, len(lines)+1)
	result = append(result, lines[:idx]...)
	result = append(result, line)
	result = append(result, lines[idx:]...)
	return result
}
