package course

import "errors"

// Error taxonomy for the processing pipeline. Every failure is terminal for
// its scope: the current folder in bulk mode, the whole operation in single
// mode. Nothing is retried and no partial modification is rolled back.
var (
	// ErrMissingFile indicates a required course file does not exist.
	ErrMissingFile = errors.New("required file missing")

	// ErrUnreadableFile indicates a course file exists but could not be read.
	ErrUnreadableFile = errors.New("file unreadable")

	// ErrAnchorNotFound indicates the patch anchor line is absent from the
	// launch file and the patch marker is also missing.
	ErrAnchorNotFound = errors.New("patch anchor not found")

	// ErrEmptyFolder indicates a folder has no contents to archive.
	ErrEmptyFolder = errors.New("folder is empty")

	// ErrExternalTool indicates a required external executable (browser
	// opener) is not installed.
	ErrExternalTool = errors.New("external tool missing")

	// ErrUserDeclined indicates the user answered no at a confirmation
	// prompt.
	ErrUserDeclined = errors.New("user declined")

	// ErrNotCompliant indicates compliance validation failed for a folder.
	ErrNotCompliant = errors.New("folder is not compliant")
)
