package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Folders    []string // Related folders (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	// Start with yellow color, emoji, and title
	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	// Add message with 4-space indent if present
	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	// Add folders with proper singular/plural and indentation
	if len(w.Folders) > 0 {
		b.WriteString("    ")
		if len(w.Folders) == 1 {
			b.WriteString("Affected folder:\n")
		} else {
			b.WriteString("Affected folders:\n")
		}

		for i, folder := range w.Folders {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, folder))
			b.WriteString("\n")
		}
	}

	// Add suggestion with 4-space indent if present
	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	// End with reset code
	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnSkippedFolders creates a warning for subfolders that do not look like
// course exports and were skipped during bulk processing.
func WarnSkippedFolders(folders []string) Warning {
	return Warning{
		Title:      "Skipped folders without a launch file",
		Message:    "Bulk processing only handles folders containing index_lms.html",
		Folders:    folders,
		Suggestion: "Re-export these courses for LMS, or remove them from the parent folder.",
	}
}
