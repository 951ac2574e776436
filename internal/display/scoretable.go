package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/scormpack/internal/course"
)

// ScoreTable renders the per-folder scores shown before the archive
// confirmation step. Failed folders are listed with their error instead of a
// score so the user sees exactly what will be skipped.
func ScoreTable(out io.Writer, results []course.FolderResult) {
	nameWidth := len("Folder")
	for _, r := range results {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	fmt.Fprintf(out, "%-*s  %s\n", nameWidth, "Folder", "Score")
	fmt.Fprintf(out, "%s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", 5))

	for _, r := range results {
		if r.Succeeded() {
			fmt.Fprintf(out, "%-*s  %d\n", nameWidth, r.Name, r.Score)
		} else {
			fmt.Fprintf(out, "%-*s  skipped (%v)\n", nameWidth, r.Name, r.Err)
		}
	}
}
