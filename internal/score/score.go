// Package score computes a course's total possible score by summing the
// maxpoints fields recorded in the course data file.
package score

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/harrison/scormpack/internal/course"
)

// maxPoints matches a single maxpoints field. Every non-overlapping match in
// the file contributes to the sum; duplicate or conditional fields are
// double-counted by design (documented limitation of the export format).
var maxPoints = regexp.MustCompile(`"maxpoints"\s*:\s*(\d+)`)

// Total reads the folder's data file and returns the sum of every maxpoints
// field. The sum is recomputed on every call, never cached. Returns an error
// when the data file is missing or unreadable.
func Total(folder course.Folder) (int, error) {
	data, err := os.ReadFile(folder.DataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", course.ErrMissingFile, folder.DataPath())
		}
		return 0, fmt.Errorf("%w: %s: %v", course.ErrUnreadableFile, folder.DataPath(), err)
	}

	return sumMatches(data), nil
}

func sumMatches(data []byte) int {
	total := 0
	for _, match := range maxPoints.FindAllSubmatch(data, -1) {
		points, err := strconv.Atoi(string(match[1]))
		if err != nil {
			// \d+ guarantees digits; only overflow can land here.
			continue
		}
		total += points
	}
	return total
}
