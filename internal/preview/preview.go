// Package preview opens a patched course in the system browser so the user
// can inspect it before archiving.
package preview

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/harrison/scormpack/internal/course"
)

// execCommand is swapped out in tests.
var execCommand = exec.Command

// Open launches the platform browser opener on the course launch file, so
// the user sees exactly the page the LMS will serve. The opener is started
// detached; Open does not wait for the browser to exit.
func Open(folder course.Folder) error {
	launch := folder.LaunchPath()
	if _, err := os.Stat(launch); err != nil {
		return fmt.Errorf("%w: %s", course.ErrMissingFile, launch)
	}

	name, args := openerCommand(launch)
	cmd := execCommand(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", course.ErrExternalTool, name, err)
	}

	// Reap the opener in the background so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()

	return nil
}

func openerCommand(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
