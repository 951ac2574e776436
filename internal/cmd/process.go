package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/filelock"
)

// NewProcessCommand creates the process command
func NewProcessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "process <course-folder>",
		Short: "Patch, score, and archive a single course export",
		Long: `Run the full packaging pipeline on one course export folder.

The folder is validated for a completion trigger, the SCORM API hook is
injected into ` + course.LaunchFile + `, story.html is renamed to index.html,
the course is opened in the browser for preview, and after confirmation the
folder is archived into the ZippedFiles directory next to it.

Examples:
  scormpack process ./exports/safety-course
  scormpack process --yes --no-preview ./exports/safety-course
  scormpack process --zip-dir Packaged ./exports/safety-course`,
		Args: cobra.ExactArgs(1),
		RunE: processCommand,
	}
}

func processCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	folder := course.NewFolder(args[0])
	if !folder.Exists() {
		return fmt.Errorf("%w: %s", course.ErrMissingFile, folder.Path)
	}

	parent := filepath.Dir(filepath.Clean(folder.Path))
	lock, err := filelock.NewRunLock(parent)
	if err != nil {
		return err
	}
	acquired, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("another scormpack run is already processing %s", parent)
	}
	defer lock.Unlock()

	r, console, finish, err := newRunner(cmd, cfg)
	if err != nil {
		return err
	}

	summary := r.RunSingle(folder)
	finish(summary)
	recordHistory(cfg, console, "process", folder.Path, summary)

	result := summary.Results[0]
	if result.Err != nil {
		if errors.Is(result.Err, course.ErrUserDeclined) {
			return fmt.Errorf("archiving declined for %s", folder.Name())
		}
		return result.Err
	}
	return nil
}
