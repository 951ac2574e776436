package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/filelock"
)

// NewBulkCommand creates the bulk command
func NewBulkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <parent-folder>",
		Short: "Process every course export under a parent folder",
		Long: `Run the packaging pipeline over each immediate subfolder of a parent
directory.

Every subfolder containing an index_lms.html launch file is validated,
patched, and scored. Folders without a launch file are skipped with a
warning. After all folders are processed a score table is shown and a single
confirmation archives every successful folder. A failure in one folder never
affects the others.

A Markdown report of the run is written next to the archives.

Examples:
  scormpack bulk ./exports
  scormpack bulk --yes ./exports
  scormpack bulk --log-level debug ./exports`,
		Args: cobra.ExactArgs(1),
		RunE: bulkCommand,
	}
}

func bulkCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	root := args[0]
	lock, err := filelock.NewRunLock(root)
	if err != nil {
		return err
	}
	acquired, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("another scormpack run is already processing %s", root)
	}
	defer lock.Unlock()

	r, console, finish, err := newRunner(cmd, cfg)
	if err != nil {
		return err
	}

	summary, runErr := r.RunBulk(root)
	finish(summary)
	if summary.Total() > 0 {
		recordHistory(cfg, console, "bulk", root, summary)
	}
	if runErr != nil {
		return runErr
	}

	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d folders failed", failed, summary.Total())
	}
	return nil
}
