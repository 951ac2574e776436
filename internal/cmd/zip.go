package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/archive"
	"github.com/harrison/scormpack/internal/course"
)

// NewZipCommand creates the zip command
func NewZipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zip <course-folder>",
		Short: "Archive a course folder without patching",
		Long: `Archive a course folder's full contents into the ZippedFiles directory
next to it, without validating or patching first.

Examples:
  scormpack zip ./exports/safety-course
  scormpack zip --zip-dir Packaged ./exports/safety-course`,
		Args: cobra.ExactArgs(1),
		RunE: zipCommand,
	}
}

func zipCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	folder := course.NewFolder(args[0])
	archivePath, err := archive.Zip(folder, cfg.ZipDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %s to %s\n", folder.Name(), archivePath)
	return nil
}
