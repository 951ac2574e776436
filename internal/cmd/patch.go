package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/logger"
	"github.com/harrison/scormpack/internal/patch"
)

// NewPatchCommand creates the patch command
func NewPatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patch <course-folder>",
		Short: "Inject the SCORM API hook without archiving",
		Long: `Patch a course export in place: copy ` + course.APIFile + ` into the
folder if missing, inject the SCORM initialization hook into the launch
file, and rename story.html to index.html.

Patching is idempotent; running it twice leaves the folder identical to
running it once.

Examples:
  scormpack patch ./exports/safety-course`,
		Args: cobra.ExactArgs(1),
		RunE: patchCommand,
	}
}

func patchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	folder := course.NewFolder(args[0])
	console := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	out := cmd.OutOrStdout()

	copied, err := patch.EnsureAPIFile(folder)
	if err != nil {
		return err
	}
	if copied {
		fmt.Fprintf(out, "Copied %s\n", course.APIFile)
	}

	outcome, err := patch.Apply(folder, console)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s\n", folder.Name(), outcome)

	renamed, err := patch.NormalizeEntryFile(folder)
	if err != nil {
		return err
	}
	if renamed {
		fmt.Fprintf(out, "Renamed %s to %s\n", course.LegacyEntry, course.EntryFile)
	}
	return nil
}
