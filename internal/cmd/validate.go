package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/validate"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <course-folder>...",
		Short: "Check course exports for LMS compliance",
		Long: `Check one or more course export folders without modifying them.

Every compliance problem is reported independently: missing required files,
a missing completion trigger in the course data, and launch-file markers
that are only present after patching.

Examples:
  scormpack validate ./exports/safety-course
  scormpack validate ./exports/*/`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateCommand,
	}
}

func validateCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	notCompliant := 0

	for _, arg := range args {
		folder := course.NewFolder(arg)
		result := validate.CheckFolder(folder)

		if result.Compliant() {
			fmt.Fprintf(out, "✓ %s is compliant\n", folder.Name())
			continue
		}

		notCompliant++
		fmt.Fprintf(out, "%s has %d problem(s):\n", folder.Name(), len(result.Problems))
		for _, p := range result.Problems {
			fmt.Fprintf(out, "  - %s: %s\n", p.Check, p.Detail)
		}
	}

	if notCompliant > 0 {
		return fmt.Errorf("%w: %d of %d folders", course.ErrNotCompliant, notCompliant, len(args))
	}
	return nil
}
