package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/score"
)

// NewScoreCommand creates the score command
func NewScoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score <course-folder>...",
		Short: "Sum each course's maximum score",
		Long: `Sum every maxpoints value in each course's data file and print the
totals.

The folders are not modified.

Examples:
  scormpack score ./exports/safety-course
  scormpack score ./exports/*/`,
		Args: cobra.MinimumNArgs(1),
		RunE: scoreCommand,
	}
}

func scoreCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var errs []error

	for _, arg := range args {
		folder := course.NewFolder(arg)

		total, err := score.Total(folder)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", folder.Name(), err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "%s: %d points\n", folder.Name(), total)
	}

	return errors.Join(errs...)
}
