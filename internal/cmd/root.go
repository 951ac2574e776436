package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for scormpack
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scormpack",
		Short: "Patch, score, and package SCORM course exports",
		Long: `Scormpack prepares Articulate Storyline course exports for LMS upload.

It validates that an exported course folder is complete, injects the SCORM
API initialization hook into the launch file, sums the course's maximum
score, and packages the folder into a zip archive ready for upload.

The bulk command runs the same pipeline over every course folder under a
parent directory with a single confirmation step.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .scormpack/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-dir", "", "Directory for log files")
	cmd.PersistentFlags().String("zip-dir", "", "Name of the archive output directory (default: ZippedFiles)")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to all confirmations")
	cmd.PersistentFlags().Bool("no-preview", false, "Skip the browser preview before archiving")

	cmd.AddCommand(NewProcessCommand())
	cmd.AddCommand(NewBulkCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewScoreCommand())
	cmd.AddCommand(NewPatchCommand())
	cmd.AddCommand(NewZipCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewReportCommand())

	return cmd
}
