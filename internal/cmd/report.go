package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/report"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <parent-folder-or-report.md>",
		Short: "Render a bulk run report to HTML",
		Long: `Render the Markdown report written by a bulk run into report.html next
to it, so it can be viewed in a browser.

The argument may be the parent folder of a bulk run (the report is looked up
under its archive directory) or a direct path to a report.md file.

Examples:
  scormpack report ./exports
  scormpack report ./exports/ZippedFiles/report.md`,
		Args: cobra.ExactArgs(1),
		RunE: reportCommand,
	}
}

func reportCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	mdPath := args[0]
	if info, err := os.Stat(mdPath); err == nil && info.IsDir() {
		mdPath = filepath.Join(mdPath, cfg.ZipDir, report.MarkdownFile)
	}
	if _, err := os.Stat(mdPath); err != nil {
		return fmt.Errorf("no report found at %s (run bulk first)", mdPath)
	}

	htmlPath, err := report.NewWriter().RenderFile(mdPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report rendered to %s\n", htmlPath)
	return nil
}
