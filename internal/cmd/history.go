package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past packaging runs",
		Long: `List past process and bulk runs recorded in the history ledger, or show
the per-folder details of a single run.

Run IDs may be abbreviated to a unique prefix.

Examples:
  scormpack history
  scormpack history --limit 5
  scormpack history a1b2c3d4
  scormpack history --folder safety-course`,
		Args: cobra.MaximumNArgs(1),
		RunE: historyCommand,
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to list")
	cmd.Flags().String("folder", "", "Show all recorded results for a course folder")

	return cmd
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history ledger is disabled in configuration")
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open history ledger: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if folderName, _ := cmd.Flags().GetString("folder"); folderName != "" {
		records, err := store.FolderHistory(ctx, folderName)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(out, "No recorded runs for %s\n", folderName)
			return nil
		}
		for _, rec := range records {
			printFolderRecord(out, rec)
		}
		return nil
	}

	if len(args) == 1 {
		run, err := store.GetRun(ctx, args[0])
		if err != nil {
			return fmt.Errorf("run %s not found: %w", args[0], err)
		}
		fmt.Fprintf(out, "Run %s (%s)\n", history.ShortID(run.ID), run.Command)
		fmt.Fprintf(out, "  Root: %s\n", run.RootPath)
		fmt.Fprintf(out, "  Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "  Folders: %d total, %d completed, %d failed\n\n",
			run.Total, run.Completed, run.Failed)
		for _, rec := range run.Results {
			printFolderRecord(out, rec)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %-7s  %s  %d/%d completed  %s\n",
			history.ShortID(run.ID),
			run.Command,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Completed,
			run.Total,
			run.RootPath)
	}
	return nil
}

func printFolderRecord(out io.Writer, rec history.FolderRecord) {
	if rec.ErrorMessage != "" {
		fmt.Fprintf(out, "  %s: %s (%s)\n", rec.FolderName, rec.Outcome, rec.ErrorMessage)
		return
	}
	fmt.Fprintf(out, "  %s: %s, %d points", rec.FolderName, rec.Outcome, rec.Score)
	if rec.ArchivePath != "" {
		fmt.Fprintf(out, ", archived to %s", rec.ArchivePath)
	}
	fmt.Fprintln(out)
}
