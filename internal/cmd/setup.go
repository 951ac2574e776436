package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/scormpack/internal/config"
	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/history"
	"github.com/harrison/scormpack/internal/logger"
	"github.com/harrison/scormpack/internal/prompt"
	"github.com/harrison/scormpack/internal/runner"
)

// loadMergedConfig loads the configuration file and merges CLI flags over it.
// Flags take precedence over config values.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Build flag pointers for merge (only explicitly set values)
	var logLevelPtr, logDirPtr, zipDirPtr *string
	var yesPtr, previewPtr *bool

	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &v
	}
	if cmd.Flags().Changed("zip-dir") {
		v, _ := cmd.Flags().GetString("zip-dir")
		zipDirPtr = &v
	}
	if cmd.Flags().Changed("yes") {
		v, _ := cmd.Flags().GetBool("yes")
		yesPtr = &v
	}
	if cmd.Flags().Changed("no-preview") {
		v, _ := cmd.Flags().GetBool("no-preview")
		preview := !v
		previewPtr = &preview
	}

	cfg.MergeWithFlags(logLevelPtr, logDirPtr, zipDirPtr, yesPtr, previewPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newRunner wires a Runner with console and file logging and the terminal
// prompter. The returned cleanup writes the summary to the run log and
// closes it.
func newRunner(cmd *cobra.Command, cfg *config.Config) (*runner.Runner, *logger.ConsoleLogger, func(course.RunSummary), error) {
	console := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)

	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}

	prompter := prompt.New(cfg.AutoConfirm)

	r := runner.New(cfg, console, prompter)
	r.SetDetailLogger(fileLog)
	r.SetOutput(cmd.OutOrStdout())

	finish := func(summary course.RunSummary) {
		fileLog.LogSummary(summary)
		if err := fileLog.Close(); err != nil {
			console.LogWarn(fmt.Sprintf("Failed to close log file: %v", err))
		}
	}
	return r, console, finish, nil
}

// recordHistory stores a run in the history ledger and prunes old entries.
// Ledger failures are logged, never fatal.
func recordHistory(cfg *config.Config, console *logger.ConsoleLogger, command, root string, summary course.RunSummary) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		console.LogWarn(fmt.Sprintf("History ledger unavailable: %v", err))
		return
	}
	defer store.Close()

	ctx := context.Background()
	runID, err := store.RecordRun(ctx, command, root, summary)
	if err != nil {
		console.LogWarn(fmt.Sprintf("Failed to record run: %v", err))
		return
	}
	console.LogDebug(fmt.Sprintf("Run recorded as %s", history.ShortID(runID)))

	if err := store.Prune(ctx, cfg.History.KeepRuns); err != nil {
		console.LogWarn(fmt.Sprintf("Failed to prune history: %v", err))
	}
}
