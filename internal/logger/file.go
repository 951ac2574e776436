package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/scormpack/internal/course"
)

// FileLogger logs processing events to files in a log directory. It creates
// timestamped per-run log files, per-folder detail logs, and maintains a
// latest.log symlink pointing to the most recent run. It is thread-safe and
// supports log level filtering.
type FileLogger struct {
	logDir     string
	runLog     *os.File
	runFile    string
	foldersDir string
	logLevel   string
	mu         sync.Mutex
}

// NewFileLogger creates a FileLogger writing to .scormpack/logs/ in the
// current working directory. Uses default log level "info".
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(filepath.Join(".scormpack", "logs"), "info")
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log
// directory and log level. Useful for testing or custom deployments.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	foldersDir := filepath.Join(logDir, "folders")
	if err := os.MkdirAll(foldersDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folders directory: %w", err)
	}

	// Timestamped filename: run-YYYYMMDD-HHMMSS.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Point latest.log at the current run.
	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:     logDir,
		runLog:     file,
		runFile:    runFile,
		foldersDir: foldersDir,
		logLevel:   normalizeLogLevel(logLevel),
		mu:         sync.Mutex{},
	}

	logger.writeRunLog("=== scormpack Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogFolderStart logs the start of a folder's processing at INFO level.
func (fl *FileLogger) LogFolderStart(folder course.Folder) {
	if !fl.shouldLog("info") {
		return
	}

	message := fmt.Sprintf(
		"[%s] Processing %s (%s)\n",
		time.Now().Format("15:04:05"),
		folder.Name(),
		folder.Path,
	)
	fl.writeRunLog(message)
}

// LogFolderResult logs a folder's processing outcome to the run log and
// writes a per-folder detail file under folders/.
func (fl *FileLogger) LogFolderResult(result course.FolderResult) error {
	if fl.shouldLog("info") {
		status := "ok"
		if !result.Succeeded() {
			status = fmt.Sprintf("failed: %v", result.Err)
		}
		fl.writeRunLog(fmt.Sprintf(
			"[%s] %s: %s\n",
			time.Now().Format("15:04:05"),
			result.Name,
			status,
		))
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	detailPath := filepath.Join(fl.foldersDir, fmt.Sprintf("%s.log", result.Name))
	file, err := os.OpenFile(detailPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create folder log file: %w", err)
	}
	defer file.Close()

	content := fmt.Sprintf("=== Folder %s ===\n", result.Name)
	content += fmt.Sprintf("Path: %s\n", result.Folder)
	content += fmt.Sprintf("Patch: %s\n", result.Outcome)
	content += fmt.Sprintf("Score: %d\n", result.Score)
	if result.ArchivePath != "" {
		content += fmt.Sprintf("Archive: %s\n", result.ArchivePath)
	}
	if result.Err != nil {
		content += fmt.Sprintf("Error: %v\n", result.Err)
	}
	content += fmt.Sprintf("Completed at: %s\n", time.Now().Format(time.RFC3339))

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write folder log: %w", err)
	}
	return nil
}

// LogSummary logs the run summary with final statistics at INFO level.
func (fl *FileLogger) LogSummary(summary course.RunSummary) {
	if !fl.shouldLog("info") {
		return
	}

	timestamp := time.Now().Format("15:04:05")

	status := "SUCCESS"
	if summary.Failed() > 0 {
		if summary.Completed() == 0 {
			status = "FAILED"
		} else {
			status = "PARTIAL"
		}
	}

	message := fmt.Sprintf(
		"\n[%s] === RUN SUMMARY ===\n"+
			"[%s] Total folders: %d\n"+
			"[%s] Completed:     %d\n"+
			"[%s] Failed:        %d\n"+
			"[%s] Total time:    %.1fs\n"+
			"[%s] Status:        %s (%d/%d folders passed)\n"+
			"[%s] Completed at:  %s\n",
		timestamp,
		timestamp,
		summary.Total(),
		timestamp,
		summary.Completed(),
		timestamp,
		summary.Failed(),
		timestamp,
		summary.Duration.Seconds(),
		timestamp,
		status,
		summary.Completed(),
		summary.Total(),
		timestamp,
		time.Now().Format(time.RFC3339),
	)

	fl.writeRunLog(message)
}

// RunFile returns the path of the current run log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// Close syncs and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time logging
		fl.runLog.Sync()
	}
}
