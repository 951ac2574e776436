// Package runner orchestrates the course packaging pipeline.
//
// The single-folder flow validates, patches, normalizes, previews, scores,
// and archives one course export. The bulk flow runs the same per-folder
// steps over every subfolder of a parent directory, then asks for one
// aggregate confirmation before archiving the successes. A failure in one
// folder never affects the others; partial modifications are not rolled
// back.
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/scormpack/internal/archive"
	"github.com/harrison/scormpack/internal/config"
	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/display"
	"github.com/harrison/scormpack/internal/fileutil"
	"github.com/harrison/scormpack/internal/patch"
	"github.com/harrison/scormpack/internal/preview"
	"github.com/harrison/scormpack/internal/report"
	"github.com/harrison/scormpack/internal/score"
	"github.com/harrison/scormpack/internal/validate"
)

// Logger is the logging surface the pipeline needs. ConsoleLogger and
// NoOpLogger both satisfy it.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogFolderStart(folder course.Folder)
	LogFolderResult(result course.FolderResult)
	LogSummary(summary course.RunSummary)
	LogProgress(completed, total int)
}

// Confirmer asks the user yes/no questions. prompt.Prompter satisfies it.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// DetailLogger receives per-folder results for the file log. It is optional.
type DetailLogger interface {
	LogFolderResult(result course.FolderResult) error
}

// Runner drives the packaging pipeline.
type Runner struct {
	cfg         *config.Config
	log         Logger
	detail      DetailLogger
	confirm     Confirmer
	out         io.Writer
	openPreview func(course.Folder) error
}

// New creates a Runner. Output defaults to stdout and the preview step to
// the system browser opener.
func New(cfg *config.Config, log Logger, confirm Confirmer) *Runner {
	return &Runner{
		cfg:         cfg,
		log:         log,
		confirm:     confirm,
		out:         os.Stdout,
		openPreview: preview.Open,
	}
}

// SetDetailLogger attaches a per-folder file logger.
func (r *Runner) SetDetailLogger(d DetailLogger) {
	r.detail = d
}

// SetOutput redirects the score table and warnings, for tests.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// SetPreviewFunc replaces the browser opener, for tests.
func (r *Runner) SetPreviewFunc(fn func(course.Folder) error) {
	r.openPreview = fn
}

// prepareFolder runs the non-interactive per-folder steps: completion
// trigger gate, API dependency copy, launch file patch, entry file
// normalization, and scoring. Archiving is left to the caller so bulk runs
// can batch the confirmation.
func (r *Runner) prepareFolder(folder course.Folder) course.FolderResult {
	result := course.FolderResult{Folder: folder.Path, Name: folder.Name()}
	r.log.LogFolderStart(folder)

	hasTrigger, err := validate.HasCompletionTrigger(folder)
	if err != nil {
		result.Err = err
		return result
	}
	if !hasTrigger {
		result.Err = fmt.Errorf("%w: %s has no completion trigger in %s",
			course.ErrNotCompliant, folder.Name(), course.DataFileName)
		return result
	}

	copied, err := patch.EnsureAPIFile(folder)
	if err != nil {
		result.Err = err
		return result
	}
	if copied {
		r.log.LogDebug(fmt.Sprintf("Copied %s into %s", course.APIFile, folder.Name()))
	}

	outcome, err := patch.Apply(folder, r.log)
	result.Outcome = outcome
	if err != nil {
		result.Err = err
		return result
	}

	renamed, err := patch.NormalizeEntryFile(folder)
	if err != nil {
		result.Err = err
		return result
	}
	if renamed {
		r.log.LogDebug(fmt.Sprintf("Renamed %s to %s in %s",
			course.LegacyEntry, course.EntryFile, folder.Name()))
	}

	total, err := score.Total(folder)
	if err != nil {
		result.Err = err
		return result
	}
	result.Score = total

	return result
}

// logResult sends a finished result to the console and, when attached, the
// per-folder file log.
func (r *Runner) logResult(result course.FolderResult) {
	r.log.LogFolderResult(result)
	if r.detail != nil {
		if err := r.detail.LogFolderResult(result); err != nil {
			r.log.LogWarn(fmt.Sprintf("Failed to write folder log: %v", err))
		}
	}
}

// RunSingle processes one course folder end to end. A declined confirmation
// records the user-declined error on the folder's result; it is not an
// infrastructure failure, so RunSingle still returns the summary.
func (r *Runner) RunSingle(folder course.Folder) course.RunSummary {
	start := time.Now()

	result := r.prepareFolder(folder)
	if result.Err == nil {
		r.previewAndArchive(folder, &result)
	}
	r.logResult(result)

	summary := course.RunSummary{
		Results:  []course.FolderResult{result},
		Duration: time.Since(start),
	}
	r.log.LogSummary(summary)
	return summary
}

func (r *Runner) previewAndArchive(folder course.Folder, result *course.FolderResult) {
	if r.cfg.Preview {
		if err := r.openPreview(folder); err != nil {
			// Preview is a confirmation aid, not a pipeline step.
			r.log.LogWarn(fmt.Sprintf("Could not open preview: %v", err))
		}
	}

	question := fmt.Sprintf("%s scored %d points. Create archive?", folder.Name(), result.Score)
	ok, err := r.confirm.Confirm(question)
	if err != nil {
		result.Err = err
		return
	}
	if !ok {
		result.Err = course.ErrUserDeclined
		return
	}

	archivePath, err := archive.Zip(folder, r.cfg.ZipDir)
	if err != nil {
		result.Err = err
		return
	}
	result.ArchivePath = archivePath
}

// RunBulk processes every immediate subfolder of root. Folders without a
// launch file are skipped with a warning. After all folders are prepared it
// shows the score table, asks one aggregate confirmation, archives the
// successes, and writes a Markdown report next to the archives.
//
// The returned error covers scan failures and a declined confirmation;
// per-folder failures live in the summary.
func (r *Runner) RunBulk(root string) (course.RunSummary, error) {
	start := time.Now()

	scan, err := fileutil.ScanSubfolders(root, fileutil.ScanOptions{
		ExcludeDirs: []string{r.cfg.ZipDir},
	})
	if err != nil {
		return course.RunSummary{}, fmt.Errorf("scan %s: %w", root, err)
	}
	for _, scanErr := range scan.Errors {
		r.log.LogWarn(fmt.Sprintf("Scan: %v", scanErr))
	}

	folders, skipped := splitCandidates(scan.Folders)
	if len(skipped) > 0 {
		display.WarnSkippedFolders(skipped).Display(r.out)
	}
	if len(folders) == 0 {
		return course.RunSummary{Duration: time.Since(start)},
			fmt.Errorf("no course folders found under %s", root)
	}

	prog := display.NewProgressIndicator(r.out, len(folders))
	prog.Start()
	for _, folder := range folders {
		prog.Step(folder.Path)
	}
	prog.Complete()

	r.log.LogInfo(fmt.Sprintf("Processing %d course folders under %s", len(folders), root))

	var results []course.FolderResult
	for i, folder := range folders {
		result := r.prepareFolder(folder)
		r.logResult(result)
		results = append(results, result)
		r.log.LogProgress(i+1, len(folders))
	}

	summary := course.RunSummary{Results: results, Duration: time.Since(start)}

	if summary.Completed() > 0 {
		display.ScoreTable(r.out, results)
		ok, err := r.confirm.Confirm(fmt.Sprintf("Archive %d folders?", summary.Completed()))
		if err != nil {
			return summary, err
		}
		if !ok {
			return summary, course.ErrUserDeclined
		}

		for i := range summary.Results {
			res := &summary.Results[i]
			if !res.Succeeded() {
				continue
			}
			archivePath, err := archive.Zip(course.Folder{Path: res.Folder}, r.cfg.ZipDir)
			if err != nil {
				res.Err = err
				r.log.LogError(fmt.Sprintf("Archive failed for %s: %v", res.Name, err))
				continue
			}
			res.ArchivePath = archivePath
		}
	}

	summary.Duration = time.Since(start)
	r.writeReport(root, summary)
	r.log.LogSummary(summary)
	return summary, nil
}

func (r *Runner) writeReport(root string, summary course.RunSummary) {
	dir := filepath.Join(root, r.cfg.ZipDir)
	mdPath, err := report.NewWriter().WriteMarkdown(dir, root, summary)
	if err != nil {
		r.log.LogWarn(fmt.Sprintf("Could not write report: %v", err))
		return
	}
	r.log.LogInfo(fmt.Sprintf("Report written to %s", mdPath))
}

// splitCandidates separates folders that contain a launch file from the
// rest.
func splitCandidates(paths []string) ([]course.Folder, []string) {
	var folders []course.Folder
	var skipped []string
	for _, p := range paths {
		folder := course.Folder{Path: p}
		if _, err := os.Stat(folder.LaunchPath()); err != nil {
			skipped = append(skipped, folder.Name())
			continue
		}
		folders = append(folders, folder)
	}
	return folders, skipped
}
