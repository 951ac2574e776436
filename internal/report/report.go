// Package report generates bulk-run reports in Markdown and HTML.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/filelock"
)

// File names written by WriteFiles into the report directory.
const (
	MarkdownFile = "report.md"
	HTMLFile     = "report.html"
)

// Writer renders run summaries into report files.
type Writer struct {
	markdown goldmark.Markdown
}

// NewWriter creates a report writer. Tables are enabled so the per-folder
// results render as a proper HTML table.
func NewWriter() *Writer {
	return &Writer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Markdown renders the run summary as a Markdown document.
func (w *Writer) Markdown(rootPath string, summary course.RunSummary) string {
	var sb strings.Builder

	sb.WriteString("# Course Packaging Report\n\n")
	fmt.Fprintf(&sb, "- **Parent folder:** `%s`\n", rootPath)
	fmt.Fprintf(&sb, "- **Generated:** %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- **Folders:** %d total, %d completed, %d failed\n",
		summary.Total(), summary.Completed(), summary.Failed())
	fmt.Fprintf(&sb, "- **Duration:** %s\n\n", summary.Duration.Round(time.Second))

	sb.WriteString("## Results\n\n")
	sb.WriteString("| Folder | Patch | Score | Archive | Error |\n")
	sb.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, r := range summary.Results {
		score := "-"
		archive := "-"
		errMsg := "-"
		if r.Succeeded() {
			score = fmt.Sprintf("%d", r.Score)
			if r.ArchivePath != "" {
				archive = fmt.Sprintf("`%s`", filepath.Base(r.ArchivePath))
			}
		} else if r.Err != nil {
			errMsg = r.Err.Error()
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			r.Name, r.Outcome, score, archive, errMsg)
	}

	if failed := summary.FailedResults(); len(failed) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, r := range failed {
			fmt.Fprintf(&sb, "- **%s**: %v\n", r.Name, r.Err)
		}
	}

	return sb.String()
}

// HTML converts a Markdown report into a standalone HTML page.
func (w *Writer) HTML(markdown string) (string, error) {
	var body bytes.Buffer
	if err := w.markdown.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	page.WriteString("<meta charset=\"utf-8\">\n<title>Course Packaging Report</title>\n")
	page.WriteString("<style>\nbody { font-family: sans-serif; margin: 2em; }\n")
	page.WriteString("table { border-collapse: collapse; }\n")
	page.WriteString("th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }\n</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

// WriteMarkdown writes report.md into dir and returns its path. The write is
// atomic so a crash never leaves a partial report next to the archives.
func (w *Writer) WriteMarkdown(dir, rootPath string, summary course.RunSummary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	md := w.Markdown(rootPath, summary)
	mdPath := filepath.Join(dir, MarkdownFile)
	if err := filelock.AtomicWrite(mdPath, []byte(md)); err != nil {
		return "", fmt.Errorf("write %s: %w", MarkdownFile, err)
	}
	return mdPath, nil
}

// RenderFile converts a Markdown report file into report.html in the same
// directory and returns the HTML file's path.
func (w *Writer) RenderFile(mdPath string) (string, error) {
	md, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}

	html, err := w.HTML(string(md))
	if err != nil {
		return "", err
	}

	htmlPath := filepath.Join(filepath.Dir(mdPath), HTMLFile)
	if err := filelock.AtomicWrite(htmlPath, []byte(html)); err != nil {
		return "", fmt.Errorf("write %s: %w", HTMLFile, err)
	}
	return htmlPath, nil
}
