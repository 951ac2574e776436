package runner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/scormpack/internal/config"
	"github.com/harrison/scormpack/internal/course"
	"github.com/harrison/scormpack/internal/logger"
)

const launchContent = `<html>
<head>
<script>
var g_bLMSPresent = false;
</script>
</head>
<body>
<div id="content"></div>
</body>
</html>`

const dataWithTrigger = `{
  "scorings": [
    {"id": "q1", "maxpoints": 10, "type": "action"},
    {"id": "q2", "maxpoints": 20, "type": "action"}
  ]
}`

const dataWithoutTrigger = `{
  "scorings": [
    {"id": "q1", "maxpoints": 10}
  ]
}`

// newCourseDir lays out a minimal Storyline-style export under parent.
func newCourseDir(t *testing.T, parent, name, dataJS string) course.Folder {
	t.Helper()
	dir := filepath.Join(parent, name)
	dataDir := filepath.Join(dir, "html5", "data", "js")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, course.LaunchFile), []byte(launchContent), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, course.LegacyEntry), []byte("<html></html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, course.DataFileName), []byte(dataJS), 0644))

	return course.NewFolder(dir)
}

// fixedConfirmer answers every question the same way.
type fixedConfirmer struct {
	answer    bool
	err       error
	questions []string
}

func (c *fixedConfirmer) Confirm(question string) (bool, error) {
	c.questions = append(c.questions, question)
	return c.answer, c.err
}

func newTestRunner(cfg *config.Config, confirm *fixedConfirmer) (*Runner, *bytes.Buffer) {
	r := New(cfg, logger.NewNoOpLogger(), confirm)
	var out bytes.Buffer
	r.SetOutput(&out)
	r.SetPreviewFunc(func(course.Folder) error { return nil })
	return r, &out
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Preview = false
	return cfg
}

func TestRunSingleSuccess(t *testing.T) {
	parent := t.TempDir()
	folder := newCourseDir(t, parent, "intro", dataWithTrigger)

	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(testConfig(), confirm)

	summary := r.RunSingle(folder)

	require.Equal(t, 1, summary.Total())
	assert.Equal(t, 1, summary.Completed())
	result := summary.Results[0]
	require.NoError(t, result.Err)
	assert.Equal(t, course.PatchApplied, result.Outcome)
	assert.Equal(t, 30, result.Score)

	// Launch file patched and API dependency copied.
	patched, err := os.ReadFile(folder.LaunchPath())
	require.NoError(t, err)
	assert.Contains(t, string(patched), course.InitHookMarker)
	assert.FileExists(t, folder.APIPath())

	// Entry file normalized.
	assert.FileExists(t, folder.EntryPath())
	assert.NoFileExists(t, folder.LegacyEntryPath())

	// Archive created next to the folder.
	wantArchive := filepath.Join(parent, "ZippedFiles", "intro.zip")
	assert.Equal(t, wantArchive, result.ArchivePath)
	assert.FileExists(t, wantArchive)

	require.Len(t, confirm.questions, 1)
	assert.Contains(t, confirm.questions[0], "30 points")
}

func TestRunSingleNoCompletionTrigger(t *testing.T) {
	parent := t.TempDir()
	folder := newCourseDir(t, parent, "intro", dataWithoutTrigger)

	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(testConfig(), confirm)

	summary := r.RunSingle(folder)

	result := summary.Results[0]
	assert.ErrorIs(t, result.Err, course.ErrNotCompliant)
	assert.Empty(t, confirm.questions, "failed folders must not reach confirmation")
	assert.NoFileExists(t, filepath.Join(parent, "ZippedFiles", "intro.zip"))

	// The launch file is left untouched.
	data, err := os.ReadFile(folder.LaunchPath())
	require.NoError(t, err)
	assert.Equal(t, launchContent, string(data))
}

func TestRunSingleDeclined(t *testing.T) {
	parent := t.TempDir()
	folder := newCourseDir(t, parent, "intro", dataWithTrigger)

	confirm := &fixedConfirmer{answer: false}
	r, _ := newTestRunner(testConfig(), confirm)

	summary := r.RunSingle(folder)

	result := summary.Results[0]
	assert.ErrorIs(t, result.Err, course.ErrUserDeclined)
	assert.NoFileExists(t, filepath.Join(parent, "ZippedFiles", "intro.zip"))

	// The folder itself stays patched; declining only skips the archive.
	patched, err := os.ReadFile(folder.LaunchPath())
	require.NoError(t, err)
	assert.Contains(t, string(patched), course.InitHookMarker)
}

func TestRunSinglePreviewFailureContinues(t *testing.T) {
	parent := t.TempDir()
	folder := newCourseDir(t, parent, "intro", dataWithTrigger)

	cfg := testConfig()
	cfg.Preview = true
	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(cfg, confirm)
	r.SetPreviewFunc(func(course.Folder) error { return errors.New("no browser") })

	summary := r.RunSingle(folder)

	require.NoError(t, summary.Results[0].Err)
	assert.FileExists(t, filepath.Join(parent, "ZippedFiles", "intro.zip"))
}

func TestRunSinglePreviewDisabled(t *testing.T) {
	parent := t.TempDir()
	folder := newCourseDir(t, parent, "intro", dataWithTrigger)

	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(testConfig(), confirm)
	previewed := false
	r.SetPreviewFunc(func(course.Folder) error { previewed = true; return nil })

	r.RunSingle(folder)

	assert.False(t, previewed, "preview must not open when disabled")
}

func TestRunBulk(t *testing.T) {
	parent := t.TempDir()
	newCourseDir(t, parent, "alpha", dataWithTrigger)
	newCourseDir(t, parent, "beta", dataWithoutTrigger)
	newCourseDir(t, parent, "gamma", dataWithTrigger)
	// A folder without a launch file is skipped, not failed.
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "notes"), 0755))

	confirm := &fixedConfirmer{answer: true}
	r, out := newTestRunner(testConfig(), confirm)

	summary, err := r.RunBulk(parent)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total())
	assert.Equal(t, 2, summary.Completed())
	assert.Equal(t, 1, summary.Failed())

	byName := map[string]course.FolderResult{}
	for _, res := range summary.Results {
		byName[res.Name] = res
	}

	assert.FileExists(t, filepath.Join(parent, "ZippedFiles", "alpha.zip"))
	assert.FileExists(t, filepath.Join(parent, "ZippedFiles", "gamma.zip"))
	assert.NoFileExists(t, filepath.Join(parent, "ZippedFiles", "beta.zip"))
	assert.ErrorIs(t, byName["beta"].Err, course.ErrNotCompliant)
	assert.Equal(t, 30, byName["alpha"].Score)

	// The scan listing names every candidate folder before processing.
	assert.Contains(t, out.String(), "Scanning course folders:")
	assert.Contains(t, out.String(), "[1/3] alpha")
	assert.Contains(t, out.String(), "[3/3] gamma")
	assert.Contains(t, out.String(), "Found 3 course folders")

	// One aggregate confirmation after the score table.
	require.Len(t, confirm.questions, 1)
	assert.Contains(t, confirm.questions[0], "2 folders")
	assert.Contains(t, out.String(), "alpha")
	assert.Contains(t, out.String(), "skipped")

	assert.Contains(t, out.String(), "notes", "skipped folder warning should name the folder")

	// Report written next to the archives.
	md, err := os.ReadFile(filepath.Join(parent, "ZippedFiles", "report.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "alpha")
	assert.Contains(t, string(md), "beta")
}

func TestRunBulkDeclined(t *testing.T) {
	parent := t.TempDir()
	newCourseDir(t, parent, "alpha", dataWithTrigger)

	confirm := &fixedConfirmer{answer: false}
	r, _ := newTestRunner(testConfig(), confirm)

	_, err := r.RunBulk(parent)
	assert.ErrorIs(t, err, course.ErrUserDeclined)
	assert.NoFileExists(t, filepath.Join(parent, "ZippedFiles", "alpha.zip"))
}

func TestRunBulkFailureDoesNotAffectOthers(t *testing.T) {
	parent := t.TempDir()
	newCourseDir(t, parent, "alpha", dataWithTrigger)

	// beta has a launch file but no data.js at all.
	betaDir := filepath.Join(parent, "beta")
	require.NoError(t, os.MkdirAll(betaDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(betaDir, course.LaunchFile), []byte(launchContent), 0644))

	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(testConfig(), confirm)

	summary, err := r.RunBulk(parent)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Completed())
	assert.Equal(t, 1, summary.Failed())
	assert.FileExists(t, filepath.Join(parent, "ZippedFiles", "alpha.zip"))
}

func TestRunBulkNoCourseFolders(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "not-a-course"), 0755))

	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(testConfig(), confirm)

	_, err := r.RunBulk(parent)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no course folders"))
}

func TestRunBulkExcludesArchiveDir(t *testing.T) {
	parent := t.TempDir()
	newCourseDir(t, parent, "alpha", dataWithTrigger)

	confirm := &fixedConfirmer{answer: true}
	r, _ := newTestRunner(testConfig(), confirm)

	// First run creates ZippedFiles; the second must not treat it as a
	// course folder or skip-warn about it.
	_, err := r.RunBulk(parent)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	r.SetOutput(out)
	summary, err := r.RunBulk(parent)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total())
	assert.NotContains(t, out.String(), "ZippedFiles\n")
	assert.Equal(t, course.PatchAlreadyApplied, summary.Results[0].Outcome)
}
