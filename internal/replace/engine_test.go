package replace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wingman/internal/backup"
)

const (
	oldField = "Account.OldField__c"
	newField = "Account.NewField__c"
)

func newTestEngine(t *testing.T, dryRun bool) (*Engine, string, string) {
	t.Helper()
	reportsRoot := t.TempDir()
	backupRoot := t.TempDir()
	engine := NewEngine(oldField, newField, dryRun, backup.NewManager(backupRoot), zap.NewNop())
	return engine, reportsRoot, backupRoot
}

func writeReport(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunReplacesAllOccurrences(t *testing.T) {
	engine, root, _ := newTestEngine(t, false)
	content := "<Report><column>" + oldField + "</column><filter>" + oldField + "</filter></Report>"
	path := writeReport(t, root, filepath.Join("Sales", "Bar.report-meta.xml"), content)

	result, err := engine.Run(root)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1, "file reported as changed exactly once")
	assert.Equal(t, "Sales/Bar", result.Changes[0].Identifier)
	assert.Equal(t, 2, result.Changes[0].Occurrences)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Zero(t, strings.Count(string(raw), oldField))
	assert.Equal(t, 2, strings.Count(string(raw), newField))
}

func TestRunSkipsFilesWithoutToken(t *testing.T) {
	engine, root, backupRoot := newTestEngine(t, false)
	path := writeReport(t, root, "Clean.report-meta.xml", "<Report>nothing to do</Report>")

	result, err := engine.Run(root)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Empty(t, result.Changes)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Report>nothing to do</Report>", string(raw))

	// No backup for untouched files.
	entries, err := os.ReadDir(backupRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunBackupBeforeWrite(t *testing.T) {
	engine, root, backupRoot := newTestEngine(t, false)
	original := "<Report>" + oldField + "</Report>"
	writeReport(t, root, filepath.Join("Sales", "Bar.report-meta.xml"), original)

	_, err := engine.Run(root)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(backupRoot, "Sales", "Bar.report-meta.xml"))
	require.NoError(t, err)
	assert.Equal(t, original, string(raw), "backup holds pre-mutation content")
}

func TestRunDryRunParity(t *testing.T) {
	engine, root, backupRoot := newTestEngine(t, true)
	content := "<Report>" + oldField + "</Report>"
	path := writeReport(t, root, filepath.Join("Sales", "Bar.report-meta.xml"), content)
	writeReport(t, root, "Clean.report-meta.xml", "<Report/>")

	result, err := engine.Run(root)
	require.NoError(t, err)

	// Same change list a real run would produce.
	require.Len(t, result.Changes, 1)
	assert.Equal(t, []string{"Sales/Bar"}, result.Identifiers())

	// But no filesystem change and no backup.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
	entries, err := os.ReadDir(backupRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunIdempotence(t *testing.T) {
	engine, root, backupRoot := newTestEngine(t, false)
	writeReport(t, root, "Foo.report-meta.xml", "<Report>"+oldField+"</Report>")

	first, err := engine.Run(root)
	require.NoError(t, err)
	require.Len(t, first.Changes, 1)

	firstBackup, err := os.ReadFile(filepath.Join(backupRoot, "Foo.report-meta.xml"))
	require.NoError(t, err)

	// Second run: token already replaced, nothing matches.
	second, err := engine.Run(root)
	require.NoError(t, err)
	assert.Empty(t, second.Changes)

	// No second backup or mutation happened; the first backup is intact.
	backupNow, err := os.ReadFile(filepath.Join(backupRoot, "Foo.report-meta.xml"))
	require.NoError(t, err)
	assert.Equal(t, string(firstBackup), string(backupNow))
}

func TestRunLiteralNotRegex(t *testing.T) {
	// Field tokens can contain regex metacharacters; matching is literal.
	engine := NewEngine("Amount.Total_$__c", "Amount.Sum_$__c", false,
		backup.NewManager(t.TempDir()), zap.NewNop())
	root := t.TempDir()
	path := writeReport(t, root, "R.report-meta.xml", "<c>Amount.Total_$__c</c><c>AmountXTotal_Y__c</c>")

	result, err := engine.Run(root)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<c>Amount.Sum_$__c</c><c>AmountXTotal_Y__c</c>", string(raw))
}

func TestRunPerFileErrorIsolation(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	engine, root, _ := newTestEngine(t, false)
	unreadable := writeReport(t, root, "A_Bad.report-meta.xml", "<Report>"+oldField+"</Report>")
	require.NoError(t, os.Chmod(unreadable, 0o000))
	t.Cleanup(func() { _ = os.Chmod(unreadable, 0o644) })
	writeReport(t, root, "Z_Good.report-meta.xml", "<Report>"+oldField+"</Report>")

	result, err := engine.Run(root)
	require.NoError(t, err, "per-file failures must not abort the run")
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "Z_Good", result.Changes[0].Identifier)
}

func TestRunEmptyRootWarnsAndReturnsEmpty(t *testing.T) {
	engine, root, _ := newTestEngine(t, false)
	result, err := engine.Run(root)
	require.NoError(t, err)
	assert.Zero(t, result.Scanned)
	assert.Empty(t, result.Changes)
}
