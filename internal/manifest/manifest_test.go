package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package_1.xml")
	members := []string{"unfiled$public/Foo", "Sales_Reports_Dev/Bar"}

	require.NoError(t, Write(path, members))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	assert.True(t, strings.HasPrefix(content, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>"))
	assert.Contains(t, content, `<Package xmlns="http://soap.sforce.com/2006/04/metadata">`)
	assert.Contains(t, content, "<members>unfiled$public/Foo</members>")
	assert.Contains(t, content, "<members>Sales_Reports_Dev/Bar</members>")
	assert.Contains(t, content, "<name>Report</name>")
	assert.Contains(t, content, "<version>65.0</version>")

	// Members appear in input order.
	assert.Less(t,
		strings.Index(content, "unfiled$public/Foo"),
		strings.Index(content, "Sales_Reports_Dev/Bar"))
}

func TestWriteEmptyMembers(t *testing.T) {
	// Batch manifests are written unconditionally, even with no members.
	path := filepath.Join(t.TempDir(), "package_1.xml")
	require.NoError(t, Write(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<name>Report</name>")
	assert.NotContains(t, string(raw), "<members>")
}

func TestWriteFinal(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty change set writes nothing", func(t *testing.T) {
		path := filepath.Join(dir, "deploy", "package.xml")
		wrote, err := WriteFinal(path, nil)
		require.NoError(t, err)
		assert.False(t, wrote)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("non-empty change set writes manifest", func(t *testing.T) {
		path := filepath.Join(dir, "package.xml")
		wrote, err := WriteFinal(path, []string{"unfiled$public/Changed"})
		require.NoError(t, err)
		assert.True(t, wrote)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "<members>unfiled$public/Changed</members>")
	})
}

func TestWriteBadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "package.xml"), []string{"a/b"})
	require.Error(t, err)
}
