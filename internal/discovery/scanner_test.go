package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	examples := filepath.Join(tmpDir, "test", "examples")
	require.NoError(t, os.MkdirAll(filepath.Join(examples, "nested"), 0755))

	files := []string{
		"arrays.js",
		"basic.js",
		"notes.md",
		"script.jsx",
		"nested/deep.js",
	}
	for _, file := range files {
		require.NoError(t, os.WriteFile(filepath.Join(examples, file), []byte("assert(true);"), 0644))
	}
	// a directory with a matching extension is not a test
	require.NoError(t, os.MkdirAll(filepath.Join(examples, "dir.js"), 0755))

	scanner := NewScanner(".js")

	t.Run("keeps matching files in the directory only", func(t *testing.T) {
		results, err := scanner.Scan(examples)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(examples, "arrays.js"),
			filepath.Join(examples, "basic.js"),
		}, results)
	})

	t.Run("is repeatable", func(t *testing.T) {
		first, err := scanner.Scan(examples)
		require.NoError(t, err)
		second, err := scanner.Scan(examples)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("other extension", func(t *testing.T) {
		results, err := NewScanner(".md").Scan(examples)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(examples, "notes.md")}, results)
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "missing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(examples, "basic.js"))
		assert.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		empty := filepath.Join(tmpDir, "empty")
		require.NoError(t, os.MkdirAll(empty, 0755))
		results, err := scanner.Scan(empty)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
