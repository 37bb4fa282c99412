package domain

import (
	"path/filepath"
	"strings"
)

// TestCase represents a test file to be executed
type TestCase struct {
	Name string // File base name without its extension
	Path string // Path to the source file
}

// NewTestCase creates a TestCase for the given source file path
func NewTestCase(path string) TestCase {
	return TestCase{Name: TestName(path), Path: path}
}

// TestName derives the display name of a test from its file path
func TestName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
