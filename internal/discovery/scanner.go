package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scanner lists test files in a single directory
type Scanner struct {
	extension string
}

// NewScanner creates a new Scanner that keeps files with the given extension
func NewScanner(extension string) *Scanner {
	return &Scanner{extension: extension}
}

// Scan returns the joined paths of the files in dir whose extension matches,
// in directory listing order. Subdirectories are not descended into.
func (s *Scanner) Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list test directory %s: %w", dir, err)
	}

	testFiles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != s.extension {
			continue
		}
		testFiles = append(testFiles, filepath.Join(dir, entry.Name()))
	}

	return testFiles, nil
}
