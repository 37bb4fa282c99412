package discovery

import (
	"path/filepath"
	"strings"

	"vmtest/internal/domain"
)

// Filter narrows discovered test files by name
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the files whose base name or test name matches pattern.
// Patterns with wildcards ("*array*", "basic?.js") use glob matching with a
// fallback that requires every literal part to appear in order. Patterns
// without wildcards match as substrings. An empty pattern keeps everything.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		if f.matches(file, pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

func (f *Filter) matches(file, pattern string) bool {
	candidates := []string{filepath.Base(file), domain.TestName(file)}

	if !strings.ContainsAny(pattern, "*?") {
		for _, name := range candidates {
			if strings.Contains(name, pattern) {
				return true
			}
		}
		return false
	}

	for _, name := range candidates {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
		if containsInOrder(name, strings.Split(pattern, "*")) {
			return true
		}
	}
	return false
}

// containsInOrder reports whether every non-empty part occurs in name, each
// after the previous one. At least one part must be non-empty.
func containsInOrder(name string, parts []string) bool {
	found := false
	rest := name
	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		found = true
	}
	return found
}
