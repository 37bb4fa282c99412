package ui

import "vmtest/internal/domain"

// Viewer displays test failures interactively
type Viewer interface {
	View(failures []domain.TestFailure) error
}
