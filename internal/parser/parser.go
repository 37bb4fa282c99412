package parser

import "vmtest/internal/domain"

// Parser extracts failure details from a fail event
type Parser interface {
	ParseFailure(event domain.Event) domain.TestFailure
	ParseFailures(events []domain.Event) []domain.TestFailure
}
