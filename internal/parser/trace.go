package parser

import (
	"regexp"
	"strconv"
	"strings"

	"vmtest/internal/domain"
	"vmtest/internal/execution"
)

// framePattern matches goja stack frames such as
//
//	at check (test/examples/basic.js:3:9(12))
//	at test/examples/basic.js:7:1(20)
var framePattern = regexp.MustCompile(`^\s*at\s+(?:(.+?)\s+\()?([^\s()]+):(\d+):(\d+)(?:\(\d+\))?\)?\s*$`)

// TraceParser parses script stack traces
type TraceParser struct{}

// NewTraceParser creates a new TraceParser
func NewTraceParser() *TraceParser {
	return &TraceParser{}
}

// ParseFailure builds a TestFailure from a fail event. The location is the
// first frame that points into the test file itself, falling back to the
// first frame.
func (p *TraceParser) ParseFailure(event domain.Event) domain.TestFailure {
	failure := domain.TestFailure{
		TestName:   event.TestName,
		FilePath:   event.Path,
		StackTrace: []string{},
	}
	if event.Err == nil {
		return failure
	}

	var messageLines []string
	for _, line := range strings.Split(execution.Trace(event.Err), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(trimmed, "at ") {
			// Message lines only come before the first frame
			if len(failure.StackTrace) == 0 {
				messageLines = append(messageLines, trimmed)
			}
			continue
		}
		failure.StackTrace = append(failure.StackTrace, trimmed)

		// Native frames carry no location
		match := framePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		file := match[2]
		if failure.File == "" || (file == event.Path && failure.File != event.Path) {
			failure.File = file
			failure.Line, _ = strconv.Atoi(match[3])
			failure.Column, _ = strconv.Atoi(match[4])
		}
	}

	failure.Message = strings.Join(messageLines, "\n")
	return failure
}

// ParseFailures collects the failures of all fail events
func (p *TraceParser) ParseFailures(events []domain.Event) []domain.TestFailure {
	var failures []domain.TestFailure
	for _, event := range events {
		if event.Kind == domain.EventFail {
			failures = append(failures, p.ParseFailure(event))
		}
	}
	return failures
}
