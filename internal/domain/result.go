package domain

import (
	"fmt"
	"time"
)

// EventKind identifies the lifecycle events emitted during a run
type EventKind int

const (
	EventPass EventKind = iota
	EventFail
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventPass:
		return "pass"
	case EventFail:
		return "fail"
	case EventDone:
		return "done"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single notification from the scheduler.
// Err is only set for EventFail; Passed and Failed only for EventDone.
type Event struct {
	Kind     EventKind
	TestName string
	Path     string
	Err      error
	Duration time.Duration

	Passed []string
	Failed []string
}

// Summary is the accumulated result of a run, in file order
type Summary struct {
	Passed []string
	Failed []string
}

// Total returns the number of tests that completed
func (s Summary) Total() int {
	return len(s.Passed) + len(s.Failed)
}

// Success reports whether no test failed
func (s Summary) Success() bool {
	return len(s.Failed) == 0
}

// String renders the summary line printed at the end of a run
func (s Summary) String() string {
	return fmt.Sprintf("%d total, %d passed, %d failed.", s.Total(), len(s.Passed), len(s.Failed))
}
