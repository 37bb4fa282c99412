package execution

import (
	"errors"
	"fmt"
)

// Stage names the step of a test at which it failed
type Stage string

const (
	StageRead      Stage = "read"
	StageTransform Stage = "transform"
	StageExecute   Stage = "execute"
	StageCanceled  Stage = "canceled"
)

// TestError attributes a failure to a single test
type TestError struct {
	Test  string
	Path  string
	Stage Stage
	Err   error
}

func (e *TestError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Test, e.Stage, e.Path, e.Err)
}

func (e *TestError) Unwrap() error {
	return e.Err
}

// tracer is implemented by errors that carry a stack trace, such as
// sandbox.ScriptError
type tracer interface {
	error
	TraceString() string
}

// Trace returns the most descriptive rendering of a test failure: the
// script stack trace when there is one, the error message otherwise.
func Trace(err error) string {
	if err == nil {
		return ""
	}
	var t tracer
	if errors.As(err, &t) {
		return t.TraceString()
	}
	var testErr *TestError
	if errors.As(err, &testErr) && testErr.Err != nil {
		return testErr.Err.Error()
	}
	return err.Error()
}
