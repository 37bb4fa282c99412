package execution

import (
	"context"
	"fmt"
	"maps"
	"os"
	"reflect"

	"vmtest/internal/domain"
	"vmtest/internal/sandbox"
)

// Evaluator runs a program in an isolated scope
type Evaluator interface {
	Evaluate(ctx context.Context, name, source string, scope map[string]any) error
}

// Executor runs a single test file to completion
type Executor struct {
	evaluator Evaluator
	readFile  func(name string) ([]byte, error)
}

// NewExecutor creates a new Executor. A nil evaluator uses a sandbox.
func NewExecutor(evaluator Evaluator) *Executor {
	if evaluator == nil {
		evaluator = sandbox.New(nil)
	}
	return &Executor{
		evaluator: evaluator,
		readFile:  os.ReadFile,
	}
}

// Execute reads, transforms and evaluates one test, then calls done exactly
// once. Errors are reported through done as *TestError and never escape.
func (e *Executor) Execute(ctx context.Context, test domain.TestCase, opts Options, done func(success bool, err error)) {
	if err := e.execute(ctx, test, opts); err != nil {
		done(false, err)
		return
	}
	done(true, nil)
}

func (e *Executor) execute(ctx context.Context, test domain.TestCase, opts Options) (err error) {
	stage := StageRead
	defer func() {
		if r := recover(); r != nil {
			err = &TestError{Test: test.Name, Path: test.Path, Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	raw, err := e.readFile(test.Path)
	if err != nil {
		return &TestError{Test: test.Name, Path: test.Path, Stage: stage, Err: err}
	}
	source := string(raw)

	if opts.Transform != nil {
		stage = StageTransform
		source, err = opts.Transform(source, test.Name, test.Path)
		if err != nil {
			return &TestError{Test: test.Name, Path: test.Path, Stage: stage, Err: err}
		}
	}

	stage = StageExecute
	if err := e.evaluator.Evaluate(ctx, test.Path, source, newScope(opts.Context)); err != nil {
		return &TestError{Test: test.Name, Path: test.Path, Stage: stage, Err: err}
	}
	return nil
}

// newScope makes the per-test scope: a one-level copy of the shared context
func newScope(shared map[string]any) map[string]any {
	scope := make(map[string]any, len(shared)+1)
	maps.Copy(scope, shared)
	return scope
}

// shareSlices replaces every slice in shared with a pointer to it. The
// pointer outlives a single scope, so tests observe each other's pushes and
// element writes. Element writes land in the caller's backing array until
// the slice grows past its capacity.
func shareSlices(shared map[string]any) map[string]any {
	if shared == nil {
		return nil
	}
	out := make(map[string]any, len(shared))
	for key, value := range shared {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice || rv.IsNil() {
			out[key] = value
			continue
		}
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		out[key] = ptr.Interface()
	}
	return out
}
