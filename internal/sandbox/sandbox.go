// Package sandbox evaluates JavaScript test programs in isolated goja
// runtimes. Every evaluation gets a new runtime, so the only values visible
// to a program are the ECMAScript built-ins, the names in its scope and the
// assert capability.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dop251/goja"
)

const (
	// MaxCallStackSize bounds JavaScript call depth
	MaxCallStackSize = 10000

	stackOverflowMessage = "RangeError: Maximum call stack size exceeded"
	maxOverflowFrames    = 10
)

// ScriptError is returned when a program throws. Trace holds the thrown
// value followed by the JavaScript stack frames.
type ScriptError struct {
	Message string
	Trace   string
	err     error
}

func (e *ScriptError) Error() string {
	return e.Message
}

// TraceString returns the thrown value and its stack frames
func (e *ScriptError) TraceString() string {
	if e.Trace == "" {
		return e.Message
	}
	return e.Trace
}

// Unwrap returns the underlying goja error
func (e *ScriptError) Unwrap() error {
	return e.err
}

// Sandbox runs programs in fresh runtimes
type Sandbox struct {
	logger *slog.Logger
}

// New creates a new Sandbox
func New(logger *slog.Logger) *Sandbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sandbox{logger: logger}
}

// Evaluate runs source as a program named name. Each scope entry becomes a
// global binding; assert is installed last and always refers to the
// assertion capability. Cancelling ctx interrupts the running program.
func (s *Sandbox) Evaluate(ctx context.Context, name, source string, scope map[string]any) error {
	vm := goja.New()
	vm.SetMaxCallStackSize(MaxCallStackSize)

	for key, value := range scope {
		if err := vm.Set(key, value); err != nil {
			return fmt.Errorf("bind %q: %w", key, err)
		}
	}
	if err := installAssert(vm); err != nil {
		return fmt.Errorf("install assert: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	s.logger.Debug("evaluating program", "name", name, "bindings", len(scope))

	_, err := vm.RunScript(name, source)
	if err != nil {
		return scriptError(err)
	}
	return nil
}

func scriptError(err error) error {
	var exception *goja.Exception
	if errors.As(err, &exception) {
		return &ScriptError{
			Message: exception.Value().String(),
			Trace:   exception.String(),
			err:     err,
		}
	}

	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		return &ScriptError{
			Message: stackOverflowMessage,
			Trace:   stackOverflowMessage + "\n" + headFrames(overflow.String(), maxOverflowFrames),
			err:     err,
		}
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return fmt.Errorf("interrupted: %w", cause)
		}
		return fmt.Errorf("interrupted: %v", interrupted.Value())
	}

	// Syntax errors come back as *goja.CompilerSyntaxError
	return &ScriptError{Message: err.Error(), Trace: err.Error(), err: err}
}

// headFrames keeps the first n lines of a stack dump
func headFrames(stack string, n int) string {
	lines := strings.Split(strings.TrimRight(stack, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n\t... %d more", len(lines)-n)
}
