// Package vmtest runs JavaScript test files one at a time, each in a fresh
// sandboxed runtime with an assert function in scope.
//
// Run drives a list of files and delivers pass, fail and done events:
//
//	run := vmtest.Run(ctx, vmtest.FromFiles([]string{"test/examples/basic.js"}))
//	for ev := range run.Events() {
//		...
//	}
//
// RunCLI does the same with console reporting, discovering test/examples/*.js
// when no files are given, and returns the exit code instead of exiting.
package vmtest

import (
	"context"
	"io"

	"vmtest/internal/cli"
	"vmtest/internal/cli/commands"
	"vmtest/internal/config"
	"vmtest/internal/domain"
	"vmtest/internal/execution"
)

type (
	// Options configures a run
	Options = execution.Options
	// Transform rewrites test source before evaluation
	Transform = execution.Transform
	// Invocation is the canonical {files, options} argument shape
	Invocation = execution.Invocation
	// Handle observes a run in progress
	Handle = execution.Run
	// Event is a pass, fail or done notification
	Event = domain.Event
	// Summary holds the passed and failed test names in file order
	Summary = domain.Summary
)

// Event kinds
const (
	EventPass = domain.EventPass
	EventFail = domain.EventFail
	EventDone = domain.EventDone
)

// FromFiles creates an invocation for an explicit file list
func FromFiles(files []string) Invocation {
	return execution.FromFiles(files)
}

// FromTransform creates an invocation that only sets a transform
func FromTransform(transform Transform) Invocation {
	return execution.FromTransform(transform)
}

// FromOptions creates an invocation from options alone
func FromOptions(opts Options) Invocation {
	return execution.FromOptions(opts)
}

// Normalize reconciles loosely typed arguments (a file list, a transform
// function, an options value, or files followed by options) into an
// Invocation.
func Normalize(args ...any) Invocation {
	return execution.NormalizeArgs(args...)
}

// Run starts running inv.Files sequentially and returns immediately
func Run(ctx context.Context, inv Invocation) *Handle {
	return execution.NewScheduler(nil).Start(ctx, inv.Files, inv.Options)
}

// RunCLI runs inv with console reporting to w. Without files it discovers
// test/examples/*.js relative to the working directory; a discovery error
// is returned and no test runs. The returned code is 0 when every test
// passed and 1 otherwise. RunCLI never exits the process.
func RunCLI(ctx context.Context, inv Invocation, w io.Writer) (int, error) {
	cfg := config.New()
	cfg.Flags.NoColor = true

	report, err := commands.NewCommands(cfg).Run.RunInvocation(ctx, inv, w)
	if err != nil {
		return cli.GetExitCode(err), err
	}
	return cli.ExitCodeFor(report.Summary), nil
}
