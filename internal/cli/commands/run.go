package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"vmtest/internal/cli"
	"vmtest/internal/config"
	"vmtest/internal/discovery"
	"vmtest/internal/execution"
	"vmtest/internal/parser"
	"vmtest/internal/sandbox"
	"vmtest/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	scheduler *execution.Scheduler
	parser    parser.Parser
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	scheduler *execution.Scheduler,
	failureParser parser.Parser,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		scheduler: scheduler,
		parser:    failureParser,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	opts, err := rc.options()
	if err != nil {
		return err
	}

	report, err := rc.RunInvocation(cmd.Context(), execution.NewInvocation(args, &opts), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if rc.config.Flags.OpenFailures && len(report.Failures) > 0 {
		if err := rc.viewer.View(rc.parser.ParseFailures(report.Failures)); err != nil {
			return cli.WrapExitError(cli.ExitFailure, "failure viewer", err)
		}
	}

	if code := cli.ExitCodeFor(report.Summary); code != cli.ExitSuccess {
		return cli.NewExitError(code, "")
	}
	return nil
}

// RunInvocation runs the invocation's files, discovering them when none are
// given, and reports to out. Discovery errors abort before any test runs.
func (rc *RunCommand) RunInvocation(ctx context.Context, inv execution.Invocation, out io.Writer) (ui.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	files := inv.Files
	if len(files) == 0 {
		discovered, err := discover(rc.config, rc.filter)
		if err != nil {
			return ui.Report{}, err
		}
		files = discovered
	} else {
		files = rc.filter.FilterByName(files, rc.config.Flags.NameFilter)
	}

	reporter := ui.NewReporter(out, !rc.config.Flags.NoColor && !color.NoColor)
	if rc.config.Flags.Progress {
		reporter.SetProgress(ui.NewProgressBar(len(files), os.Stderr))
	}

	run := rc.scheduler.Start(ctx, files, inv.Options)
	return reporter.Report(run.Events()), nil
}

// options builds run options from the configured flags
func (rc *RunCommand) options() (execution.Options, error) {
	opts := execution.Options{Logger: slog.Default()}

	values, err := rc.config.LoadContext()
	if err != nil {
		return opts, cli.WrapExitError(cli.ExitCommandError, "load test context", err)
	}
	opts.Context = values

	if path := rc.config.Flags.TransformPath; path != "" {
		transform, err := sandbox.LoadTransform(path)
		if err != nil {
			return opts, cli.WrapExitError(cli.ExitCommandError, "load transform", err)
		}
		opts.Transform = execution.Transform(transform.Func())
	}

	return opts, nil
}
