package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/fatih/color"

	"vmtest/internal/domain"
	"vmtest/internal/execution"
)

const (
	passMarker = "✓"
	failMarker = "✘"
)

// Report is what the reporter observed during a run
type Report struct {
	Summary  domain.Summary
	Failures []domain.Event
}

// Reporter prints one line per finished test and the final tally
type Reporter struct {
	out      io.Writer
	useColor bool
	progress *ProgressBar

	pass *color.Color
	fail *color.Color
}

// NewReporter creates a new Reporter writing to out
func NewReporter(out io.Writer, useColor bool) *Reporter {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if useColor {
		pass.EnableColor()
		fail.EnableColor()
	} else {
		pass.DisableColor()
		fail.DisableColor()
	}

	return &Reporter{
		out:      out,
		useColor: useColor,
		pass:     pass,
		fail:     fail,
	}
}

// SetProgress sets the progress bar updated alongside the output
func (r *Reporter) SetProgress(progress *ProgressBar) {
	r.progress = progress
}

// Report consumes events until the channel is closed. It never terminates
// the process; callers map the summary to an exit code.
func (r *Reporter) Report(events <-chan domain.Event) Report {
	var report Report
	var passed, failed []string
	finished := false

	for event := range events {
		switch event.Kind {
		case domain.EventPass:
			passed = append(passed, event.TestName)
			r.printSuccess(event.TestName)
		case domain.EventFail:
			failed = append(failed, event.TestName)
			report.Failures = append(report.Failures, event)
			r.printFailure(event.TestName, event.Err)
		case domain.EventDone:
			finished = true
			report.Summary = domain.Summary{Passed: event.Passed, Failed: event.Failed}
			if r.progress != nil {
				r.progress.Finish()
			}
			r.printSummary(report.Summary)
			continue
		}

		if r.progress != nil {
			r.progress.Update(len(passed), len(failed))
		}
	}

	if !finished {
		report.Summary = domain.Summary{Passed: passed, Failed: failed}
	}
	return report
}

func (r *Reporter) printSuccess(testName string) {
	fmt.Fprintf(r.out, "%s %s\n", r.pass.Sprint(passMarker), testName)
}

func (r *Reporter) printFailure(testName string, err error) {
	trace := strings.TrimRight(execution.Trace(err), "\n")
	if !r.useColor {
		trace = stripansi.Strip(trace)
	}
	fmt.Fprintf(r.out, "%s %s\n\n%s\n", r.fail.Sprint(failMarker), testName, trace)
}

func (r *Reporter) printSummary(summary domain.Summary) {
	fmt.Fprintf(r.out, "\n%s\n", summary.String())
}
