package execution

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"vmtest/internal/domain"
)

// Run is the handle of a run in progress
type Run struct {
	ID string

	events  chan domain.Event
	done    chan struct{}
	summary domain.Summary
}

// Events delivers pass and fail events in file order, then a single done
// event. The channel is closed after done.
func (r *Run) Events() <-chan domain.Event {
	return r.events
}

// Wait blocks until the run finishes and returns its summary
func (r *Run) Wait() domain.Summary {
	<-r.done
	return r.summary
}

// Scheduler runs test files one at a time
type Scheduler struct {
	executor *Executor
}

// NewScheduler creates a new Scheduler
func NewScheduler(executor *Executor) *Scheduler {
	if executor == nil {
		executor = NewExecutor(nil)
	}
	return &Scheduler{executor: executor}
}

type outcome struct {
	success bool
	err     error
}

// Start schedules files and returns immediately. A test starts only after
// the previous test's completion callback fired. The files slice is not
// modified. Slices in opts.Context are bound through one pointer for the
// whole run, so growth in one test is seen by the next. If ctx is cancelled, the remaining files are recorded as failed
// without being run.
func (s *Scheduler) Start(ctx context.Context, files []string, opts Options) *Run {
	run := &Run{
		ID:     uuid.NewString(),
		events: make(chan domain.Event, len(files)+1),
		done:   make(chan struct{}),
	}
	queue := slices.Clone(files)
	opts.Context = shareSlices(opts.Context)
	logger := opts.logger().With("run", run.ID)

	go func() {
		defer close(run.done)
		defer close(run.events)

		passed := make([]string, 0, len(queue))
		failed := make([]string, 0)
		startTime := time.Now()
		logger.Info("run started", "files", len(queue))

		for len(queue) > 0 {
			test := domain.NewTestCase(queue[0])
			queue = queue[1:]

			started := time.Now()
			result := make(chan outcome, 1)
			if err := ctx.Err(); err != nil {
				result <- outcome{err: &TestError{Test: test.Name, Path: test.Path, Stage: StageCanceled, Err: err}}
			} else {
				s.executor.Execute(ctx, test, opts, func(success bool, err error) {
					result <- outcome{success: success, err: err}
				})
			}
			out := <-result

			event := domain.Event{
				TestName: test.Name,
				Path:     test.Path,
				Duration: time.Since(started),
			}
			if out.success {
				event.Kind = domain.EventPass
				passed = append(passed, test.Name)
			} else {
				event.Kind = domain.EventFail
				event.Err = out.err
				failed = append(failed, test.Name)
			}
			logger.Debug("test finished", "test", test.Name, "result", event.Kind, "duration", event.Duration)
			run.events <- event
		}

		run.summary = domain.Summary{Passed: passed, Failed: failed}
		logger.Info("run finished", "passed", len(passed), "failed", len(failed), "duration", time.Since(startTime))
		run.events <- domain.Event{
			Kind:   domain.EventDone,
			Passed: slices.Clone(passed),
			Failed: slices.Clone(failed),
		}
	}()

	return run
}
