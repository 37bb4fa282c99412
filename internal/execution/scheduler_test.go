package execution

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmtest/internal/domain"
)

func collect(run *Run) []domain.Event {
	var events []domain.Event
	for ev := range run.Events() {
		events = append(events, ev)
	}
	return events
}

func TestScheduler_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "one.js", `assert(1 === 1);`),
		writeTest(t, dir, "two.js", `throw new Error("plain error");`),
		writeTest(t, dir, "three.js", `assert(1 === 2);`),
	}
	original := append([]string(nil), files...)

	run := NewScheduler(nil).Start(context.Background(), files, Options{})
	events := collect(run)
	summary := run.Wait()

	require.Len(t, events, 4)
	assert.Equal(t, domain.EventPass, events[0].Kind)
	assert.Equal(t, "one", events[0].TestName)
	assert.Equal(t, domain.EventFail, events[1].Kind)
	assert.Equal(t, "two", events[1].TestName)
	assert.Contains(t, Trace(events[1].Err), "plain error")
	assert.Equal(t, domain.EventFail, events[2].Kind)
	assert.Equal(t, "three", events[2].TestName)
	assert.Contains(t, Trace(events[2].Err), "AssertionError")

	done := events[3]
	assert.Equal(t, domain.EventDone, done.Kind)
	assert.Equal(t, []string{"one"}, done.Passed)
	assert.Equal(t, []string{"two", "three"}, done.Failed)

	assert.Equal(t, "3 total, 1 passed, 2 failed.", summary.String())
	assert.Equal(t, original, files)
	assert.NotEmpty(t, run.ID)
}

func TestScheduler_EmptyFileList(t *testing.T) {
	run := NewScheduler(nil).Start(context.Background(), []string{}, Options{})
	events := collect(run)

	require.Len(t, events, 1)
	assert.Equal(t, domain.EventDone, events[0].Kind)
	assert.Empty(t, events[0].Passed)
	assert.Empty(t, events[0].Failed)
	assert.Equal(t, "0 total, 0 passed, 0 failed.", run.Wait().String())
}

func TestScheduler_OrderAndCount(t *testing.T) {
	dir := t.TempDir()
	// the first test is the slowest; order must still follow the input
	files := []string{
		writeTest(t, dir, "a.js", `var s = 0; for (var i = 0; i < 200000; i++) { s += i; } assert(s > 0);`),
		writeTest(t, dir, "b.js", `assert(true);`),
		filepath.Join(dir, "c.js"),
		writeTest(t, dir, "d.js", `assert(false);`),
	}

	run := NewScheduler(nil).Start(context.Background(), files, Options{})
	var names []string
	for ev := range run.Events() {
		if ev.Kind != domain.EventDone {
			names = append(names, ev.TestName)
		}
	}
	summary := run.Wait()

	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	assert.Equal(t, len(files), summary.Total())
	assert.Equal(t, []string{"a", "b"}, summary.Passed)
	assert.Equal(t, []string{"c", "d"}, summary.Failed)
}

func TestScheduler_ContextIsolation(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "mutator.js", `counter = counter + 1; shared.hits = 1; assert.equal(counter, 2);`),
		writeTest(t, dir, "observer.js", `assert.equal(counter, 1); assert.equal(shared.hits, 1);`),
	}
	opts := Options{Context: map[string]any{
		"counter": 1,
		"shared":  map[string]any{},
	}}

	summary := NewScheduler(nil).Start(context.Background(), files, opts).Wait()
	assert.Equal(t, []string{"mutator", "observer"}, summary.Passed)
	assert.Empty(t, summary.Failed)
	assert.Equal(t, 1, opts.Context["counter"])
}

func TestScheduler_SharedSlices(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "writer.js", `list.push(4); list[0] = 9; tags[1] = "y";`),
		writeTest(t, dir, "reader.js", `assert.equal(list.length, 4); assert.equal(list[0], 9); assert.equal(list[3], 4); assert.equal(tags[1], "y");`),
	}
	tags := []any{"a", "b"}
	opts := Options{Context: map[string]any{
		"list": []any{1, 2, 3},
		"tags": tags,
	}}

	summary := NewScheduler(nil).Start(context.Background(), files, opts).Wait()
	assert.Equal(t, []string{"writer", "reader"}, summary.Passed)
	assert.Empty(t, summary.Failed)
	assert.Equal(t, []any{"a", "y"}, tags)
	assert.Equal(t, []any{1, 2, 3}, opts.Context["list"])
}

func TestScheduler_SharedSlicePointer(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "append.js", `list.push("x");`),
		writeTest(t, dir, "check.js", `assert.equal(list.length, 1);`),
	}
	list := []any{}
	opts := Options{Context: map[string]any{"list": &list}}

	summary := NewScheduler(nil).Start(context.Background(), files, opts).Wait()
	assert.Equal(t, []string{"append", "check"}, summary.Passed)
	assert.Equal(t, []any{"x"}, list)
}

func TestScheduler_RecursionFailsOnlyItsTest(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "deep.js", `function f(n) { return f(n + 1) + 1; } f(0);`),
		writeTest(t, dir, "after.js", `assert(true);`),
	}

	events := collect(NewScheduler(nil).Start(context.Background(), files, Options{}))
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventFail, events[0].Kind)
	assert.Contains(t, events[0].Err.Error(), "Maximum call stack size exceeded")
	assert.Equal(t, domain.EventPass, events[1].Kind)
	assert.Equal(t, []string{"after"}, events[2].Passed)
	assert.Equal(t, []string{"deep"}, events[2].Failed)
}

func TestScheduler_TransformFailures(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "good.js", `assert(true);`),
		writeTest(t, dir, "bad.js", `assert(true);`),
	}
	opts := Options{Transform: func(source, testName, _ string) (string, error) {
		if testName == "bad" {
			return "", errors.New("cannot transform bad")
		}
		return source, nil
	}}

	run := NewScheduler(nil).Start(context.Background(), files, opts)
	events := collect(run)

	require.Len(t, events, 3)
	assert.Equal(t, domain.EventPass, events[0].Kind)
	assert.Equal(t, domain.EventFail, events[1].Kind)
	assert.Contains(t, events[1].Err.Error(), "cannot transform bad")
}

func TestScheduler_Canceled(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTest(t, dir, "x.js", `assert(true);`),
		writeTest(t, dir, "y.js", `assert(true);`),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := collect(NewScheduler(nil).Start(ctx, files, Options{}))
	require.Len(t, events, 3)
	for _, ev := range events[:2] {
		assert.Equal(t, domain.EventFail, ev.Kind)
		assert.ErrorIs(t, ev.Err, context.Canceled)
	}
	assert.Equal(t, []string{"x", "y"}, events[2].Failed)
}

func TestScheduler_StartReturnsBeforeCompletion(t *testing.T) {
	dir := t.TempDir()
	path := writeTest(t, dir, "only.js", `assert(true);`)

	run := NewScheduler(nil).Start(context.Background(), []string{path}, Options{})
	require.NotNil(t, run)
	assert.Equal(t, []string{"only"}, run.Wait().Passed)
}
