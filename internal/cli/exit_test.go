package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"vmtest/internal/domain"
)

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeFor(domain.Summary{}))
	assert.Equal(t, ExitSuccess, ExitCodeFor(domain.Summary{Passed: []string{"a"}}))
	assert.Equal(t, ExitFailure, ExitCodeFor(domain.Summary{Passed: []string{"a"}, Failed: []string{"b"}}))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "discover", errors.New("missing"))))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))))
}

func TestExitError(t *testing.T) {
	cause := errors.New("no such directory")
	err := WrapExitError(ExitCommandError, "test discovery failed", cause)
	assert.Equal(t, "test discovery failed: no such directory", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.True(t, Silent(NewExitError(ExitFailure, "")))
	assert.False(t, Silent(err))
	assert.False(t, Silent(errors.New("x")))
}

func TestFlags_ToConfigFlags(t *testing.T) {
	flags := Flags{Dir: "specs", Extension: "mjs", Set: []string{"a=1"}, NoColor: true}
	cfg := flags.ToConfigFlags()

	assert.Equal(t, "specs", cfg.Dir)
	assert.Equal(t, "mjs", cfg.Extension)
	assert.Equal(t, []string{"a=1"}, cfg.Set)
	assert.True(t, cfg.NoColor)

	flags.Set[0] = "changed"
	assert.Equal(t, "a=1", cfg.Set[0])
}
