package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"vmtest/internal/domain"
)

func TestFormatter_PrintTestList(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).PrintTestList([]domain.TestCase{
		domain.NewTestCase("test/examples/arrays.js"),
		domain.NewTestCase("test/examples/basic.js"),
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "arrays")
	assert.Contains(t, out, "test/examples/basic.js")
	assert.Contains(t, out, "2 test(s)")
}
