package ui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vmtest/internal/domain"
)

// Formatter renders discovered tests
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintTestList prints a table of tests in run order
func (f *Formatter) PrintTestList(tests []domain.TestCase) {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.AppendHeader(table.Row{"#", "Name", "Path"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Path", WidthMax: 120, WidthMaxEnforcer: text.WrapSoft},
	})
	for i, test := range tests {
		t.AppendRow(table.Row{i + 1, test.Name, test.Path})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d test(s)", len(tests)), ""})
	t.SetStyle(table.StyleLight)
	t.Render()
}
