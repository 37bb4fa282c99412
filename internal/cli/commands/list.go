package commands

import (
	"vmtest/internal/config"
	"vmtest/internal/discovery"
	"vmtest/internal/domain"
	"vmtest/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	filter *discovery.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *discovery.Filter) *ListCommand {
	return &ListCommand{
		config: cfg,
		filter: filter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := discover(lc.config, lc.filter)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No tests found")
		return nil
	}

	tests := make([]domain.TestCase, 0, len(files))
	for _, file := range files {
		tests = append(tests, domain.NewTestCase(file))
	}
	ui.NewFormatter(cmd.OutOrStdout()).PrintTestList(tests)
	return nil
}
