package commands

import (
	"log/slog"

	"vmtest/internal/cli"
	"vmtest/internal/config"
	"vmtest/internal/discovery"
	"vmtest/internal/execution"
	"vmtest/internal/parser"
	"vmtest/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	executor := execution.NewExecutor(nil)
	scheduler := execution.NewScheduler(executor)
	traceParser := parser.NewTraceParser()
	errorViewer := ui.NewErrorViewer()

	return &Commands{
		Run:  NewRunCommand(cfg, filter, scheduler, traceParser, errorViewer),
		List: NewListCommand(cfg, filter),
	}
}

// NewRootCommand creates the root command with all subcommands registered
func NewRootCommand(version string, cfg *config.Config, flags *cli.Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vmtest",
		Short:         "Sandboxed JavaScript example runner",
		Long:          `Run JavaScript test files one at a time, each in a fresh sandboxed runtime with an assert function in scope, and report pass/fail results.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			*cfg = *config.Load(flags.ToConfigFlags())

			level := slog.LevelWarn
			if flags.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose logging to stderr")

	NewCommands(cfg).Register(rootCmd, flags)
	return rootCmd
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Run test files",
		Long: `Run the given test files in order. Without files, every file in the
examples directory (test/examples by default) with the test extension is run.

Exit status is 0 when all tests pass, 1 when any test fails and 2 when the
run could not start.`,
		RunE: c.Run.Execute,
	}
	addDiscoveryFlags(runCmd, flags)
	runCmd.Flags().StringVar(&flags.TransformPath, "transform", "", "JavaScript file defining transform(source, testName, filePath)")
	runCmd.Flags().StringVar(&flags.ContextFile, "context", "", "YAML file with values injected into every test scope")
	runCmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "dotenv file exposed to tests as the env object")
	runCmd.Flags().StringArrayVar(&flags.Set, "set", nil, "Inject a value into every test scope (key=value, repeatable)")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failure viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan the examples directory and list the tests that run would execute",
		RunE:  c.List.Execute,
	}
	addDiscoveryFlags(listCmd, flags)
	rootCmd.AddCommand(listCmd)
}

func addDiscoveryFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Dir, "dir", "d", "", "Directory to discover tests in (default \""+config.DefaultExamplesDir+"\")")
	cmd.Flags().StringVarP(&flags.Extension, "ext", "e", "", "Extension of test files (default \""+config.DefaultExtension+"\")")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. '*array*' or 'basic')")
}

// discover lists the test files of the configured examples directory
func discover(cfg *config.Config, filter *discovery.Filter) ([]string, error) {
	files, err := discovery.NewScanner(cfg.GetExtension()).Scan(cfg.GetExamplesPath())
	if err != nil {
		return nil, cli.WrapExitError(cli.ExitCommandError, "test discovery failed", err)
	}
	return filter.FilterByName(files, cfg.Flags.NameFilter), nil
}
