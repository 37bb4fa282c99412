package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vmtest/internal/cli"
	"vmtest/internal/cli/commands"
	"vmtest/internal/config"
)

var version = "dev"

func main() {
	// Cancelling interrupts the running test and fails the rest of the run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	rootCmd := commands.NewRootCommand(version, cfg, &flags)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !cli.Silent(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
