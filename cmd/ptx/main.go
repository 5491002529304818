package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ptx/internal/cli"
	"ptx/internal/cli/commands"
	"ptx/internal/config"
)

var version = "dev"

func main() {
	// Optional .env file supplies env-var defaults (report path, encoding).
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "ptx",
		Short: "Parallel test runner with a single xunit report",
		Long: `ptx shards test execution across parallel worker processes and aggregates
every test case outcome into one consolidated xunit XML report, regardless of
which worker produced it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
