package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ptx/internal/collector"
	"ptx/internal/config"
	"ptx/internal/execution"
	"ptx/internal/logging"
	"ptx/internal/store"
)

// WorkerCommand handles the hidden worker command spawned by run. It reads
// its shard of test ids from stdin, executes them sequentially, and reports
// every outcome to the aggregate store published in the environment.
type WorkerCommand struct {
	config *config.Config
}

// NewWorkerCommand creates a new WorkerCommand
func NewWorkerCommand(cfg *config.Config) *WorkerCommand {
	return &WorkerCommand{config: cfg}
}

// Execute runs the command
func (wc *WorkerCommand) Execute(cmd *cobra.Command, args []string) error {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		wc.config.Command = args[dash:]
	}

	addr := os.Getenv(store.EnvAddr)
	if addr == "" {
		return fmt.Errorf("no aggregate store published in $%s; worker is spawned by run", store.EnvAddr)
	}

	logger := logging.New(wc.config.Verbosity).With("worker", wc.config.Flags.WorkerID)
	defer logger.Sync()

	client, err := store.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	var tests []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			tests = append(tests, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read test ids: %w", err)
	}

	worker := execution.NewWorker(
		execution.NewRunner(wc.config),
		collector.New(client),
		logger,
	)
	return worker.Run(cmd.Context(), tests)
}
