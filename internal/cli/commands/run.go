package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptx/internal/config"
	"ptx/internal/execution"
	"ptx/internal/logging"
	"ptx/internal/report"
	"ptx/internal/store"
	"ptx/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scheduler execution.Scheduler
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, scheduler execution.Scheduler, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{config: cfg, scheduler: scheduler, formatter: formatter}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	tests, err := rc.splitArgs(cmd, args)
	if err != nil {
		return err
	}
	if len(rc.config.Command) == 0 {
		return fmt.Errorf("no test command given; pass it after \"--\"")
	}
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	logger := logging.New(rc.config.Verbosity)
	defer logger.Sync()

	// The coordinating process owns the run's aggregate store and its
	// teardown.
	srv, err := store.Listen(store.SocketPath(), logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	pool := execution.NewPool(rc.config, rc.scheduler, srv, logger)
	progressBar := ui.NewProgressBar(len(tests))
	pool.SetProgress(progressBar)

	duration, err := pool.Execute(cmd.Context(), tests)
	if err != nil {
		return err
	}

	// All workers have joined: the store is quiescent and the snapshot is
	// consistent. Finalize runs exactly once, here.
	finalizer := report.NewFinalizer(srv, rc.config.SuiteName, rc.config.Verbosity, os.Stderr)
	if err := finalizer.Finalize(rc.config.GetReportPath(), rc.config.Encoding); err != nil {
		return err
	}

	snap, err := srv.Snapshot()
	if err != nil {
		return err
	}
	rc.formatter.PrintSummary(snap.Counters, duration, rc.config.Workers)

	if failing := snap.Counters.Failures + snap.Counters.Errors; failing > 0 {
		return fmt.Errorf("%d test(s) did not pass", failing)
	}
	return nil
}

// splitArgs separates test ids from the test command (everything after
// "--") and merges in ids from the tests file, preserving order.
func (rc *RunCommand) splitArgs(cmd *cobra.Command, args []string) ([]string, error) {
	ids := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		ids = args[:dash]
		rc.config.Command = args[dash:]
	}

	if rc.config.Flags.TestsFile != "" {
		fromFile, err := readTestIDs(rc.config.Flags.TestsFile)
		if err != nil {
			return nil, err
		}
		ids = append(append([]string{}, ids...), fromFile...)
	}
	return ids, nil
}

// readTestIDs reads one test id per line, skipping blanks; "-" reads stdin
func readTestIDs(path string) ([]string, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open tests file: %w", err)
		}
		defer f.Close()
	}

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tests file: %w", err)
	}
	return ids, nil
}
