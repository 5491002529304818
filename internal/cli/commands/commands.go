package commands

import (
	"ptx/internal/cli"
	"ptx/internal/config"
	"ptx/internal/execution"
	"ptx/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	Worker *WorkerCommand
	Faills *FaillsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scheduler := execution.NewRoundRobinScheduler()
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg)

	return &Commands{
		Run:    NewRunCommand(cfg, scheduler, formatter),
		Worker: NewWorkerCommand(cfg),
		Faills: NewFaillsCommand(cfg, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		newCfg := config.Load(cfg.Flags)
		*cfg = *newCfg
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [test ids] -- <command> [args]",
		Short: "Run tests across worker processes and write one xunit report",
		Long: "Shard the given test ids across parallel worker processes, run the " +
			"command once per test id, and aggregate every outcome into a single " +
			"xunit XML report.",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "p", config.DefaultWorkers, "Number of worker processes to use")
	runCmd.Flags().StringVarP(&flags.ReportFile, "xunit-file", "x", "", "Path to the xunit report file (default "+config.DefaultReportFile+" in the working directory, or $"+config.EnvReportFile+")")
	runCmd.Flags().StringVar(&flags.Encoding, "encoding", "", "Encoding name written in the XML prologue")
	runCmd.Flags().StringVar(&flags.SuiteName, "suite-name", "", "Value of the testsuite name attribute")
	runCmd.Flags().IntVar(&flags.SkipExitCode, "skip-exit", config.DefaultSkipExitCode, "Exit code a test command uses to signal a skip")
	runCmd.Flags().StringVarP(&flags.TestsFile, "tests-file", "f", "", "File with one test id per line (\"-\" reads stdin)")
	runCmd.Flags().CountVarP(&flags.Verbosity, "verbose", "v", "Increase verbosity (repeatable)")
	rootCmd.AddCommand(runCmd)

	// Worker command (spawned by run, not meant for direct use)
	workerCmd := &cobra.Command{
		Use:     "worker -- <command> [args]",
		Short:   "Execute one shard of tests against the published store",
		Hidden:  true,
		RunE:    c.Worker.Execute,
		PreRunE: applyFlags,
	}
	workerCmd.Flags().IntVar(&flags.WorkerID, "worker-id", 0, "Worker number within the run")
	workerCmd.Flags().IntVar(&flags.SkipExitCode, "skip-exit", config.DefaultSkipExitCode, "Exit code a test command uses to signal a skip")
	workerCmd.Flags().CountVarP(&flags.Verbosity, "verbose", "v", "Increase verbosity (repeatable)")
	rootCmd.AddCommand(workerCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:     "faills",
		Short:   "View test failures interactively",
		Long:    "Display failing test cases from the last written xunit report in an interactive viewer",
		RunE:    c.Faills.Execute,
		PreRunE: applyFlags,
	}
	faillsCmd.Flags().StringVarP(&flags.ReportFile, "xunit-file", "x", "", "Path to the xunit report file to read")
	rootCmd.AddCommand(faillsCmd)
}
