package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"ptx/internal/collector"
	"ptx/internal/config"
	"ptx/internal/domain"
)

// RunResult is one executed test, classified and ready to hand to the
// collector.
type RunResult struct {
	Event collector.Event
	Kind  domain.OutcomeKind
	Cause error                 // underlying error for error/skip outcomes
	Exc   *domain.ExceptionInfo // payload for any non-success outcome
}

// Runner executes a single test id by running the configured command with
// the id appended as its last argument.
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes one test and classifies the result: exit 0 is a pass, the
// configured skip exit code is a skip, any other exit is a failure, and a
// command that could not run at all is an error.
func (r *Runner) Run(ctx context.Context, testID string) RunResult {
	argv := r.config.Command
	started := time.Now()

	if len(argv) == 0 {
		cause := errors.New("no test command configured")
		return RunResult{
			Event: collector.Event{ID: testID, Started: started},
			Kind:  domain.KindError,
			Cause: cause,
			Exc:   &domain.ExceptionInfo{Type: "ConfigError", Message: cause.Error()},
		}
	}

	cmd := exec.CommandContext(ctx, argv[0], append(append([]string{}, argv[1:]...), testID)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	ev := collector.Event{
		ID:      testID,
		Started: started,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if err == nil {
		return RunResult{Event: ev, Kind: domain.KindSuccess}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == r.config.SkipExitCode {
			cause := &domain.SkipError{Reason: firstLine(stderr.String())}
			return RunResult{
				Event: ev,
				Kind:  domain.KindSkipped,
				Cause: cause,
				Exc:   &domain.ExceptionInfo{Type: "SkipError", Message: cause.Reason, Traceback: stderr.String()},
			}
		}
		return RunResult{
			Event: ev,
			Kind:  domain.KindFailure,
			Exc: &domain.ExceptionInfo{
				Type:      "TestFailure",
				Message:   fmt.Sprintf("%s exited with code %d", argv[0], exitErr.ExitCode()),
				Traceback: stderr.String(),
			},
		}
	}

	// The command never ran: genuine error, not a test failure.
	return RunResult{
		Event: ev,
		Kind:  domain.KindError,
		Cause: err,
		Exc:   &domain.ExceptionInfo{Type: "ExecError", Message: err.Error()},
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
