package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ptx/internal/config"
	"ptx/internal/store"
	"ptx/internal/ui"
)

// Pool shards tests across worker OS processes. Each worker is a re-exec of
// this binary running the worker subcommand; it attaches to the run's
// aggregate store through the address published in its environment. The pool
// polls the store while workers run to drive the progress bar.
type Pool struct {
	config    *config.Config
	scheduler Scheduler
	srv       *store.Server
	logger    *zap.SugaredLogger
	progress  *ui.ProgressBar
}

// NewPool creates a new Pool over the run's store server
func NewPool(cfg *config.Config, scheduler Scheduler, srv *store.Server, logger *zap.SugaredLogger) *Pool {
	return &Pool{config: cfg, scheduler: scheduler, srv: srv, logger: logger}
}

// SetProgress sets the progress bar for the pool
func (p *Pool) SetProgress(progress *ui.ProgressBar) {
	p.progress = progress
}

// Execute runs all tests across worker processes and blocks until every
// worker has joined. When it returns without error the store is quiescent
// and safe to snapshot.
func (p *Pool) Execute(ctx context.Context, tests []string) (time.Duration, error) {
	if len(tests) == 0 {
		return 0, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("resolve own executable: %w", err)
	}

	workerCount := p.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}
	shards := p.scheduler.Schedule(tests, workerCount)

	startTime := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	for i, shard := range shards {
		if len(shard) == 0 {
			continue
		}
		workerID := i + 1
		shard := shard

		g.Go(func() error {
			args := []string{
				"worker",
				"--worker-id", strconv.Itoa(workerID),
				"--skip-exit", strconv.Itoa(p.config.SkipExitCode),
			}
			for v := 0; v < p.config.Verbosity; v++ {
				args = append(args, "--verbose")
			}
			args = append(args, "--")
			args = append(args, p.config.Command...)

			cmd := exec.CommandContext(ctx, exe, args...)
			cmd.Env = append(os.Environ(), store.EnvAddr+"="+p.srv.Addr())
			cmd.Stdin = strings.NewReader(strings.Join(shard, "\n") + "\n")
			cmd.Stderr = os.Stderr

			p.logger.Debugw("spawning worker", "worker", workerID, "tests", len(shard))
			if err := cmd.Run(); err != nil {
				return fmt.Errorf("worker %d: %w", workerID, err)
			}
			return nil
		})
	}

	stopPolling := p.pollProgress()
	err = g.Wait()
	stopPolling()

	if p.progress != nil {
		p.progress.Finish()
	}
	return time.Since(startTime), err
}

// pollProgress refreshes the progress bar from store counters until the
// returned stop function is called.
func (p *Pool) pollProgress() func() {
	if p.progress == nil {
		return func() {}
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if snap, err := p.srv.Snapshot(); err == nil {
					p.progress.Update(snap.Counters)
				}
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		// One final refresh so the bar lands on the true totals.
		if snap, err := p.srv.Snapshot(); err == nil {
			p.progress.Update(snap.Counters)
		}
	}
}
