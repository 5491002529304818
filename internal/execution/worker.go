package execution

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ptx/internal/collector"
	"ptx/internal/domain"
)

// Worker runs one shard of tests sequentially inside a worker process,
// reporting every outcome to the shared store through its collector.
type Worker struct {
	runner    *Runner
	collector *collector.Collector
	logger    *zap.SugaredLogger
}

// NewWorker creates a Worker over a runner and a collector
func NewWorker(runner *Runner, c *collector.Collector, logger *zap.SugaredLogger) *Worker {
	return &Worker{runner: runner, collector: c, logger: logger}
}

// Run executes every test in the shard in order. A store error aborts the
// shard: outcomes that cannot reach the store must not be dropped silently.
func (w *Worker) Run(ctx context.Context, tests []string) error {
	for _, id := range tests {
		res := w.runner.Run(ctx, id)
		w.logger.Debugw("test finished", "id", id, "outcome", res.Kind.String())
		if err := w.report(res); err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}
	}
	return nil
}

// report dispatches one classified result to the matching collector entry
// point. Exactly one entry point fires per test.
func (w *Worker) report(res RunResult) error {
	switch res.Kind {
	case domain.KindSuccess:
		return w.collector.OnSuccess(res.Event)
	case domain.KindFailure:
		var exc domain.ExceptionInfo
		if res.Exc != nil {
			exc = *res.Exc
		}
		return w.collector.OnFailure(res.Event, exc)
	default:
		var exc domain.ExceptionInfo
		if res.Exc != nil {
			exc = *res.Exc
		}
		return w.collector.OnError(res.Event, res.Cause, exc)
	}
}
