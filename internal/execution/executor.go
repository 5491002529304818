package execution

import (
	"context"
	"time"
)

// Executor executes a set of tests and aggregates their outcomes
type Executor interface {
	Execute(ctx context.Context, tests []string) (time.Duration, error)
}
