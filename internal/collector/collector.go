package collector

import (
	"fmt"
	"time"

	"ptx/internal/domain"
	"ptx/internal/store"
	"ptx/internal/xunit"
)

// Event is what the execution engine hands to a collector entry point once
// per test.
type Event struct {
	ID      string    // Hierarchical test id
	Started time.Time // Zero when setup failed before timing began
	Stdout  string    // Captured standard output
	Stderr  string    // Captured standard error
}

// Collector receives outcome events on the worker that ran the test, formats
// one fragment per event, and pushes the fragment plus one counter increment
// into the shared aggregate store.
type Collector struct {
	store store.Store
	now   func() time.Time
}

// New creates a Collector backed by the given store handle
func New(st store.Store) *Collector {
	return &Collector{store: st, now: time.Now}
}

// OnSuccess records a passing test
func (c *Collector) OnSuccess(ev Event) error {
	outcome := c.outcome(ev, domain.KindSuccess, nil)
	if err := c.store.Increment(domain.CounterPasses, 1); err != nil {
		return fmt.Errorf("record pass: %w", err)
	}
	return c.append(outcome)
}

// OnFailure records a test that ran and failed its assertions
func (c *Collector) OnFailure(ev Event, exc domain.ExceptionInfo) error {
	outcome := c.outcome(ev, domain.KindFailure, &exc)
	if err := c.store.Increment(domain.CounterFailures, 1); err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return c.append(outcome)
}

// OnError records a test that raised outside its assertions. A skip signal
// is reclassified as a skip rather than counted as a genuine error.
func (c *Collector) OnError(ev Event, cause error, exc domain.ExceptionInfo) error {
	kind := domain.KindError
	counter := domain.CounterErrors
	if domain.IsSkip(cause) {
		kind = domain.KindSkipped
		counter = domain.CounterSkipped
	}

	outcome := c.outcome(ev, kind, &exc)
	if err := c.store.Increment(counter, 1); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	return c.append(outcome)
}

func (c *Collector) append(outcome domain.TestOutcome) error {
	if err := c.store.Append(xunit.Testcase(outcome)); err != nil {
		return fmt.Errorf("append fragment: %w", err)
	}
	return nil
}

// outcome computes elapsed time as now minus the recorded start. When no
// start was recorded the start falls back to now, which reports a near-zero
// duration for tests whose setup failed before timing began.
func (c *Collector) outcome(ev Event, kind domain.OutcomeKind, exc *domain.ExceptionInfo) domain.TestOutcome {
	started := ev.Started
	if started.IsZero() {
		started = c.now()
	}
	return domain.TestOutcome{
		ID:       ev.ID,
		Kind:     kind,
		Started:  started,
		Duration: c.now().Sub(started),
		Exc:      exc,
		Stdout:   ev.Stdout,
		Stderr:   ev.Stderr,
	}
}
