package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ptx/internal/store"
	"ptx/internal/xunit"
)

// Finalizer writes the consolidated xunit report. It must run exactly once
// per run, by the coordinating process, after every worker has joined.
type Finalizer struct {
	store     store.Store
	suiteName string
	verbosity int
	status    io.Writer
}

// NewFinalizer creates a Finalizer over the run's store handle
func NewFinalizer(st store.Store, suiteName string, verbosity int, status io.Writer) *Finalizer {
	if status == nil {
		status = os.Stderr
	}
	return &Finalizer{store: st, suiteName: suiteName, verbosity: verbosity, status: status}
}

// Finalize snapshots the aggregate state and writes the complete XML
// document to path. Any I/O failure propagates to the caller; a truncated
// or missing report is never papered over.
func (f *Finalizer) Finalize(path, encoding string) error {
	snap, err := f.store.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot aggregate state: %w", err)
	}

	c := snap.Counters
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="%s"?>`, encoding)
	fmt.Fprintf(&b, `<testsuite name=%s tests="%d" errors="%d" failures="%d" skip="%d">`,
		xunit.QuoteAttr(f.suiteName), c.Total(), c.Errors, c.Failures, c.Skipped)
	for _, fragment := range snap.Fragments {
		b.WriteString(fragment)
	}
	b.WriteString("</testsuite>")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if f.verbosity > 1 {
		fmt.Fprintln(f.status, strings.Repeat("-", 70))
		fmt.Fprintf(f.status, "XML: %s\n", path)
	}
	return nil
}
