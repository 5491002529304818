package domain

import "time"

// OutcomeKind classifies how a single test finished
type OutcomeKind int

const (
	KindSuccess OutcomeKind = iota
	KindFailure
	KindError
	KindSkipped
)

// String returns the xunit element name used for the outcome's child element
func (k OutcomeKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	case KindError:
		return "error"
	case KindSkipped:
		return "skipped"
	}
	return "unknown"
}

// ExceptionInfo carries the failure/error payload attached to an outcome
type ExceptionInfo struct {
	Type      string // Exception type name, e.g. "AssertionError"
	Message   string // Short message
	Traceback string // Formatted traceback text, may span many lines
}

// TestOutcome represents the result of executing a single test case
type TestOutcome struct {
	ID       string        // Hierarchical test id, e.g. "pkg.Class.method"
	Kind     OutcomeKind   // How the test finished
	Started  time.Time     // When the test started; zero if never recorded
	Duration time.Duration // Time taken to execute
	Exc      *ExceptionInfo
	Stdout   string // Captured standard output, empty if none
	Stderr   string // Captured standard error, empty if none
}
