package domain

// Counter names understood by the aggregate store.
const (
	CounterErrors   = "errors"
	CounterFailures = "failures"
	CounterPasses   = "passes"
	CounterSkipped  = "skipped"
)

// Counters holds the aggregate tallies for a test run
type Counters struct {
	Errors   int `json:"errors"`
	Failures int `json:"failures"`
	Passes   int `json:"passes"`
	Skipped  int `json:"skipped"`
}

// Total returns the number of tests recorded so far
func (c Counters) Total() int {
	return c.Errors + c.Failures + c.Passes + c.Skipped
}

// Add bumps the named counter by n. Unknown names are ignored.
func (c *Counters) Add(name string, n int) {
	switch name {
	case CounterErrors:
		c.Errors += n
	case CounterFailures:
		c.Failures += n
	case CounterPasses:
		c.Passes += n
	case CounterSkipped:
		c.Skipped += n
	}
}

// Snapshot is a consistent read of the store taken after all workers joined
type Snapshot struct {
	Fragments []string `json:"fragments"`
	Counters  Counters `json:"counters"`
}
