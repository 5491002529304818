package execution

// Scheduler distributes test ids across workers
type Scheduler interface {
	Schedule(tests []string, workerCount int) [][]string
}

// RoundRobinScheduler distributes tests evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes test ids evenly across workers using round-robin.
// Within a shard the input order is preserved, so each worker emits its
// fragments in a deterministic local order.
func (s *RoundRobinScheduler) Schedule(tests []string, workerCount int) [][]string {
	if workerCount <= 0 {
		workerCount = 1
	}

	shards := make([][]string, workerCount)
	for i := range shards {
		shards[i] = make([]string, 0)
	}

	for i, test := range tests {
		shards[i%workerCount] = append(shards[i%workerCount], test)
	}

	return shards
}
