package execution

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ptx/internal/collector"
	"ptx/internal/config"
	"ptx/internal/domain"
)

type memoryStore struct {
	fragments []string
	counters  domain.Counters
}

func (m *memoryStore) Append(fragment string) error {
	m.fragments = append(m.fragments, fragment)
	return nil
}

func (m *memoryStore) Increment(counter string, by int) error {
	m.counters.Add(counter, by)
	return nil
}

func (m *memoryStore) Snapshot() (domain.Snapshot, error) {
	return domain.Snapshot{Fragments: m.fragments, Counters: m.counters}, nil
}

func TestWorker_RunShard(t *testing.T) {
	cfg := config.New()
	// The shell script keys off the test id passed as its last argument.
	cfg.Command = []string{"/bin/sh", "-c", `case "$1" in *fail*) exit 1;; *skip*) exit 77;; *) exit 0;; esac`, "runner"}

	st := &memoryStore{}
	worker := NewWorker(NewRunner(cfg), collector.New(st), zap.NewNop().Sugar())

	shard := []string{"suite.T.test_ok", "suite.T.test_fail", "suite.T.test_skip", "suite.T.test_ok2"}
	require.NoError(t, worker.Run(context.Background(), shard))

	require.Equal(t, 2, st.counters.Passes)
	require.Equal(t, 1, st.counters.Failures)
	require.Equal(t, 1, st.counters.Skipped)
	require.Equal(t, 0, st.counters.Errors)
	require.Len(t, st.fragments, len(shard))

	// Local emission order is the shard order.
	for i, id := range shard {
		name := id[strings.LastIndex(id, ".")+1:]
		require.Contains(t, st.fragments[i], `name="`+name+`"`)
	}
}
