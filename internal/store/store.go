package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ptx/internal/domain"
)

// EnvAddr is the environment variable that publishes the store's socket path
// to spawned worker processes.
const EnvAddr = "PTX_STORE_ADDR"

// Store is the handle every collector and the finalizer hold on the run's
// shared aggregate state. The Server is the in-process view held by the
// coordinating process; Client is the cross-process proxy held by workers.
type Store interface {
	Append(fragment string) error
	Increment(counter string, by int) error
	Snapshot() (domain.Snapshot, error)
}

// SocketPath returns a fresh per-run socket path under the system temp dir
func SocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("ptx-%s.sock", uuid.NewString()[:8]))
}

// Ensure initializes the run's store exactly once. If a store address has
// already been published for this run it attaches to it; otherwise it starts
// a new server and publishes its address for subsequently spawned processes.
// The returned Server is nil when attaching; whoever receives a non-nil
// Server owns its teardown.
func Ensure(logger *zap.SugaredLogger) (Store, *Server, error) {
	if addr := os.Getenv(EnvAddr); addr != "" {
		client, err := Dial(addr)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	}

	srv, err := Listen(SocketPath(), logger)
	if err != nil {
		return nil, nil, err
	}
	if err := os.Setenv(EnvAddr, srv.Addr()); err != nil {
		srv.Close()
		return nil, nil, fmt.Errorf("publish store address: %w", err)
	}
	return srv, srv, nil
}
