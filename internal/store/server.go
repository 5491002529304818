package store

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"go.uber.org/zap"

	"ptx/internal/domain"
)

// Server owns the true aggregate state for one test run: the ordered
// fragment sequence and the named counters. It listens on a unix domain
// socket; every worker process holds a Client proxy to it. All mutation
// goes through the connection handlers, so the mutex only guards the short
// in-memory update.
type Server struct {
	path     string
	listener net.Listener
	logger   *zap.SugaredLogger
	stopCh   chan struct{}

	mu        sync.Mutex
	fragments []string
	counters  domain.Counters
}

// Listen creates the run's aggregate store and starts accepting worker
// connections on a unix socket at path.
func Listen(path string, logger *zap.SugaredLogger) (*Server, error) {
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on store socket: %w", err)
	}

	s := &Server{
		path:     path,
		listener: listener,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
	go s.acceptConnections()
	s.logger.Infow("aggregate store listening", "path", path)
	return s, nil
}

// Addr returns the socket path workers should dial
func (s *Server) Addr() string {
	return s.path
}

// Append adds one fragment to the end of the shared sequence
func (s *Server) Append(fragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments = append(s.fragments, fragment)
	return nil
}

// Increment atomically adds to one named counter
func (s *Server) Increment(counter string, by int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters.Add(counter, by)
	return nil
}

// Snapshot returns a consistent copy of the current state. Callers invoke it
// only after all workers have joined, at which point counters and fragments
// agree.
func (s *Server) Snapshot() (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fragments := make([]string, len(s.fragments))
	copy(fragments, s.fragments)
	return domain.Snapshot{Fragments: fragments, Counters: s.counters}, nil
}

// Close stops accepting connections and removes the socket file. The process
// that started the store owns its teardown.
func (s *Server) Close() error {
	close(s.stopCh)
	err := s.listener.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}

func (s *Server) acceptConnections() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				s.logger.Errorw("accept worker connection", "error", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

// handleConnection serves one worker's proxy for the lifetime of the worker.
// Each request is answered before the next is read, so a worker's own
// fragments land in its local emission order.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	for {
		msgType, payload, err := readMessage(conn)
		if err != nil {
			if err != io.EOF {
				s.logger.Errorw("read store message", "error", err)
			}
			return
		}

		reply := func(t byte, v any) {
			if err := sendMessage(conn, t, v); err != nil {
				s.logger.Errorw("write store reply", "error", err)
			}
		}

		switch msgType {
		case msgAppend:
			var ap appendPayload
			if err := json.Unmarshal(payload, &ap); err != nil {
				reply(msgError, errorPayload{Message: "bad append payload: " + err.Error()})
				continue
			}
			s.Append(ap.Fragment)
			reply(msgAck, nil)

		case msgIncrement:
			var ip incrementPayload
			if err := json.Unmarshal(payload, &ip); err != nil {
				reply(msgError, errorPayload{Message: "bad increment payload: " + err.Error()})
				continue
			}
			s.Increment(ip.Counter, ip.By)
			reply(msgAck, nil)

		case msgSnapshot:
			snap, _ := s.Snapshot()
			reply(msgSnapshot, snap)

		default:
			reply(msgError, errorPayload{Message: fmt.Sprintf("unknown message type: %x", msgType)})
		}
	}
}
