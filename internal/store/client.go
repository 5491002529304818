package store

import (
	"fmt"
	"net"
	"sync"

	"ptx/internal/domain"
)

// Client is a worker's proxy to the run's aggregate store. Every call is a
// synchronous round trip, so a worker's updates are durable in the store
// before the call returns and never outlive the worker unsent.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// Dial attaches to the aggregate store published at the given socket path
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("dial store at %s: %w", path, err)
	}
	return &Client{conn: conn}, nil
}

// Append adds one fragment to the shared sequence
func (c *Client) Append(fragment string) error {
	_, err := c.roundTrip(msgAppend, appendPayload{Fragment: fragment})
	return err
}

// Increment atomically adds to one named counter
func (c *Client) Increment(counter string, by int) error {
	_, err := c.roundTrip(msgIncrement, incrementPayload{Counter: counter, By: by})
	return err
}

// Snapshot reads the current aggregate state
func (c *Client) Snapshot() (domain.Snapshot, error) {
	snap, err := c.roundTrip(msgSnapshot, nil)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return *snap, nil
}

// Close releases the connection to the store
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) roundTrip(msgType byte, payload any) (*domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := sendMessage(c.conn, msgType, payload); err != nil {
		return nil, err
	}
	replyType, replyPayload, err := readMessage(c.conn)
	if err != nil {
		return nil, fmt.Errorf("read store reply: %w", err)
	}
	return decodeReply(replyType, replyPayload)
}
