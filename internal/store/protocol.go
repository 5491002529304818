package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"ptx/internal/domain"
)

// Wire protocol constants
const (
	magicNumber uint16 = 0x7E57

	// Message types
	msgAppend    byte = 0x01
	msgIncrement byte = 0x02
	msgSnapshot  byte = 0x03
	msgAck       byte = 0x04
	msgError     byte = 0x05
)

type appendPayload struct {
	Fragment string `json:"fragment"`
}

type incrementPayload struct {
	Counter string `json:"counter"`
	By      int    `json:"by"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// sendMessage writes one framed message: a fixed header (magic, type,
// payload length) followed by a JSON payload.
func sendMessage(conn net.Conn, msgType byte, v any) error {
	var payload []byte
	if v != nil {
		var err error
		payload, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
	}

	header := make([]byte, 8)
	binary.BigEndian.PutUint16(header[0:2], magicNumber)
	header[2] = msgType
	header[3] = 0 // Reserved
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))

	if _, err := conn.Write(header); err != nil {
		return fmt.Errorf("write message header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := conn.Write(payload); err != nil {
			return fmt.Errorf("write message payload: %w", err)
		}
	}
	return nil
}

// readMessage reads one framed message from a connection
func readMessage(conn net.Conn) (byte, []byte, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(conn, header); err != nil {
		return 0, nil, err
	}

	magic := binary.BigEndian.Uint16(header[0:2])
	msgType := header[2]
	payloadLen := binary.BigEndian.Uint32(header[4:8])

	if magic != magicNumber {
		return 0, nil, fmt.Errorf("invalid magic number: %x", magic)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(conn, payload); err != nil {
		return 0, nil, err
	}
	return msgType, payload, nil
}

// decodeReply turns an ack/error/snapshot reply into its Go form
func decodeReply(msgType byte, payload []byte) (*domain.Snapshot, error) {
	switch msgType {
	case msgAck:
		return nil, nil
	case msgSnapshot:
		var snap domain.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		return &snap, nil
	case msgError:
		var ep errorPayload
		if err := json.Unmarshal(payload, &ep); err != nil {
			return nil, fmt.Errorf("decode error reply: %w", err)
		}
		return nil, fmt.Errorf("store: %s", ep.Message)
	}
	return nil, fmt.Errorf("unexpected reply type: %x", msgType)
}
