package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yourusername/borders/internal/models"
)

// Connection is one line-oriented session with the daemon socket.
// Requests on a Connection must not overlap.
type Connection struct {
	socketPath string
	timeout    time.Duration

	conn   net.Conn
	reader *bufio.Reader
}

// NewConnection returns an unconnected Connection
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{socketPath: socketPath, timeout: timeout}
}

// Connect dials the socket, giving up after the connection timeout
func (c *Connection) Connect() error {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection if it is open
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.reader = nil, nil
	return err
}

// IsConnected reports whether Connect succeeded and Close was not called
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}

// SendRequest writes req and reads the matching response.
// The exchange is bounded by ctx and by the connection timeout,
// whichever ends first.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	if req.Request == nil {
		return nil, errors.New("envelope has no request")
	}
	if c.conn == nil {
		return nil, errors.New("not connected")
	}

	data, err := req.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && (c.timeout <= 0 || d.Before(deadline)) {
		deadline = d
	} else if c.timeout <= 0 {
		deadline = time.Time{}
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	// Cancellation unblocks the read by expiring the deadline.
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err := c.conn.Write(data); err != nil {
		return nil, c.ioError(ctx, "write request", err)
	}

	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, c.ioError(ctx, "read response", err)
	}
	return decodeResponse(line, req.Request.ID)
}

func (c *Connection) ioError(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// decodeResponse parses one envelope line and checks it answers id
func decodeResponse(line []byte, id string) (*models.Response, error) {
	var env models.MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	switch {
	case env.Type != models.TypeResponse:
		return nil, fmt.Errorf("expected response, got %s", env.Type)
	case env.Response == nil:
		return nil, errors.New("response envelope has nil response")
	case env.Response.ID != id:
		return nil, fmt.Errorf("response id %q does not match request %q", env.Response.ID, id)
	}
	return env.Response, nil
}
