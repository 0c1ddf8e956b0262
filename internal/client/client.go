package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/borders/internal/message"
	"github.com/yourusername/borders/internal/models"
)

const DefaultTimeout = 5 * time.Second

// ErrFailure wraps every reply the daemon marked as failed.
var ErrFailure = errors.New("daemon rejected message")

// Client talks to a running borders daemon
type Client struct {
	conn *Connection
}

// NewClient creates a new client for the socket at socketPath
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the daemon
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, args []string) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, args)
	return c.conn.SendRequest(ctx, req)
}

// Send delivers one message and returns the daemon's text output.
// Replies carrying the failure marker are returned as errors wrapping
// ErrFailure.
func (c *Client) Send(ctx context.Context, args ...string) (string, error) {
	resp, err := c.request(ctx, models.MethodMessage, args)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		if resp.Error.Code == models.CodeFailure {
			return "", fmt.Errorf("%w: %s", ErrFailure, message.TrimFailure(resp.GetError()))
		}
		return "", fmt.Errorf("server error: %s", resp.GetError())
	}

	return resp.Output, nil
}

// DebugOutput reads the daemon's verbose flag
func (c *Client) DebugOutput(ctx context.Context) (bool, error) {
	out, err := c.Send(ctx, message.DomainConfig, message.CommandDebugOutput)
	if err != nil {
		return false, err
	}
	return out == message.ValueOn+"\n", nil
}

// SetDebugOutput sets the daemon's verbose flag
func (c *Client) SetDebugOutput(ctx context.Context, on bool) error {
	value := message.ValueOff
	if on {
		value = message.ValueOn
	}
	_, err := c.Send(ctx, message.DomainConfig, message.CommandDebugOutput, value)
	return err
}

// Status retrieves the daemon snapshot
func (c *Client) Status(ctx context.Context) (*models.Status, error) {
	out, err := c.Send(ctx, message.DomainQuery, message.CommandState)
	if err != nil {
		return nil, err
	}

	var st models.Status
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &st, nil
}
