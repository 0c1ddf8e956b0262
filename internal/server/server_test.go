package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/borders/internal/client"
	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/message"
	"github.com/yourusername/borders/internal/models"
)

// directLoop runs calls inline.
type directLoop struct{}

func (directLoop) Call(ctx context.Context, fn func()) error {
	fn()
	return nil
}

type stoppedLoop struct{}

func (stoppedLoop) Call(ctx context.Context, fn func()) error {
	return errors.New("run loop stopped")
}

type staticStatus models.Status

func (s staticStatus) Status() models.Status { return models.Status(s) }

// socketPath stays short enough for sun_path on every platform.
func socketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "brd")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

func startServer(t *testing.T, loop Caller, h Handler) (*Server, string) {
	t.Helper()
	path := socketPath(t)
	srv := New(path, loop, h)
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Serve did not return")
		}
	})
	return srv, path
}

func TestDebugOutputRoundTrip(t *testing.T) {
	t.Cleanup(func() { logging.SetVerbose(false) })
	_, path := startServer(t, directLoop{}, message.NewHandler(staticStatus{}))

	c := client.NewClient(path, time.Second)
	defer c.Close()
	ctx := context.Background()

	if err := c.SetDebugOutput(ctx, true); err != nil {
		t.Fatalf("SetDebugOutput(true) error: %v", err)
	}
	if !logging.Verbose() {
		t.Error("verbose flag not set by command")
	}

	on, err := c.DebugOutput(ctx)
	if err != nil {
		t.Fatalf("DebugOutput() error: %v", err)
	}
	if !on {
		t.Error("DebugOutput() = false, want true")
	}

	if err := c.SetDebugOutput(ctx, false); err != nil {
		t.Fatal(err)
	}
	if logging.Verbose() {
		t.Error("verbose flag still set")
	}
}

func TestFailureReply(t *testing.T) {
	_, path := startServer(t, directLoop{}, message.NewHandler(staticStatus{}))

	c := client.NewClient(path, time.Second)
	defer c.Close()

	_, err := c.Send(context.Background(), "config", "debug_output", "loud")
	if !errors.Is(err, client.ErrFailure) {
		t.Fatalf("Send() error = %v, want ErrFailure", err)
	}
	want := "unknown value 'loud' given to command 'debug_output' for domain 'config'"
	if !strings.HasSuffix(err.Error(), want) {
		t.Errorf("error = %q, want suffix %q", err, want)
	}
}

func TestStatusQuery(t *testing.T) {
	_, path := startServer(t, directLoop{}, message.NewHandler(staticStatus{State: "suspended", Overview: true}))

	c := client.NewClient(path, time.Second)
	defer c.Close()

	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if st.State != "suspended" || !st.Overview {
		t.Errorf("Status() = %+v", st)
	}
}

func TestStoppedLoop(t *testing.T) {
	_, path := startServer(t, stoppedLoop{}, message.NewHandler(staticStatus{}))

	c := client.NewClient(path, time.Second)
	defer c.Close()

	_, err := c.Send(context.Background(), "config", "debug_output")
	if err == nil || errors.Is(err, client.ErrFailure) {
		t.Fatalf("Send() error = %v, want server error", err)
	}
}

func TestListenRejectsLiveSocket(t *testing.T) {
	_, path := startServer(t, directLoop{}, message.NewHandler(staticStatus{}))

	second := New(path, directLoop{}, message.NewHandler(staticStatus{}))
	if err := second.Listen(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Listen() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	path := socketPath(t)
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}

	srv := New(path, directLoop{}, message.NewHandler(staticStatus{}))
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen() error: %v", err)
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("socket file left behind after Close")
	}
}
