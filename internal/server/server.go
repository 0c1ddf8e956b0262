// Package server accepts command messages on a Unix socket and answers them
// from the run loop.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/message"
	"github.com/yourusername/borders/internal/models"
)

// ErrAlreadyRunning is returned when another daemon answers on the socket.
var ErrAlreadyRunning = errors.New("another borders daemon is listening")

// Caller runs fn on the run loop and waits for it.
type Caller interface {
	Call(ctx context.Context, fn func()) error
}

// Handler answers one message.
type Handler interface {
	Handle(args []string) message.Reply
}

// Server owns the listening socket.
type Server struct {
	path    string
	loop    Caller
	handler Handler

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// New returns a server for the socket at path.
func New(path string, loop Caller, handler Handler) *Server {
	return &Server{
		path:    path,
		loop:    loop,
		handler: handler,
		conns:   make(map[net.Conn]struct{}),
	}
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Listen binds the socket, replacing a stale one left by a dead daemon.
func (s *Server) Listen() error {
	if _, err := os.Stat(s.path); err == nil {
		if conn, err := net.DialTimeout("unix", s.path, time.Second); err == nil {
			conn.Close()
			return fmt.Errorf("%w on %s", ErrAlreadyRunning, s.path)
		}
		if err := os.Remove(s.path); err != nil {
			return fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	logging.Info().Str("socket", s.path).Msg("command socket listening")
	return nil
}

// Serve accepts connections until ctx is cancelled or Close is called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("server is not listening")
	}

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.track(conn, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)
			s.handleConn(ctx, conn)
		}()
	}
}

// Close stops listening, closes open connections and removes the socket.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	s.ln = nil
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	if ln == nil {
		return nil
	}
	err := ln.Close()
	os.Remove(s.path)
	return err
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
		return
	}
	delete(s.conns, conn)
	conn.Close()
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}

		resp := s.dispatch(ctx, line)
		data, err := resp.Encode()
		if err != nil {
			logging.Error().Err(err).Msg("failed to encode response")
			return
		}
		if _, err := conn.Write(data); err != nil {
			logging.Debug().Err(err).Msg("client went away")
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, line []byte) *models.MessageEnvelope {
	var env models.MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return models.NewErrorResponse("", models.CodeBadRequest, fmt.Sprintf("malformed envelope: %v", err))
	}
	if env.Type != models.TypeRequest || env.Request == nil {
		return models.NewErrorResponse("", models.CodeBadRequest, "expected request envelope")
	}

	req := env.Request
	if req.Method != models.MethodMessage {
		return models.NewErrorResponse(req.ID, models.CodeBadRequest, fmt.Sprintf("unknown method %q", req.Method))
	}

	var reply message.Reply
	if err := s.loop.Call(ctx, func() { reply = s.handler.Handle(req.Args) }); err != nil {
		return models.NewErrorResponse(req.ID, models.CodeBadRequest, fmt.Sprintf("daemon unavailable: %v", err))
	}

	if reply.Failed {
		return models.NewErrorResponse(req.ID, models.CodeFailure, reply.String())
	}
	return models.NewResponse(req.ID, reply.Output)
}
