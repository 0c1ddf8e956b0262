// Package runloop serializes all border state changes onto one goroutine.
package runloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yourusername/borders/internal/logging"
)

// ErrStopped is returned when posting to a loop that has exited.
var ErrStopped = errors.New("run loop stopped")

// Loop is a single goroutine draining a queue of functions in post order.
// Post never blocks, so platform callbacks and signal handlers can use it.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
}

// New returns an idle loop. Call Run to start draining.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn. It reports false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// After posts fn once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		if !l.Post(fn) {
			logging.Debug().Dur("delay", d).Msg("timer fired after run loop stopped")
		}
	})
}

// Call posts fn and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until ctx is cancelled. Queued work left at
// cancellation is dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}

		for {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn := l.next()
			if fn == nil {
				break
			}
			l.run(fn)
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("run loop task panicked")
		}
	}()
	fn()
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.queue = nil
}
