// Package bridge turns platform callbacks and OS signals into state machine
// calls on the run loop.
package bridge

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/platform"
)

// Target receives the bridged events. All calls happen on the run loop.
type Target interface {
	ApplicationSwitched(pid int)
	WindowEvent(kind platform.Notification, el platform.Element)
	SpaceChanged()
	DisplayChanged()
	OverviewActivated()
	ExternalSignal()
}

// Poster queues work on the run loop.
type Poster interface {
	Post(fn func()) bool
}

// Bridge never calls Target directly from a callback context.
type Bridge struct {
	loop   Poster
	target Target
}

// New returns a Bridge posting to loop.
func New(loop Poster, target Target) *Bridge {
	return &Bridge{loop: loop, target: target}
}

// Notification is the accessibility observer callback. The element is
// released once the event has been handled.
func (b *Bridge) Notification(kind platform.Notification, el platform.Element) {
	if !b.loop.Post(func() {
		defer release(el)
		b.target.WindowEvent(kind, el)
	}) {
		release(el)
	}
}

// Handlers returns the process-level handlers to install on an EventSource.
func (b *Bridge) Handlers() platform.EventHandlers {
	return platform.EventHandlers{
		FrontSwitched: func(pid int) {
			b.post("front-switched", func() { b.target.ApplicationSwitched(pid) })
		},
		SpaceChanged: func() {
			b.post("space-changed", b.target.SpaceChanged)
		},
		DisplayChanged: func() {
			b.post("display-changed", b.target.DisplayChanged)
		},
		OverviewActivated: func() {
			b.post("overview-activated", b.target.OverviewActivated)
		},
	}
}

// Signal queues an external refresh request.
func (b *Bridge) Signal() {
	b.post("external-signal", b.target.ExternalSignal)
}

// WatchSignals forwards SIGUSR1 to Signal until ctx is cancelled.
func (b *Bridge) WatchSignals(ctx context.Context) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGUSR1)

	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				logging.Debug().Msg("received SIGUSR1")
				b.Signal()
			}
		}
	}()
}

func (b *Bridge) post(event string, fn func()) {
	if !b.loop.Post(fn) {
		logging.Debug().Str("event", event).Msg("dropped event after run loop stopped")
	}
}

func release(el platform.Element) {
	if el != nil {
		el.Release()
	}
}
