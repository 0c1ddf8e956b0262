package fake

import (
	"errors"
	"sync"

	"github.com/yourusername/borders/internal/platform"
)

// EventSource is a fake platform.EventSource whose events are raised
// explicitly by tests.
type EventSource struct {
	mu sync.Mutex

	FailInstall bool

	handlers  platform.EventHandlers
	installed bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewEventSource returns an EventSource ready to Install.
func NewEventSource() *EventSource {
	return &EventSource{stop: make(chan struct{})}
}

func (e *EventSource) Install(h platform.EventHandlers) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailInstall {
		return errors.New("fake: event handler installation failed")
	}
	e.handlers = h
	e.installed = true
	return nil
}

// Installed reports whether handlers were installed.
func (e *EventSource) Installed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.installed
}

func (e *EventSource) Run() { <-e.stop }

func (e *EventSource) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

func (e *EventSource) FrontSwitched(pid int) {
	if h := e.get().FrontSwitched; h != nil {
		h(pid)
	}
}

func (e *EventSource) SpaceChanged() {
	if h := e.get().SpaceChanged; h != nil {
		h()
	}
}

func (e *EventSource) DisplayChanged() {
	if h := e.get().DisplayChanged; h != nil {
		h()
	}
}

func (e *EventSource) OverviewActivated() {
	if h := e.get().OverviewActivated; h != nil {
		h()
	}
}

func (e *EventSource) get() platform.EventHandlers {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handlers
}

// NewProvider bundles fresh fakes with front process pid on space sid.
func NewProvider(pid int, sid uint64) (*platform.Provider, *Accessibility, *Compositor, *WindowServer, *EventSource) {
	ax := NewAccessibility()
	comp := NewCompositor(sid)
	ws := NewWindowServer(pid)
	ev := NewEventSource()
	return &platform.Provider{
		Accessibility: ax,
		Compositor:    comp,
		WindowServer:  ws,
		Events:        ev,
	}, ax, comp, ws, ev
}
