//go:build darwin && cgo

package darwin

/*
#include "borders_darwin.h"
*/
import "C"
import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/borders/internal/platform"
)

// runSlice is how long one CFRunLoop pass may block before Run rechecks
// for Stop.
const runSlice = 1.0

var (
	handlersMu sync.RWMutex
	handlers   platform.EventHandlers
)

func currentHandlers() platform.EventHandlers {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	return handlers
}

// EventSource delivers front-switch, connection and display events on the
// main CoreFoundation run loop.
type EventSource struct {
	cid     C.int
	stopped atomic.Bool
}

// NewEventSource returns the event source for connection cid.
func NewEventSource(cid int) *EventSource {
	return &EventSource{cid: C.int(cid)}
}

func (e *EventSource) Install(h platform.EventHandlers) error {
	handlersMu.Lock()
	handlers = h
	handlersMu.Unlock()

	if rc := C.ev_install_front_switched(); rc != 0 {
		return fmt.Errorf("install front switch handler: OSStatus %d", int(rc))
	}
	if rc := C.ev_install_connection(e.cid); rc != 0 {
		return fmt.Errorf("register connection notifications: CGError %d", int(rc))
	}
	return nil
}

// Run must be called on the main OS thread.
func (e *EventSource) Run() {
	for !e.stopped.Load() {
		if C.ev_run(runSlice) == C.kCFRunLoopRunFinished {
			// No sources yet; avoid spinning until observers attach.
			time.Sleep(100 * time.Millisecond)
		}
	}
}

func (e *EventSource) Stop() {
	e.stopped.Store(true)
	C.ev_stop()
}
