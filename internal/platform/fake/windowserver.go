package fake

import (
	"errors"
	"sync"

	"github.com/yourusername/borders/internal/platform"
)

// WindowServer is an in-memory platform.WindowServer.
type WindowServer struct {
	mu sync.Mutex

	front     int
	display   string
	animating bool
	onScreen  []platform.WindowInfo
	queries   int
}

// NewWindowServer returns a window server with front process pid and a
// single idle display.
func NewWindowServer(pid int) *WindowServer {
	return &WindowServer{front: pid, display: "display-1"}
}

// SetFront changes the front process; 0 makes the query fail.
func (w *WindowServer) SetFront(pid int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.front = pid
}

// SetAnimating marks the active display as mid-transition.
func (w *WindowServer) SetAnimating(animating bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.animating = animating
}

// SetOnScreen replaces the on-screen window list.
func (w *WindowServer) SetOnScreen(windows []platform.WindowInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onScreen = windows
}

// OnScreenQueries returns how many times OnScreenWindows was called.
func (w *WindowServer) OnScreenQueries() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.queries
}

func (w *WindowServer) FrontProcess() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.front == 0 {
		return 0, errors.New("fake: no front process")
	}
	return w.front, nil
}

func (w *WindowServer) ActiveDisplay() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.display
}

func (w *WindowServer) DisplayIsAnimating(uuid string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return uuid == w.display && w.animating
}

func (w *WindowServer) OnScreenWindows() []platform.WindowInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queries++
	return append([]platform.WindowInfo(nil), w.onScreen...)
}
