package focus

import (
	"time"

	"github.com/yourusername/borders/internal/platform"
)

// State is the border's synchronization state.
type State int

const (
	// NoFocus: no trackable focused window; the border is hidden.
	NoFocus State = iota
	// Focused: the border is shown around the focused window.
	Focused
	// FocusedPendingMove: the outline is current but the surface is not
	// on the active space, so it stays hidden.
	FocusedPendingMove
	// Suspended: the display is animating or the overview is open.
	Suspended
)

func (s State) String() string {
	switch s {
	case NoFocus:
		return "no-focus"
	case Focused:
		return "focused"
	case FocusedPendingMove:
		return "focused-pending-move"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Identity is the tracked focused window. A non-zero ID implies a live
// Window handle.
type Identity struct {
	App    platform.Element
	Window platform.Element
	ID     uint32
}

// Scheduler runs fn on the machine's goroutine after d.
type Scheduler interface {
	After(d time.Duration, fn func())
}
