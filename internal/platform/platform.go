package platform

import "github.com/yourusername/borders/internal/types"

// Element is an accessibility object handle (an application or a window).
// Handles are reference counted by the platform; every handle returned to
// the caller must be released exactly once.
type Element interface {
	// Equal reports whether both handles refer to the same UI element.
	Equal(other Element) bool
	Release()
}

// NotificationFunc receives accessibility notifications. The element is
// retained for the callee, which must release it.
type NotificationFunc func(kind Notification, element Element)

// Accessibility is the query/subscribe surface of the OS accessibility layer.
// Every fallible call returns an AXError (as error) on failure; callers treat
// any failure as "value unavailable".
type Accessibility interface {
	// IsTrusted reports whether the process may use accessibility,
	// optionally prompting the user.
	IsTrusted(prompt bool) bool

	CreateApplication(pid int) Element
	FocusedWindow(app Element) (Element, error)
	WindowID(window Element) (uint32, error)
	Position(window Element) (types.Point, error)
	Size(window Element) (types.Size, error)

	// NewObserver creates an observer for pid delivering to fn.
	NewObserver(pid int, fn NotificationFunc) (Observer, error)
}

// Observer is a notification registration point bound to one process.
type Observer interface {
	Add(app Element, kind Notification) error
	Remove(app Element, kind Notification) error
	// Attach adds the observer's event source to the main run loop.
	Attach()
	// Detach invalidates the observer's event source.
	Detach()
	Release()
}

// OrderMode selects where a surface is placed in the window stack.
type OrderMode int

const (
	OrderOut   OrderMode = 0
	OrderAbove OrderMode = 1
)

// Surface tag bits understood by the compositor.
const (
	TagIgnoresCycle  uint64 = 1 << 7
	TagSticky        uint64 = 1 << 9
	TagNonActivating uint64 = 1 << 11
)

// Context is a 2D drawing context bound to one surface.
type Context interface {
	SetLineWidth(width float64)
	SetStrokeColor(c types.Color)
	Clear(r types.Rect)
	StrokePath(points []types.Point)
	Flush()
	Release()
}

// Compositor creates and manipulates window-server surfaces.
type Compositor interface {
	NewWindow(frame types.Rect) (uint32, error)
	ReleaseWindow(wid uint32) error
	SetTags(wid uint32, tags uint64) error
	SetOpacity(wid uint32, opaque bool) error
	SetLevel(wid uint32, level int) error
	NewContext(wid uint32) (Context, error)
	SetShape(wid uint32, frame types.Rect) error
	Order(wid uint32, mode OrderMode) error

	// DisableUpdate and ReenableUpdate bracket a batch of visual changes
	// so the compositor presents them as one update.
	DisableUpdate()
	ReenableUpdate()

	ActiveSpace() uint64
	WindowSpaces(wid uint32) []uint64
	MoveWindowToSpace(wid uint32, sid uint64) error
}

// WindowInfo is the on-screen window metadata used to detect system UI.
type WindowInfo struct {
	ID    uint32
	Owner string
	Name  string
	Layer int
}

// WindowServer answers process, display and on-screen window queries.
type WindowServer interface {
	FrontProcess() (int, error)
	ActiveDisplay() string
	DisplayIsAnimating(uuid string) bool
	OnScreenWindows() []WindowInfo
}

// EventHandlers are invoked by an EventSource from the platform thread.
type EventHandlers struct {
	FrontSwitched     func(pid int)
	SpaceChanged      func()
	DisplayChanged    func()
	OverviewActivated func()
}

// EventSource installs the process-level notification handlers and runs
// the platform main loop that delivers them.
type EventSource interface {
	Install(h EventHandlers) error
	// Run blocks in the platform main loop until Stop is called.
	Run()
	Stop()
}
