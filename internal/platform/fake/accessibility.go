package fake

import (
	"sync"

	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/types"
)

// Window is a fake accessibility window.
type Window struct {
	ID    uint32
	Frame types.Rect

	// NoPosition and NoSize make the matching attribute unavailable.
	NoPosition bool
	NoSize     bool
	// Destroyed windows fail every attribute query.
	Destroyed bool
}

type element struct {
	ax     *Accessibility
	pid    int     // set for application handles
	window *Window // set for window handles
	freed  bool
}

func (e *element) Equal(other platform.Element) bool {
	o, ok := other.(*element)
	if !ok || o == nil {
		return false
	}
	if e.window != nil || o.window != nil {
		return e.window == o.window
	}
	return e.pid == o.pid
}

func (e *element) Release() {
	e.ax.mu.Lock()
	defer e.ax.mu.Unlock()

	if e.freed {
		e.ax.doubleReleases++
		return
	}
	e.freed = true
	e.ax.live--
}

// Accessibility is an in-memory platform.Accessibility.
type Accessibility struct {
	mu sync.Mutex

	Trusted      bool
	FailObserver bool
	// FailKinds makes registration of the listed kinds fail.
	FailKinds map[platform.Notification]bool

	focused        map[int]*Window
	observers      []*Observer
	live           int
	doubleReleases int
	prompted       bool
}

// NewAccessibility returns a trusted fake with no applications.
func NewAccessibility() *Accessibility {
	return &Accessibility{
		Trusted:   true,
		FailKinds: make(map[platform.Notification]bool),
		focused:   make(map[int]*Window),
	}
}

// SetFocused makes w the focused window of pid; nil clears it.
func (a *Accessibility) SetFocused(pid int, w *Window) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.focused[pid] = w
}

// SetFrame changes the geometry reported for w.
func (a *Accessibility) SetFrame(w *Window, frame types.Rect) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w.Frame = frame
}

// WindowHandle returns a new retained handle to w, as delivered by a
// notification.
func (a *Accessibility) WindowHandle(w *Window) platform.Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.newElement(0, w)
}

// Notify delivers kind for w to every attached observer of pid that
// registered it. Each observer receives its own retained handle.
func (a *Accessibility) Notify(pid int, kind platform.Notification, w *Window) int {
	a.mu.Lock()
	var targets []*Observer
	for _, o := range a.observers {
		if o.pid == pid && o.attached && !o.released && o.kinds[kind] {
			targets = append(targets, o)
		}
	}
	a.mu.Unlock()

	for _, o := range targets {
		o.fn(kind, a.WindowHandle(w))
	}
	return len(targets)
}

// ActiveRegistrations counts registered notification kinds across every
// observer ever created, released or not.
func (a *Accessibility) ActiveRegistrations() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, o := range a.observers {
		n += len(o.kinds)
	}
	return n
}

// LiveObservers counts observers that have not been released.
func (a *Accessibility) LiveObservers() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, o := range a.observers {
		if !o.released {
			n++
		}
	}
	return n
}

// AttachedObservers counts observers whose event source is on the run loop.
func (a *Accessibility) AttachedObservers() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, o := range a.observers {
		if o.attached && !o.released {
			n++
		}
	}
	return n
}

// LiveHandles returns the number of element handles not yet released.
func (a *Accessibility) LiveHandles() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// DoubleReleases returns how many times a handle was released twice.
func (a *Accessibility) DoubleReleases() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doubleReleases
}

// Prompted reports whether IsTrusted was called with prompt set.
func (a *Accessibility) Prompted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prompted
}

func (a *Accessibility) newElement(pid int, w *Window) *element {
	a.live++
	return &element{ax: a, pid: pid, window: w}
}

func (a *Accessibility) IsTrusted(prompt bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if prompt {
		a.prompted = true
	}
	return a.Trusted
}

func (a *Accessibility) CreateApplication(pid int) platform.Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.newElement(pid, nil)
}

func (a *Accessibility) FocusedWindow(app platform.Element) (platform.Element, error) {
	e, ok := app.(*element)
	if !ok || e == nil || e.window != nil {
		return nil, platform.AXErrorIllegalArgument
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	w := a.focused[e.pid]
	if w == nil || w.Destroyed {
		return nil, platform.AXErrorNoValue
	}
	return a.newElement(0, w), nil
}

func (a *Accessibility) WindowID(window platform.Element) (uint32, error) {
	w, err := a.window(window)
	if err != nil {
		return 0, err
	}
	if w.ID == 0 {
		return 0, platform.AXErrorFailure
	}
	return w.ID, nil
}

func (a *Accessibility) Position(window platform.Element) (types.Point, error) {
	w, err := a.window(window)
	if err != nil {
		return types.Point{}, err
	}
	if w.NoPosition {
		return types.Point{}, platform.AXErrorNoValue
	}
	return w.Frame.Origin(), nil
}

func (a *Accessibility) Size(window platform.Element) (types.Size, error) {
	w, err := a.window(window)
	if err != nil {
		return types.Size{}, err
	}
	if w.NoSize {
		return types.Size{}, platform.AXErrorNoValue
	}
	return w.Frame.Size(), nil
}

func (a *Accessibility) window(el platform.Element) (*Window, error) {
	e, ok := el.(*element)
	if !ok || e == nil || e.window == nil {
		return nil, platform.AXErrorIllegalArgument
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if e.freed || e.window.Destroyed {
		return nil, platform.AXErrorInvalidUIElement
	}
	return e.window, nil
}

func (a *Accessibility) NewObserver(pid int, fn platform.NotificationFunc) (platform.Observer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailObserver {
		return nil, platform.AXErrorFailure
	}
	o := &Observer{ax: a, pid: pid, fn: fn, kinds: make(map[platform.Notification]bool)}
	a.observers = append(a.observers, o)
	return o, nil
}

// Observer is a fake platform.Observer.
type Observer struct {
	ax       *Accessibility
	pid      int
	fn       platform.NotificationFunc
	kinds    map[platform.Notification]bool
	attached bool
	released bool
}

func (o *Observer) Add(app platform.Element, kind platform.Notification) error {
	o.ax.mu.Lock()
	defer o.ax.mu.Unlock()

	if o.released {
		return platform.AXErrorInvalidUIElementObserver
	}
	if o.ax.FailKinds[kind] {
		return platform.AXErrorNotificationUnsupported
	}
	if o.kinds[kind] {
		return platform.AXErrorNotificationAlreadyRegistered
	}
	o.kinds[kind] = true
	return nil
}

func (o *Observer) Remove(app platform.Element, kind platform.Notification) error {
	o.ax.mu.Lock()
	defer o.ax.mu.Unlock()

	if !o.kinds[kind] {
		return platform.AXErrorNotificationNotRegistered
	}
	delete(o.kinds, kind)
	return nil
}

func (o *Observer) Attach() {
	o.ax.mu.Lock()
	defer o.ax.mu.Unlock()
	o.attached = true
}

func (o *Observer) Detach() {
	o.ax.mu.Lock()
	defer o.ax.mu.Unlock()
	o.attached = false
}

func (o *Observer) Release() {
	o.ax.mu.Lock()
	defer o.ax.mu.Unlock()
	o.released = true
}
