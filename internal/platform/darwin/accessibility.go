//go:build darwin && cgo

package darwin

/*
#include "borders_darwin.h"
*/
import "C"
import (
	"sync"

	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/types"
)

// element wraps a retained AXUIElementRef.
type element struct {
	ref  C.uintptr_t
	once sync.Once
}

func newElement(ref C.uintptr_t) *element {
	return &element{ref: ref}
}

func (e *element) Equal(other platform.Element) bool {
	o, ok := other.(*element)
	if !ok || o == nil {
		return false
	}
	return bool(C.ax_equal(e.ref, o.ref))
}

func (e *element) Release() {
	e.once.Do(func() { C.cf_release(e.ref) })
}

func elementRef(el platform.Element) (C.uintptr_t, error) {
	e, ok := el.(*element)
	if !ok || e == nil || e.ref == 0 {
		return 0, platform.AXErrorIllegalArgument
	}
	return e.ref, nil
}

// Accessibility is the macOS platform.Accessibility.
type Accessibility struct{}

// NewAccessibility returns the accessibility backend.
func NewAccessibility() *Accessibility {
	return &Accessibility{}
}

func (a *Accessibility) IsTrusted(prompt bool) bool {
	return C.ax_is_trusted(C.bool(prompt)) != 0
}

func (a *Accessibility) CreateApplication(pid int) platform.Element {
	return newElement(C.ax_create_application(C.int(pid)))
}

func (a *Accessibility) FocusedWindow(app platform.Element) (platform.Element, error) {
	ref, err := elementRef(app)
	if err != nil {
		return nil, err
	}

	var out C.uintptr_t
	if err := platform.AXStatus(int(C.ax_focused_window(ref, &out))); err != nil {
		return nil, err
	}
	return newElement(out), nil
}

func (a *Accessibility) WindowID(window platform.Element) (uint32, error) {
	ref, err := elementRef(window)
	if err != nil {
		return 0, err
	}

	var wid C.uint32_t
	if err := platform.AXStatus(int(C.ax_window_id(ref, &wid))); err != nil {
		return 0, err
	}
	return uint32(wid), nil
}

func (a *Accessibility) Position(window platform.Element) (types.Point, error) {
	ref, err := elementRef(window)
	if err != nil {
		return types.Point{}, err
	}

	var x, y C.double
	if err := platform.AXStatus(int(C.ax_position(ref, &x, &y))); err != nil {
		return types.Point{}, err
	}
	return types.Point{X: float64(x), Y: float64(y)}, nil
}

func (a *Accessibility) Size(window platform.Element) (types.Size, error) {
	ref, err := elementRef(window)
	if err != nil {
		return types.Size{}, err
	}

	var w, h C.double
	if err := platform.AXStatus(int(C.ax_size(ref, &w, &h))); err != nil {
		return types.Size{}, err
	}
	return types.Size{Width: float64(w), Height: float64(h)}, nil
}

func (a *Accessibility) NewObserver(pid int, fn platform.NotificationFunc) (platform.Observer, error) {
	var out C.uintptr_t
	if err := platform.AXStatus(int(C.ax_observer_create(C.int(pid), &out))); err != nil {
		return nil, err
	}

	o := &observer{ref: out, fn: fn}
	o.token = registerObserver(o)
	return o, nil
}

// observer wraps a retained AXObserverRef. Callbacks find it through its
// registry token, which stays valid until Release.
type observer struct {
	ref   C.uintptr_t
	token uintptr
	fn    platform.NotificationFunc
	once  sync.Once
}

func (o *observer) Add(app platform.Element, kind platform.Notification) error {
	ref, err := elementRef(app)
	if err != nil {
		return err
	}
	return platform.AXStatus(int(C.ax_observer_add(o.ref, ref, C.int(kind), C.uintptr_t(o.token))))
}

func (o *observer) Remove(app platform.Element, kind platform.Notification) error {
	ref, err := elementRef(app)
	if err != nil {
		return err
	}
	return platform.AXStatus(int(C.ax_observer_remove(o.ref, ref, C.int(kind))))
}

func (o *observer) Attach() {
	C.ax_observer_attach(o.ref)
}

func (o *observer) Detach() {
	C.ax_observer_detach(o.ref)
}

func (o *observer) Release() {
	o.once.Do(func() {
		unregisterObserver(o.token)
		C.cf_release(o.ref)
	})
}

var (
	observersMu sync.Mutex
	observers   = make(map[uintptr]*observer)
	nextToken   uintptr
)

func registerObserver(o *observer) uintptr {
	observersMu.Lock()
	defer observersMu.Unlock()
	nextToken++
	observers[nextToken] = o
	return nextToken
}

func unregisterObserver(token uintptr) {
	observersMu.Lock()
	defer observersMu.Unlock()
	delete(observers, token)
}

func lookupObserver(token uintptr) *observer {
	observersMu.Lock()
	defer observersMu.Unlock()
	return observers[token]
}
