// Package reconcile answers whether the border surface's space membership
// and the active display are settled.
package reconcile

import (
	"github.com/yourusername/borders/internal/platform"
)

// Overview sentinel: while Mission Control is open the Dock owns an
// unnamed window at this layer.
const (
	OverviewOwner = "Dock"
	OverviewLayer = 18
)

// Reconciler holds no state of its own.
type Reconciler struct {
	comp platform.Compositor
	ws   platform.WindowServer
}

// New returns a Reconciler over the given capabilities.
func New(comp platform.Compositor, ws platform.WindowServer) *Reconciler {
	return &Reconciler{comp: comp, ws: ws}
}

// ActiveSpace returns the id of the current space.
func (r *Reconciler) ActiveSpace() uint64 {
	return r.comp.ActiveSpace()
}

// OnActiveSpace reports whether wid is a member of the active space.
func (r *Reconciler) OnActiveSpace(wid uint32) bool {
	if wid == 0 {
		return false
	}
	active := r.comp.ActiveSpace()
	for _, sid := range r.comp.WindowSpaces(wid) {
		if sid == active {
			return true
		}
	}
	return false
}

// DisplayAnimating reports whether the active display is mid-transition.
func (r *Reconciler) DisplayAnimating() bool {
	return r.ws.DisplayIsAnimating(r.ws.ActiveDisplay())
}

// OverviewVisible reports whether the Mission Control sentinel window is
// on screen.
func (r *Reconciler) OverviewVisible() bool {
	for _, w := range r.ws.OnScreenWindows() {
		if IsOverviewSentinel(w) {
			return true
		}
	}
	return false
}

// IsOverviewSentinel matches the unnamed Dock window at the overview layer.
func IsOverviewSentinel(w platform.WindowInfo) bool {
	return w.Owner == OverviewOwner && w.Name == "" && w.Layer == OverviewLayer
}
