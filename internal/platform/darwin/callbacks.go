//go:build darwin && cgo

package darwin

/*
#include "borders_darwin.h"
*/
import "C"
import "github.com/yourusername/borders/internal/platform"

//export bordersObserverEvent
func bordersObserverEvent(token C.uintptr_t, ref C.uintptr_t, kind C.int) {
	el := newElement(ref)
	o := lookupObserver(uintptr(token))
	if o == nil || o.fn == nil {
		el.Release()
		return
	}
	o.fn(platform.Notification(kind), el)
}

//export bordersFrontSwitched
func bordersFrontSwitched(pid C.int) {
	if h := currentHandlers().FrontSwitched; h != nil {
		h(int(pid))
	}
}

//export bordersConnectionEvent
func bordersConnectionEvent(event C.uint32_t) {
	h := currentHandlers()
	switch uint32(event) {
	case uint32(C.SLS_EVENT_SPACE_CHANGED):
		if h.SpaceChanged != nil {
			h.SpaceChanged()
		}
	case uint32(C.SLS_EVENT_DISPLAY_CHANGED):
		if h.DisplayChanged != nil {
			h.DisplayChanged()
		}
	case uint32(C.SLS_EVENT_MISSION_CONTROL_ENTER):
		if h.OverviewActivated != nil {
			h.OverviewActivated()
		}
	}
}
