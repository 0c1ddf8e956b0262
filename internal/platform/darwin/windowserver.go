//go:build darwin && cgo

package darwin

/*
#include <stdlib.h>
#include "borders_darwin.h"
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/yourusername/borders/internal/platform"
)

// maxOnScreen bounds one on-screen window listing.
const maxOnScreen = 512

// WindowServer answers process, display and window list queries.
type WindowServer struct {
	cid C.int
}

// NewWindowServer returns a window server for connection cid.
func NewWindowServer(cid int) *WindowServer {
	return &WindowServer{cid: C.int(cid)}
}

func (w *WindowServer) FrontProcess() (int, error) {
	var pid C.int
	if rc := C.ws_front_process(&pid); rc != 0 {
		return 0, fmt.Errorf("front process query failed: %d", int(rc))
	}
	return int(pid), nil
}

func (w *WindowServer) ActiveDisplay() string {
	var buf [128]C.char
	if C.ws_active_display(w.cid, &buf[0], C.int(len(buf))) != 0 {
		return ""
	}
	return C.GoString(&buf[0])
}

func (w *WindowServer) DisplayIsAnimating(uuid string) bool {
	if uuid == "" {
		return false
	}
	cs := C.CString(uuid)
	defer C.free(unsafe.Pointer(cs))
	return bool(C.ws_display_is_animating(w.cid, cs))
}

func (w *WindowServer) OnScreenWindows() []platform.WindowInfo {
	infos := make([]C.ws_window_info, maxOnScreen)
	n := int(C.ws_on_screen_windows(&infos[0], C.int(len(infos))))

	windows := make([]platform.WindowInfo, 0, n)
	for i := 0; i < n; i++ {
		windows = append(windows, platform.WindowInfo{
			ID:    uint32(infos[i].id),
			Owner: C.GoString(&infos[i].owner[0]),
			Name:  C.GoString(&infos[i].name[0]),
			Layer: int(infos[i].layer),
		})
	}
	return windows
}
