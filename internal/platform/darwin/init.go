//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -Wno-deprecated-declarations
#cgo LDFLAGS: -framework ApplicationServices -framework Carbon -framework CoreFoundation -framework CoreGraphics
#cgo LDFLAGS: -F/System/Library/PrivateFrameworks -framework SkyLight
#include "borders_darwin.h"
*/
import "C"
import (
	"errors"
	"runtime"

	"github.com/yourusername/borders/internal/platform"
)

func init() {
	runtime.LockOSThread()

	platform.NewProviderFunc = func() (*platform.Provider, error) {
		cid := int(C.sls_connection())
		if cid == 0 {
			return nil, errors.New("cannot connect to the window server")
		}
		return &platform.Provider{
			Accessibility: NewAccessibility(),
			Compositor:    NewCompositor(cid),
			WindowServer:  NewWindowServer(cid),
			Events:        NewEventSource(cid),
		}, nil
	}
}
