//go:build darwin && cgo

package darwin

/*
#include "borders_darwin.h"
*/
import "C"
import (
	"errors"
	"fmt"

	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/types"
)

// maxSpaces bounds the space list read for one window.
const maxSpaces = 16

// Compositor is the macOS platform.Compositor on a SkyLight connection.
type Compositor struct {
	cid C.int
}

// NewCompositor returns a compositor for connection cid.
func NewCompositor(cid int) *Compositor {
	return &Compositor{cid: C.int(cid)}
}

func cgStatus(op string, code C.int) error {
	if code == 0 {
		return nil
	}
	return fmt.Errorf("%s: CGError %d", op, int(code))
}

func (c *Compositor) NewWindow(frame types.Rect) (uint32, error) {
	var wid C.uint32_t
	rc := C.sls_new_window(c.cid, C.double(frame.X), C.double(frame.Y), C.double(frame.Width), C.double(frame.Height), &wid)
	if err := cgStatus("new window", rc); err != nil {
		return 0, err
	}
	return uint32(wid), nil
}

func (c *Compositor) ReleaseWindow(wid uint32) error {
	return cgStatus("release window", C.sls_release_window(c.cid, C.uint32_t(wid)))
}

func (c *Compositor) SetTags(wid uint32, tags uint64) error {
	return cgStatus("set tags", C.sls_set_tags(c.cid, C.uint32_t(wid), C.uint64_t(tags)))
}

func (c *Compositor) SetOpacity(wid uint32, opaque bool) error {
	return cgStatus("set opacity", C.sls_set_opacity(c.cid, C.uint32_t(wid), C.bool(opaque)))
}

func (c *Compositor) SetLevel(wid uint32, level int) error {
	return cgStatus("set level", C.sls_set_level(c.cid, C.uint32_t(wid), C.int(level)))
}

func (c *Compositor) NewContext(wid uint32) (platform.Context, error) {
	ref := C.cg_context_create(c.cid, C.uint32_t(wid))
	if ref == 0 {
		return nil, errors.New("cannot create drawing context")
	}
	return &drawContext{ref: ref}, nil
}

func (c *Compositor) SetShape(wid uint32, frame types.Rect) error {
	rc := C.sls_set_shape(c.cid, C.uint32_t(wid), C.double(frame.X), C.double(frame.Y), C.double(frame.Width), C.double(frame.Height))
	return cgStatus("set shape", rc)
}

func (c *Compositor) Order(wid uint32, mode platform.OrderMode) error {
	return cgStatus("order", C.sls_order(c.cid, C.uint32_t(wid), C.int(mode)))
}

func (c *Compositor) DisableUpdate() {
	C.sls_disable_update(c.cid)
}

func (c *Compositor) ReenableUpdate() {
	C.sls_reenable_update(c.cid)
}

func (c *Compositor) ActiveSpace() uint64 {
	return uint64(C.sls_active_space(c.cid))
}

func (c *Compositor) WindowSpaces(wid uint32) []uint64 {
	var buf [maxSpaces]C.uint64_t
	n := int(C.sls_window_spaces(c.cid, C.uint32_t(wid), &buf[0], C.int(len(buf))))

	spaces := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		spaces = append(spaces, uint64(buf[i]))
	}
	return spaces
}

func (c *Compositor) MoveWindowToSpace(wid uint32, sid uint64) error {
	return cgStatus("move to space", C.sls_move_window_to_space(c.cid, C.uint32_t(wid), C.uint64_t(sid)))
}

// drawContext wraps the CGContextRef of the border surface.
type drawContext struct {
	ref C.uintptr_t
}

func (d *drawContext) SetLineWidth(width float64) {
	C.cg_set_line_width(d.ref, C.double(width))
}

func (d *drawContext) SetStrokeColor(c types.Color) {
	C.cg_set_stroke_color(d.ref, C.double(c.R), C.double(c.G), C.double(c.B), C.double(c.A))
}

func (d *drawContext) Clear(r types.Rect) {
	C.cg_clear(d.ref, C.double(r.X), C.double(r.Y), C.double(r.Width), C.double(r.Height))
}

func (d *drawContext) StrokePath(points []types.Point) {
	if len(points) < 2 {
		return
	}
	xy := make([]C.double, 0, 2*len(points))
	for _, p := range points {
		xy = append(xy, C.double(p.X), C.double(p.Y))
	}
	C.cg_stroke_path(d.ref, &xy[0], C.int(len(points)))
}

func (d *drawContext) Flush() {
	C.cg_flush(d.ref)
}

func (d *drawContext) Release() {
	C.cf_release(d.ref)
	d.ref = 0
}
