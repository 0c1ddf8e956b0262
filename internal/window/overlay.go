// Package window owns the compositor surface that paints the border.
package window

import (
	"fmt"

	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/types"
)

// Tags applied to the border surface on creation.
const Tags = platform.TagIgnoresCycle | platform.TagSticky | platform.TagNonActivating

// Style holds the fixed visual attributes of the border.
type Style struct {
	Width float64
	Color types.Color
	Level int
}

// Overlay is the single border surface. It is created lazily and never
// destroyed; id is non-zero iff ctx is valid.
type Overlay struct {
	comp  platform.Compositor
	style Style

	id  uint32
	ctx platform.Context

	// last is the most recently committed frame.
	last types.Rect
}

// New returns an overlay that will be created on first use.
func New(comp platform.Compositor, style Style) *Overlay {
	return &Overlay{comp: comp, style: style}
}

// ID returns the surface id, 0 before creation.
func (o *Overlay) ID() uint32 {
	return o.id
}

// Created reports whether the surface exists.
func (o *Overlay) Created() bool {
	return o.id != 0
}

// Frame returns the last committed frame.
func (o *Overlay) Frame() types.Rect {
	return o.last
}

// Style returns the visual attributes the surface is drawn with.
func (o *Overlay) Style() Style {
	return o.style
}

// EnsureCreated creates the surface at frame if it does not exist yet.
func (o *Overlay) EnsureCreated(frame types.Rect) error {
	if o.id != 0 {
		return nil
	}

	wid, err := o.comp.NewWindow(frame)
	if err != nil {
		return fmt.Errorf("create border surface: %w", err)
	}

	if err := o.comp.SetTags(wid, Tags); err != nil {
		logging.Warn().Err(err).Uint32("windowId", wid).Msg("failed to set border tags")
	}
	if err := o.comp.SetOpacity(wid, false); err != nil {
		logging.Warn().Err(err).Uint32("windowId", wid).Msg("failed to set border opacity")
	}
	if err := o.comp.SetLevel(wid, o.style.Level); err != nil {
		logging.Warn().Err(err).Uint32("windowId", wid).Msg("failed to set border level")
	}

	ctx, err := o.comp.NewContext(wid)
	if err != nil {
		if rerr := o.comp.ReleaseWindow(wid); rerr != nil {
			logging.Warn().Err(rerr).Uint32("windowId", wid).Msg("failed to release border surface")
		}
		return fmt.Errorf("create border context: %w", err)
	}
	ctx.SetLineWidth(o.style.Width)
	ctx.SetStrokeColor(o.style.Color)

	o.id, o.ctx = wid, ctx
	logging.Info().Uint32("windowId", wid).Str("frame", frame.String()).Msg("border surface created")
	return nil
}

// SetShapeAndOutline moves the surface to frame and strokes the outline in
// local coordinates. The outline is only repainted when the size changes.
// Callers bracket this with DisableUpdate/ReenableUpdate.
func (o *Overlay) SetShapeAndOutline(frame types.Rect) {
	if o.id == 0 {
		return
	}

	if err := o.comp.SetShape(o.id, frame); err != nil {
		logging.Warn().Err(err).Uint32("windowId", o.id).Msg("failed to set border shape")
		return
	}

	repaint := o.last.Size() != frame.Size()
	o.last = frame
	if !repaint {
		return
	}

	local := frame.Local()
	o.ctx.Clear(local)
	o.ctx.StrokePath(local.Outline())
	o.ctx.Flush()
}

// Show orders the surface above all other windows.
func (o *Overlay) Show() {
	o.order(platform.OrderAbove)
}

// Hide orders the surface out.
func (o *Overlay) Hide() {
	o.order(platform.OrderOut)
}

func (o *Overlay) order(mode platform.OrderMode) {
	if o.id == 0 {
		return
	}
	if err := o.comp.Order(o.id, mode); err != nil {
		logging.Warn().Err(err).Uint32("windowId", o.id).Int("mode", int(mode)).Msg("failed to order border")
	}
}

// MoveToSpace reassigns the surface to sid.
func (o *Overlay) MoveToSpace(sid uint64) {
	if o.id == 0 {
		return
	}
	if err := o.comp.MoveWindowToSpace(o.id, sid); err != nil {
		logging.Warn().Err(err).Uint32("windowId", o.id).Uint64("spaceId", sid).Msg("failed to move border to space")
	}
}
