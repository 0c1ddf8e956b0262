package fake

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/types"
)

// ErrNoSurface is returned for operations on unknown surface ids.
var ErrNoSurface = errors.New("fake: no such surface")

// Surface is the recorded state of one compositor window.
type Surface struct {
	ID      uint32
	Frame   types.Rect
	Tags    uint64
	Opaque  bool
	Level   int
	Visible bool
	Spaces  []uint64
	Context *Context
}

// OnSpace reports whether the surface is a member of sid.
func (s *Surface) OnSpace(sid uint64) bool {
	for _, id := range s.Spaces {
		if id == sid {
			return true
		}
	}
	return false
}

// Context records drawing operations.
type Context struct {
	LineWidth float64
	Color     types.Color
	Clears    int
	Flushes   int
	Strokes   int
	LastPath  []types.Point
	Released  bool
}

func (c *Context) SetLineWidth(width float64) { c.LineWidth = width }
func (c *Context) SetStrokeColor(col types.Color) { c.Color = col }
func (c *Context) Clear(r types.Rect) { c.Clears++ }
func (c *Context) Flush() { c.Flushes++ }
func (c *Context) Release() { c.Released = true }

func (c *Context) StrokePath(points []types.Point) {
	c.Strokes++
	c.LastPath = append([]types.Point(nil), points...)
}

// Compositor is an in-memory platform.Compositor. Ops records every call
// in order ("new", "release", "shape", "order-above", "order-out", "move-space",
// "disable", "reenable").
type Compositor struct {
	mu sync.Mutex

	FailNewWindow  bool
	FailNewContext bool

	Ops      []string
	Surfaces map[uint32]*Surface

	// ShownOffSpace counts order-above calls made while the surface was
	// not a member of the active space.
	ShownOffSpace int

	nextID   uint32
	active   uint64
	disabled int
	released int
}

// NewCompositor returns a compositor whose active space is sid.
func NewCompositor(sid uint64) *Compositor {
	return &Compositor{
		Surfaces: make(map[uint32]*Surface),
		nextID:   100,
		active:   sid,
	}
}

// SetActiveSpace simulates the user switching to sid.
func (c *Compositor) SetActiveSpace(sid uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = sid
}

// Surface returns the recorded surface for wid, or nil.
func (c *Compositor) Surface(wid uint32) *Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Surfaces[wid]
}

// Created returns how many surfaces were created.
func (c *Compositor) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Surfaces) + c.released
}

// Released returns how many surfaces were released.
func (c *Compositor) Released() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// UpdatesDisabled reports whether a DisableUpdate is still open.
func (c *Compositor) UpdatesDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled > 0
}

// ResetOps clears the recorded operation log.
func (c *Compositor) ResetOps() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Ops = nil
}

func (c *Compositor) record(op string) {
	c.Ops = append(c.Ops, op)
}

func (c *Compositor) surface(wid uint32) (*Surface, error) {
	s, ok := c.Surfaces[wid]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSurface, wid)
	}
	return s, nil
}

func (c *Compositor) NewWindow(frame types.Rect) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailNewWindow {
		return 0, errors.New("fake: window creation failed")
	}
	c.nextID++
	s := &Surface{ID: c.nextID, Frame: frame, Spaces: []uint64{c.active}}
	c.Surfaces[s.ID] = s
	c.record("new")
	return s.ID, nil
}

func (c *Compositor) ReleaseWindow(wid uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.surface(wid); err != nil {
		return err
	}
	delete(c.Surfaces, wid)
	c.released++
	c.record("release")
	return nil
}

func (c *Compositor) SetTags(wid uint32, tags uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surface(wid)
	if err != nil {
		return err
	}
	s.Tags |= tags
	return nil
}

func (c *Compositor) SetOpacity(wid uint32, opaque bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surface(wid)
	if err != nil {
		return err
	}
	s.Opaque = opaque
	return nil
}

func (c *Compositor) SetLevel(wid uint32, level int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surface(wid)
	if err != nil {
		return err
	}
	s.Level = level
	return nil
}

func (c *Compositor) NewContext(wid uint32) (platform.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailNewContext {
		return nil, errors.New("fake: context creation failed")
	}
	s, err := c.surface(wid)
	if err != nil {
		return nil, err
	}
	s.Context = &Context{}
	return s.Context, nil
}

func (c *Compositor) SetShape(wid uint32, frame types.Rect) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surface(wid)
	if err != nil {
		return err
	}
	s.Frame = frame
	c.record("shape")
	return nil
}

func (c *Compositor) Order(wid uint32, mode platform.OrderMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surface(wid)
	if err != nil {
		return err
	}
	if mode == platform.OrderAbove {
		if !s.OnSpace(c.active) {
			c.ShownOffSpace++
		}
		s.Visible = true
		c.record("order-above")
		return nil
	}
	s.Visible = false
	c.record("order-out")
	return nil
}

func (c *Compositor) DisableUpdate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled++
	c.record("disable")
}

func (c *Compositor) ReenableUpdate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled--
	c.record("reenable")
}

func (c *Compositor) ActiveSpace() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Compositor) WindowSpaces(wid uint32) []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.Surfaces[wid]
	if !ok {
		return nil
	}
	return append([]uint64(nil), s.Spaces...)
}

func (c *Compositor) MoveWindowToSpace(wid uint32, sid uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.surface(wid)
	if err != nil {
		return err
	}
	s.Spaces = []uint64{sid}
	c.record("move-space")
	return nil
}
