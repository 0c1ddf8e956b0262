package output

import (
	"math"

	"github.com/yourusername/borders/internal/types"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// Viewport maps screen points into terminal cells
type Viewport struct {
	Bounds types.Rect // Screen region shown
	Cols   int
	Rows   int

	scale float64
}

// NewViewport fits bounds into cols by rows cells, keeping the aspect ratio
func NewViewport(bounds types.Rect, cols, rows int) *Viewport {
	if cols < 4 {
		cols = 4
	}
	if rows < 3 {
		rows = 3
	}

	v := &Viewport{Bounds: bounds, Cols: cols, Rows: rows}
	if bounds.IsEmpty() {
		return v
	}

	// One cell for the frame on each side.
	sx := float64(cols-2) / bounds.Width
	sy := float64(rows-2) * cellAspect / bounds.Height
	v.scale = math.Min(sx, sy)
	return v
}

// Project returns the cell box covering r
func (v *Viewport) Project(r types.Rect) (x, y, w, h int) {
	if v.scale == 0 {
		return 0, 0, 0, 0
	}
	x = 1 + int(math.Round((r.X-v.Bounds.X)*v.scale))
	y = 1 + int(math.Round((r.Y-v.Bounds.Y)*v.scale/cellAspect))
	w = int(math.Round(r.Width * v.scale))
	h = int(math.Round(r.Height * v.scale / cellAspect))

	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	if x+w > v.Cols-1 {
		w = v.Cols - 1 - x
	}
	if y+h > v.Rows-1 {
		h = v.Rows - 1 - y
	}
	return x, y, w, h
}
