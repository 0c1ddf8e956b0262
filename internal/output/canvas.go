package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{'+', '+', '+', '+', '-', '|'}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}

	// HeavyStyle marks the border outline itself
	HeavyStyle = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
)

// Canvas is a fixed-size grid of runes
type Canvas struct {
	Width  int
	Height int
	cells  []rune
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = ' '
	}
	return &Canvas{Width: width, Height: height, cells: cells}
}

// Set writes r at (x, y); out-of-range writes are dropped
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.cells[y*c.Width+x] = r
}

// At returns the rune at (x, y), space when out of range
func (c *Canvas) At(x, y int) rune {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return ' '
	}
	return c.cells[y*c.Width+x]
}

// Box draws a w by h box with its top-left corner at (x, y)
func (c *Canvas) Box(x, y, w, h int, style BoxStyle) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1

	for i := x + 1; i < right; i++ {
		c.Set(i, y, style.Horizontal)
		c.Set(i, bottom, style.Horizontal)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, style.Vertical)
		c.Set(right, j, style.Vertical)
	}
	c.Set(x, y, style.TopLeft)
	c.Set(right, y, style.TopRight)
	c.Set(x, bottom, style.BottomLeft)
	c.Set(right, bottom, style.BottomRight)
}

// Text writes s starting at (x, y) without wrapping
func (c *Canvas) Text(x, y int, s string) {
	i := 0
	for _, r := range s {
		c.Set(x+i, y, r)
		i++
	}
}

// String renders the canvas rows joined by newlines, trailing spaces trimmed
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.Height; y++ {
		row := string(c.cells[y*c.Width : (y+1)*c.Width])
		sb.WriteString(strings.TrimRight(row, " "))
		if y < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
