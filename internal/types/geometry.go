package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect represents a window frame in global screen coordinates
type Rect struct {
	X      float64 `json:"x" yaml:"x"`           // Left edge (points from screen left)
	Y      float64 `json:"y" yaml:"y"`           // Top edge (points from screen top)
	Width  float64 `json:"width" yaml:"width"`   // Width in points
	Height float64 `json:"height" yaml:"height"` // Height in points
}

// Point represents a 2D coordinate
type Point struct {
	X float64
	Y float64
}

// Size represents a width/height pair
type Size struct {
	Width  float64
	Height float64
}

// Origin returns the top-left corner of the rect
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the dimensions of the rect
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Local returns the rect moved to the origin, keeping its size.
// The overlay paints in its own coordinate space, so outlines are
// always built from the local rect.
func (r Rect) Local() Rect {
	return Rect{Width: r.Width, Height: r.Height}
}

// IsEmpty reports whether the rect has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// String formats the rect as "x,y wxh"
func (r Rect) String() string {
	return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", r.X, r.Y, r.Width, r.Height)
}

// Outline returns the closed path tracing the rect's four corners.
// The start corner is repeated so the path has five points.
func (r Rect) Outline() []Point {
	minX, maxX := r.X, r.X+r.Width
	minY, maxY := r.Y, r.Y+r.Height
	return []Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
		{X: minX, Y: minY},
	}
}

// Color is an RGBA stroke color with components in [0, 1]
type Color struct {
	R, G, B, A float64
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' and a "0x"
// prefix are optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.ToLower(hex), "0x")

	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{
		R: float64((v>>24)&0xff) / 255,
		G: float64((v>>16)&0xff) / 255,
		B: float64((v>>8)&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex formats the color as "#rrggbbaa"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

// RGBA8 returns the color as 8-bit channels
func (c Color) RGBA8() (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), channel(c.A)
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
