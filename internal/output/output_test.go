package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yourusername/borders/internal/models"
	"github.com/yourusername/borders/internal/types"
)

func TestCanvasBox(t *testing.T) {
	c := NewCanvas(6, 4)
	c.Box(0, 0, 6, 4, ASCIIStyle)
	c.Text(1, 1, "ab")

	want := "+----+\n|ab  |\n|    |\n+----+"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	c.Set(10, 10, 'x')
	if c.At(10, 10) != ' ' {
		t.Error("out-of-range At() should return space")
	}
	if c.At(0, 0) != '+' {
		t.Errorf("At(0,0) = %q, want '+'", c.At(0, 0))
	}
}

func TestCanvasBoxTooSmall(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Box(0, 0, 1, 3, ASCIIStyle)
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("degenerate box drew %q", c.String())
	}
}

func TestViewportProject(t *testing.T) {
	vp := NewViewport(types.Rect{Width: 800, Height: 600}, 42, 23)

	x, y, w, h := vp.Project(types.Rect{Width: 800, Height: 600})
	if x != 1 || y != 1 || w != 40 || h != 15 {
		t.Errorf("Project(full) = %d,%d %dx%d, want 1,1 40x15", x, y, w, h)
	}

	x, y, w, h = vp.Project(types.Rect{X: 400, Y: 200, Width: 400, Height: 200})
	if x != 21 || y != 6 || w != 20 || h != 5 {
		t.Errorf("Project(offset) = %d,%d %dx%d, want 21,6 20x5", x, y, w, h)
	}
}

func TestViewportEmptyBounds(t *testing.T) {
	vp := NewViewport(types.Rect{}, 10, 10)
	if _, _, w, h := vp.Project(types.Rect{Width: 5, Height: 5}); w != 0 || h != 0 {
		t.Errorf("Project() on empty viewport = %dx%d, want 0x0", w, h)
	}
}

func TestVisualizeFrame(t *testing.T) {
	opts := VisualizationOptions{MaxWidth: 42, MaxHeight: 23}
	out := VisualizeFrame(types.Rect{Width: 800, Height: 600}, "w1", opts)
	lines := strings.Split(out, "\n")

	if len(lines) != 23 {
		t.Fatalf("got %d lines, want 23", len(lines))
	}
	if lines[0] != "+"+strings.Repeat("-", 40)+"+" {
		t.Errorf("top line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "|+---") {
		t.Errorf("border top line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "||w1") {
		t.Errorf("label line = %q", lines[2])
	}
}

func TestVisualizeStatusNoBorder(t *testing.T) {
	out := VisualizeStatus(&models.Status{State: "no-focus"}, VisualizationOptions{MaxWidth: 20, MaxHeight: 10})
	if out != "No border (no-focus)\n" {
		t.Errorf("VisualizeStatus() = %q", out)
	}
}

func TestStatusRows(t *testing.T) {
	st := &models.Status{
		State:         "focused",
		PID:           501,
		WindowID:      77,
		Frame:         types.Rect{X: 10, Y: 20, Width: 300, Height: 200},
		Subscriptions: []string{"AXFocusedWindowChanged", "AXWindowMoved"},
		DebugOutput:   true,
	}

	rows := map[string]string{}
	for _, r := range StatusRows(st) {
		rows[r[0]] = r[1]
	}

	tests := map[string]string{
		"State":          "focused",
		"Application":    "pid 501",
		"Window":         "77",
		"Frame":          st.Frame.String(),
		"Subscriptions":  "FocusedWindowChanged, WindowMoved",
		"Debug Output":   "on",
		"Forced Hidden":  "no",
		"Border Surface": "-",
	}
	for field, want := range tests {
		if rows[field] != want {
			t.Errorf("%s = %q, want %q", field, rows[field], want)
		}
	}
}

func TestPrintStatusTable(t *testing.T) {
	var buf bytes.Buffer
	PrintStatusTable(&buf, &models.Status{State: "suspended", Overview: true})

	out := buf.String()
	for _, want := range []string{"suspended", "Overview", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
