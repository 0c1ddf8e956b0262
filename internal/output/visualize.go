package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/borders/internal/models"
	"github.com/yourusername/borders/internal/types"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions sizes the drawing to the terminal
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height - 4,
	}
}

// VisualizeFrame draws frame inside the screen region from the origin to
// its far corner
func VisualizeFrame(frame types.Rect, label string, opts VisualizationOptions) string {
	bounds := types.Rect{Width: frame.X + frame.Width, Height: frame.Y + frame.Height}
	if frame.X < 0 || frame.Y < 0 {
		bounds = frame
	}

	vp := NewViewport(bounds, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(vp.Cols, vp.Rows)

	outer, inner := ASCIIStyle, ASCIIStyle
	if opts.UseUnicode {
		outer, inner = UnicodeStyle, HeavyStyle
	}
	canvas.Box(0, 0, vp.Cols, vp.Rows, outer)

	x, y, w, h := vp.Project(frame)
	if w >= 2 && h >= 2 {
		canvas.Box(x, y, w, h, inner)
		if len(label) <= w-2 && h > 2 {
			canvas.Text(x+1, y+1, label)
		}
	}
	return canvas.String()
}

// VisualizeStatus renders the committed border of a daemon snapshot
func VisualizeStatus(st *models.Status, opts VisualizationOptions) string {
	if st.WindowID == 0 || st.Frame.IsEmpty() {
		return fmt.Sprintf("No border (%s)\n", st.State)
	}

	label := fmt.Sprintf("%d (%.0fx%.0f)", st.WindowID, st.Frame.Width, st.Frame.Height)
	header := fmt.Sprintf("Window %d at %s [%s]\n", st.WindowID, st.Frame.String(), st.State)
	return header + VisualizeFrame(st.Frame, label, opts) + "\n"
}

// PrintVisualization writes a colored visualization to w
func PrintVisualization(w io.Writer, st *models.Status, opts VisualizationOptions) {
	result := VisualizeStatus(st, opts)
	if color.NoColor {
		fmt.Fprint(w, result)
		return
	}
	color.New(color.FgYellow).Fprint(w, result)
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
