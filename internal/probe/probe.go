// Package probe reads window geometry through the accessibility layer.
package probe

import (
	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/types"
)

// Frame returns the window's position and size in screen coordinates.
// An unavailable attribute leaves the matching fields zero; Frame never
// fails. The degraded rect is still committed by callers.
func Frame(ax platform.Accessibility, window platform.Element) types.Rect {
	var frame types.Rect

	if pos, err := ax.Position(window); err == nil {
		frame.X, frame.Y = pos.X, pos.Y
	} else {
		logging.Debug().Err(err).Msg("window position unavailable")
	}

	if size, err := ax.Size(window); err == nil {
		frame.Width, frame.Height = size.Width, size.Height
	} else {
		logging.Debug().Err(err).Msg("window size unavailable")
	}

	return frame
}
