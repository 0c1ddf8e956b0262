package probe

import (
	"testing"

	"github.com/yourusername/borders/internal/platform/fake"
	"github.com/yourusername/borders/internal/types"
)

func TestFrame(t *testing.T) {
	frame := types.Rect{X: 100, Y: 50, Width: 800, Height: 600}

	tests := []struct {
		name   string
		window fake.Window
		want   types.Rect
	}{
		{
			name:   "both attributes",
			window: fake.Window{ID: 1, Frame: frame},
			want:   frame,
		},
		{
			name:   "position missing",
			window: fake.Window{ID: 1, Frame: frame, NoPosition: true},
			want:   types.Rect{Width: 800, Height: 600},
		},
		{
			name:   "size missing",
			window: fake.Window{ID: 1, Frame: frame, NoSize: true},
			want:   types.Rect{X: 100, Y: 50},
		},
		{
			name:   "destroyed window",
			window: fake.Window{ID: 1, Frame: frame, Destroyed: true},
			want:   types.Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax := fake.NewAccessibility()
			w := tt.window
			handle := ax.WindowHandle(&w)
			defer handle.Release()

			if got := Frame(ax, handle); got != tt.want {
				t.Errorf("Frame() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameReleasedHandle(t *testing.T) {
	ax := fake.NewAccessibility()
	handle := ax.WindowHandle(&fake.Window{ID: 3, Frame: types.Rect{Width: 10, Height: 10}})
	handle.Release()

	if got := Frame(ax, handle); !got.IsEmpty() {
		t.Errorf("Frame() on released handle = %v, want empty", got)
	}
}
