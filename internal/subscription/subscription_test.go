package subscription

import (
	"testing"

	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/platform/fake"
	"github.com/yourusername/borders/internal/types"
)

func noop(platform.Notification, platform.Element) {}

func TestSubscribeRegistersAllKinds(t *testing.T) {
	ax := fake.NewAccessibility()
	m := NewManager(ax, noop)

	set := m.Subscribe(42)

	if set.PID != 42 {
		t.Errorf("PID = %d, want 42", set.PID)
	}
	if len(set.Kinds) != len(platform.Notifications) {
		t.Errorf("len(Kinds) = %d, want %d", len(set.Kinds), len(platform.Notifications))
	}
	if got := ax.ActiveRegistrations(); got != 5 {
		t.Errorf("ActiveRegistrations() = %d, want 5", got)
	}
	if got := ax.AttachedObservers(); got != 1 {
		t.Errorf("AttachedObservers() = %d, want 1", got)
	}
	if m.Application() == nil {
		t.Error("Application() = nil after Subscribe")
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		run  func(m *Manager)
	}{
		{"unsubscribe without subscribe", func(m *Manager) {
			m.Unsubscribe()
		}},
		{"unsubscribe twice", func(m *Manager) {
			m.Subscribe(1)
			m.Unsubscribe()
			m.Unsubscribe()
		}},
		{"subscribe then unsubscribe", func(m *Manager) {
			m.Subscribe(1)
			m.Unsubscribe()
		}},
		{"resubscribe churn", func(m *Manager) {
			for pid := 1; pid <= 10; pid++ {
				m.Resubscribe(pid)
			}
			m.Unsubscribe()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax := fake.NewAccessibility()
			m := NewManager(ax, noop)

			tt.run(m)

			if got := ax.ActiveRegistrations(); got != 0 {
				t.Errorf("ActiveRegistrations() = %d, want 0", got)
			}
			if got := ax.LiveObservers(); got != 0 {
				t.Errorf("LiveObservers() = %d, want 0", got)
			}
			if got := ax.LiveHandles(); got != 0 {
				t.Errorf("LiveHandles() = %d, want 0", got)
			}
			if got := ax.DoubleReleases(); got != 0 {
				t.Errorf("DoubleReleases() = %d, want 0", got)
			}
			if m.Current() != nil {
				t.Error("Current() != nil after Unsubscribe")
			}
		})
	}
}

func TestSubscribeReplacesPreviousSet(t *testing.T) {
	ax := fake.NewAccessibility()
	m := NewManager(ax, noop)

	m.Subscribe(1)
	m.Subscribe(2)

	if got := ax.LiveObservers(); got != 1 {
		t.Errorf("LiveObservers() = %d, want 1", got)
	}
	if got := ax.ActiveRegistrations(); got != 5 {
		t.Errorf("ActiveRegistrations() = %d, want 5", got)
	}
	if got := m.Current().PID; got != 2 {
		t.Errorf("Current().PID = %d, want 2", got)
	}
}

func TestPartialRegistration(t *testing.T) {
	ax := fake.NewAccessibility()
	ax.FailKinds[platform.WindowMiniaturized] = true
	ax.FailKinds[platform.UIElementDestroyed] = true
	m := NewManager(ax, noop)

	set := m.Subscribe(7)

	want := []platform.Notification{platform.FocusedWindowChanged, platform.WindowMoved, platform.WindowResized}
	if len(set.Kinds) != len(want) {
		t.Fatalf("Kinds = %v, want %v", set.Kinds, want)
	}
	for i := range want {
		if set.Kinds[i] != want[i] {
			t.Errorf("Kinds[%d] = %v, want %v", i, set.Kinds[i], want[i])
		}
	}
	if ax.AttachedObservers() != 1 {
		t.Error("observer not attached after partial registration")
	}

	m.Unsubscribe()
	if got := ax.ActiveRegistrations(); got != 0 {
		t.Errorf("ActiveRegistrations() = %d, want 0", got)
	}
}

func TestObserverCreationFailure(t *testing.T) {
	ax := fake.NewAccessibility()
	ax.FailObserver = true
	m := NewManager(ax, noop)

	set := m.Subscribe(3)
	if set.Observer != nil {
		t.Error("Observer != nil after creation failure")
	}
	if m.Application() == nil {
		t.Error("Application() = nil; application handle should survive observer failure")
	}

	m.Unsubscribe()
	if got := ax.LiveHandles(); got != 0 {
		t.Errorf("LiveHandles() = %d, want 0", got)
	}
}

func TestNotificationsReachHandler(t *testing.T) {
	ax := fake.NewAccessibility()
	var got []platform.Notification
	m := NewManager(ax, func(kind platform.Notification, el platform.Element) {
		got = append(got, kind)
		el.Release()
	})

	w := &fake.Window{ID: 9, Frame: types.Rect{Width: 10, Height: 10}}
	m.Subscribe(5)
	ax.Notify(5, platform.WindowMoved, w)
	ax.Notify(6, platform.WindowMoved, w)

	m.Unsubscribe()
	if n := ax.Notify(5, platform.WindowResized, w); n != 0 {
		t.Errorf("Notify after Unsubscribe delivered to %d observers", n)
	}

	if len(got) != 1 || got[0] != platform.WindowMoved {
		t.Errorf("handler received %v, want [AXWindowMoved]", got)
	}
}
