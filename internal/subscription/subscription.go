// Package subscription manages the accessibility notification registrations
// for the frontmost application.
package subscription

import (
	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/platform"
)

// Set is one application's live notification registrations.
type Set struct {
	PID      int
	App      platform.Element
	Observer platform.Observer
	// Kinds lists the notifications that registered successfully, in
	// registration order.
	Kinds []platform.Notification
}

// Manager owns at most one Set at a time.
type Manager struct {
	ax      platform.Accessibility
	handler platform.NotificationFunc
	current *Set
}

// NewManager returns a Manager delivering notifications to handler.
func NewManager(ax platform.Accessibility, handler platform.NotificationFunc) *Manager {
	return &Manager{ax: ax, handler: handler}
}

// Current returns the active set, or nil.
func (m *Manager) Current() *Set {
	return m.current
}

// Application returns the handle of the subscribed application, or nil.
func (m *Manager) Application() platform.Element {
	if m.current == nil {
		return nil
	}
	return m.current.App
}

// Subscribe registers every notification kind for pid and attaches the
// observer to the run loop. Any existing set is unsubscribed first.
// Registration failures are logged per kind and tolerated; if the observer
// cannot be created the set still holds the application handle so focus
// can be queried.
func (m *Manager) Subscribe(pid int) *Set {
	m.Unsubscribe()

	set := &Set{
		PID: pid,
		App: m.ax.CreateApplication(pid),
	}
	m.current = set

	observer, err := m.ax.NewObserver(pid, m.handler)
	if err != nil {
		logging.Warn().Err(err).Int("pid", pid).Msg("failed to create observer")
		return set
	}
	set.Observer = observer

	for _, kind := range platform.Notifications {
		if err := observer.Add(set.App, kind); err != nil {
			logging.Warn().Err(err).Int("pid", pid).Str("kind", kind.String()).Msg("failed to register notification")
			continue
		}
		set.Kinds = append(set.Kinds, kind)
	}
	observer.Attach()

	logging.Debug().Int("pid", pid).Int("kinds", len(set.Kinds)).Msg("subscribed")
	return set
}

// Unsubscribe removes every registered kind in reverse order, detaches the
// observer and releases both handles. Safe to call without an active set.
func (m *Manager) Unsubscribe() {
	set := m.current
	if set == nil {
		return
	}
	m.current = nil

	if set.Observer != nil {
		for i := len(set.Kinds) - 1; i >= 0; i-- {
			if err := set.Observer.Remove(set.App, set.Kinds[i]); err != nil {
				logging.Debug().Err(err).Int("pid", set.PID).Str("kind", set.Kinds[i].String()).Msg("failed to remove notification")
			}
		}
		set.Observer.Detach()
		set.Observer.Release()
	}
	if set.App != nil {
		set.App.Release()
	}

	logging.Debug().Int("pid", set.PID).Msg("unsubscribed")
}

// Resubscribe replaces the active set with one for pid.
func (m *Manager) Resubscribe(pid int) *Set {
	return m.Subscribe(pid)
}
