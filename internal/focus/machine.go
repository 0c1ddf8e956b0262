// Package focus keeps the border in sync with the focused window.
//
// Every Machine method must be called from the run loop goroutine.
package focus

import (
	"time"

	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/models"
	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/probe"
	"github.com/yourusername/borders/internal/reconcile"
	"github.com/yourusername/borders/internal/subscription"
	"github.com/yourusername/borders/internal/window"
)

// Options configures a Machine.
type Options struct {
	// InitialDelay is the wait before the first overview probe.
	InitialDelay time.Duration
	// PollInterval is the overview probe period.
	PollInterval time.Duration
	// Notify receives accessibility notifications for the subscribed
	// application.
	Notify platform.NotificationFunc
}

// Machine owns the focus identity, the subscription and the border surface.
type Machine struct {
	ax      platform.Accessibility
	comp    platform.Compositor
	ws      platform.WindowServer
	subs    *subscription.Manager
	overlay *window.Overlay
	rec     *reconcile.Reconciler
	sched   Scheduler
	opts    Options

	identity         Identity
	state            State
	pendingSpaceMove bool
	forcedHidden     bool
	overview         bool
	refreshes        uint64
}

// New returns a Machine in NoFocus with no subscription.
func New(p *platform.Provider, overlay *window.Overlay, sched Scheduler, opts Options) *Machine {
	notify := opts.Notify
	if notify == nil {
		notify = func(_ platform.Notification, el platform.Element) { el.Release() }
	}
	return &Machine{
		ax:      p.Accessibility,
		comp:    p.Compositor,
		ws:      p.WindowServer,
		subs:    subscription.NewManager(p.Accessibility, notify),
		overlay: overlay,
		rec:     reconcile.New(p.Compositor, p.WindowServer),
		sched:   sched,
		opts:    opts,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Identity returns the tracked focus identity.
func (m *Machine) Identity() Identity {
	id := m.identity
	id.App = m.subs.Application()
	return id
}

// PendingSpaceMove reports whether the next commit moves the border to the
// active space.
func (m *Machine) PendingSpaceMove() bool {
	return m.pendingSpaceMove
}

// Refresh re-reads the focused window and commits the border around it.
func (m *Machine) Refresh() {
	m.refreshes++
	m.forcedHidden = false

	if m.overview {
		m.overlay.Hide()
		m.setState(Suspended)
		return
	}

	app := m.subs.Application()
	if app == nil {
		m.loseFocus("no subscribed application")
		return
	}

	win, err := m.ax.FocusedWindow(app)
	if err != nil || win == nil {
		m.loseFocus("no focused window")
		return
	}

	wid, err := m.ax.WindowID(win)
	if err != nil || wid == 0 {
		win.Release()
		m.loseFocus("focused window has no id")
		return
	}

	m.setIdentity(win, wid)
	frame := probe.Frame(m.ax, win)

	if err := m.overlay.EnsureCreated(frame); err != nil {
		logging.Error().Err(err).Uint32("windowId", wid).Msg("cannot create border")
		m.setState(NoFocus)
		return
	}

	m.comp.DisableUpdate()
	m.overlay.Hide()
	if m.pendingSpaceMove {
		sid := m.rec.ActiveSpace()
		m.overlay.MoveToSpace(sid)
		m.pendingSpaceMove = false
		logging.Debug().Uint64("spaceId", sid).Msg("applied pending space move")
	}
	m.overlay.SetShapeAndOutline(frame)
	m.comp.ReenableUpdate()

	if m.rec.OnActiveSpace(m.overlay.ID()) {
		m.overlay.Show()
		m.setState(Focused)
	} else {
		m.setState(FocusedPendingMove)
	}

	logging.Debug().Uint32("windowId", wid).Str("frame", frame.String()).Str("state", m.state.String()).Msg("border committed")
}

// ApplicationSwitched moves the subscription to pid and refreshes.
func (m *Machine) ApplicationSwitched(pid int) {
	logging.Debug().Int("pid", pid).Msg("application switched")
	m.subs.Resubscribe(pid)
	m.Refresh()
}

// WindowEvent handles an accessibility notification. The element is
// borrowed; the caller releases it.
func (m *Machine) WindowEvent(kind platform.Notification, el platform.Element) {
	switch kind {
	case platform.FocusedWindowChanged:
		m.Refresh()
	case platform.WindowMoved, platform.WindowResized, platform.WindowMiniaturized:
		if m.identity.ID == 0 || el == nil {
			return
		}
		if wid, err := m.ax.WindowID(el); err == nil && wid == m.identity.ID {
			m.Refresh()
		}
	case platform.UIElementDestroyed:
		if m.identity.Window != nil && el != nil && m.identity.Window.Equal(el) {
			m.Refresh()
		}
	}
}

// SpaceChanged hides the border, refreshes, and moves the surface to the
// new active space before it may be shown again.
func (m *Machine) SpaceChanged() {
	if m.overlay.Created() {
		m.overlay.Hide()
	}
	m.Refresh()

	// The poll's closing refresh performs the move.
	if m.overview {
		m.pendingSpaceMove = true
		return
	}
	if !m.overlay.Created() {
		return
	}

	sid := m.rec.ActiveSpace()
	m.comp.DisableUpdate()
	m.overlay.MoveToSpace(sid)
	m.comp.ReenableUpdate()

	if m.state == FocusedPendingMove && m.rec.OnActiveSpace(m.overlay.ID()) {
		m.overlay.Show()
		m.setState(Focused)
	}
	logging.Debug().Uint64("spaceId", sid).Str("state", m.state.String()).Msg("space changed")
}

// DisplayChanged hides the border and defers the space move into the
// next commit.
func (m *Machine) DisplayChanged() {
	if m.overlay.Created() {
		m.overlay.Hide()
	}
	m.pendingSpaceMove = true
	m.Refresh()
}

// OverviewActivated hides the border and polls until the overview closes.
// Only one poll runs at a time.
func (m *Machine) OverviewActivated() {
	m.overlay.Hide()
	m.setState(Suspended)

	if m.overview {
		return
	}
	m.overview = true
	m.sched.After(m.opts.InitialDelay, m.pollOverview)
}

func (m *Machine) pollOverview() {
	if !m.overview {
		return
	}
	if m.rec.OverviewVisible() {
		m.sched.After(m.opts.PollInterval, m.pollOverview)
		return
	}

	m.overview = false
	logging.Debug().Msg("overview closed")
	m.Refresh()
}

// ExternalSignal resubscribes to the front process and refreshes, unless
// the display is animating, in which case the border stays hidden until the
// next refresh.
func (m *Machine) ExternalSignal() {
	m.overlay.Hide()

	pid, err := m.ws.FrontProcess()
	if err != nil {
		logging.Warn().Err(err).Msg("cannot resolve front process")
		m.subs.Unsubscribe()
		m.loseFocus("no front process")
		return
	}
	m.subs.Resubscribe(pid)

	if m.rec.DisplayAnimating() {
		m.forcedHidden = true
		m.setState(Suspended)
		logging.Debug().Int("pid", pid).Msg("display animating, border held hidden")
		return
	}
	m.Refresh()
}

// Status returns a snapshot for diagnostics.
func (m *Machine) Status() models.Status {
	s := models.Status{
		State:            m.state.String(),
		WindowID:         m.identity.ID,
		Frame:            m.overlay.Frame(),
		OverlayID:        m.overlay.ID(),
		ActiveSpace:      m.rec.ActiveSpace(),
		PendingSpaceMove: m.pendingSpaceMove,
		ForcedHidden:     m.forcedHidden,
		Overview:         m.overview,
		DebugOutput:      logging.Verbose(),
		Refreshes:        m.refreshes,
	}
	if set := m.subs.Current(); set != nil {
		s.PID = set.PID
		for _, kind := range set.Kinds {
			s.Subscriptions = append(s.Subscriptions, kind.String())
		}
	}
	return s
}

// Close releases the subscription and the tracked window handle.
func (m *Machine) Close() {
	m.overlay.Hide()
	m.subs.Unsubscribe()
	m.setIdentity(nil, 0)
}

func (m *Machine) loseFocus(reason string) {
	m.setIdentity(nil, 0)
	m.overlay.Hide()
	m.setState(NoFocus)
	logging.Debug().Str("reason", reason).Msg("border hidden")
}

// setIdentity replaces the tracked window, releasing the previous handle.
func (m *Machine) setIdentity(win platform.Element, wid uint32) {
	if m.identity.Window != nil {
		m.identity.Window.Release()
	}
	m.identity.Window = win
	m.identity.ID = wid
}

func (m *Machine) setState(s State) {
	if m.state != s {
		logging.Debug().Str("from", m.state.String()).Str("state", s.String()).Msg("state change")
	}
	m.state = s
}
