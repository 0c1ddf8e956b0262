package models

import "github.com/yourusername/borders/internal/types"

// Status is a point-in-time view of the border daemon
type Status struct {
	State            string     `json:"state" yaml:"state"`
	PID              int        `json:"pid" yaml:"pid"` // Subscribed application, 0 if none
	WindowID         uint32     `json:"windowId" yaml:"windowId"`
	Frame            types.Rect `json:"frame" yaml:"frame"` // Last committed border frame
	OverlayID        uint32     `json:"overlayId" yaml:"overlayId"`
	ActiveSpace      uint64     `json:"activeSpace" yaml:"activeSpace"`
	Subscriptions    []string   `json:"subscriptions" yaml:"subscriptions"`
	PendingSpaceMove bool       `json:"pendingSpaceMove" yaml:"pendingSpaceMove"`
	ForcedHidden     bool       `json:"forcedHidden" yaml:"forcedHidden"`
	Overview         bool       `json:"overview" yaml:"overview"`
	DebugOutput      bool       `json:"debugOutput" yaml:"debugOutput"`
	Refreshes        uint64     `json:"refreshes" yaml:"refreshes"`
}
