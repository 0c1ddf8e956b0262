package state

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
)

// DaemonState records the running daemon so CLI commands can find it
type DaemonState struct {
	Version     int       `json:"version"`
	PID         int       `json:"pid"`
	Socket      string    `json:"socket"`
	StartedAt   time.Time `json:"startedAt"`
	LastUpdated time.Time `json:"lastUpdated"`

	mu sync.RWMutex `json:"-"` // For thread-safe access (not serialized)
}

// NewDaemonState creates state for the daemon with the given pid
func NewDaemonState(pid int, socket string) *DaemonState {
	now := time.Now()
	return &DaemonState{
		Version:     StateVersion,
		PID:         pid,
		Socket:      socket,
		StartedAt:   now,
		LastUpdated: now,
	}
}

// Alive reports whether the recorded process still exists
func (ds *DaemonState) Alive() bool {
	ds.mu.RLock()
	pid := ds.PID
	ds.mu.RUnlock()

	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// Signal sends SIGUSR1 to the recorded daemon, forcing a refresh
func (ds *DaemonState) Signal() error {
	ds.mu.RLock()
	pid := ds.PID
	ds.mu.RUnlock()

	if pid <= 0 {
		return ErrNoDaemon
	}
	return unix.Kill(pid, unix.SIGUSR1)
}

// Uptime returns how long the daemon has been running
func (ds *DaemonState) Uptime() time.Duration {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return time.Since(ds.StartedAt).Round(time.Second)
}
