package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/borders"
	// DefaultStateFile is the state file name
	DefaultStateFile = "daemon.json"
)

// ErrNoDaemon is returned when no daemon state is recorded
var ErrNoDaemon = errors.New("borders daemon is not running")

// GetStatePath returns the full path to the state file
func GetStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStateFile)
}

// LoadState loads state from the default path
func LoadState() (*DaemonState, error) {
	return LoadStateFrom(GetStatePath())
}

// LoadStateFrom loads state from a specific path.
// A missing file yields ErrNoDaemon.
func LoadStateFrom(path string) (*DaemonState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDaemon
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state DaemonState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Version > StateVersion {
		return nil, fmt.Errorf("state file version %d is newer than supported %d", state.Version, StateVersion)
	}

	return &state, nil
}

// Save persists state to the default path
func (ds *DaemonState) Save() error {
	return ds.SaveTo(GetStatePath())
}

// SaveTo persists state to a specific path
func (ds *DaemonState) SaveTo(path string) error {
	ds.mu.Lock()
	ds.LastUpdated = time.Now()
	ds.mu.Unlock()

	ds.mu.RLock()
	defer ds.mu.RUnlock()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up temp file on failure
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// Remove deletes the default state file if it still belongs to this daemon
func (ds *DaemonState) Remove() error {
	return ds.RemoveFrom(GetStatePath())
}

// RemoveFrom deletes the state file at path if it records the same pid.
// A file written by a newer daemon is left in place.
func (ds *DaemonState) RemoveFrom(path string) error {
	current, err := LoadStateFrom(path)
	if err != nil {
		if errors.Is(err, ErrNoDaemon) {
			return nil
		}
		return err
	}

	ds.mu.RLock()
	pid := ds.PID
	ds.mu.RUnlock()

	if current.PID != pid {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
