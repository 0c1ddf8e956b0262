package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yourusername/borders/internal/daemon"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"permission", &daemon.SetupError{Stage: daemon.StagePermission, Err: daemon.ErrNotTrusted}, 1},
		{"events", &daemon.SetupError{Stage: daemon.StageEvents, Err: errors.New("x")}, 2},
		{"config", &daemon.SetupError{Stage: daemon.StageConfig, Err: errors.New("x")}, 3},
		{"socket", &daemon.SetupError{Stage: daemon.StageSocket, Err: errors.New("x")}, 4},
		{"wrapped socket", fmt.Errorf("startup: %w", &daemon.SetupError{Stage: daemon.StageSocket, Err: errors.New("x")}), 4},
		{"other", errors.New("boom"), 5},
	}

	setup := map[int]bool{exitPermission: true, exitEvents: true, exitConfig: true, exitSocket: true}
	if setup[exitFailure] || exitFailure == exitOK {
		t.Fatalf("exitFailure = %d collides with another status", exitFailure)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveSocketFlag(t *testing.T) {
	old := socketPath
	t.Cleanup(func() { socketPath = old })

	socketPath = "/tmp/explicit.sock"
	if got := resolveSocket(); got != "/tmp/explicit.sock" {
		t.Errorf("resolveSocket() = %q, want flag value", got)
	}
}

func TestResolveSocketDefault(t *testing.T) {
	old, oldCfg := socketPath, configPath
	t.Cleanup(func() { socketPath, configPath = old, oldCfg })

	t.Setenv("HOME", t.TempDir())
	t.Setenv("USER", "tester")
	socketPath, configPath = "", ""

	if got := resolveSocket(); got != "/tmp/borders_tester.socket" {
		t.Errorf("resolveSocket() = %q, want default socket", got)
	}
}
