// Package daemon wires the platform, the run loop, the focus machine and
// the command socket into the border process.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/yourusername/borders/internal/bridge"
	"github.com/yourusername/borders/internal/config"
	"github.com/yourusername/borders/internal/focus"
	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/message"
	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/runloop"
	"github.com/yourusername/borders/internal/server"
	"github.com/yourusername/borders/internal/state"
	"github.com/yourusername/borders/internal/window"
)

// Stage identifies the setup step that failed.
type Stage int

const (
	StagePermission Stage = iota + 1
	StageEvents
	StageConfig
	StageSocket
)

func (s Stage) String() string {
	switch s {
	case StagePermission:
		return "permission"
	case StageEvents:
		return "events"
	case StageConfig:
		return "config"
	case StageSocket:
		return "socket"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ErrNotTrusted is returned when the process may not use accessibility.
var ErrNotTrusted = errors.New("accessibility permission not granted")

// SetupError is a failure before the run loop starts.
type SetupError struct {
	Stage Stage
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s setup failed: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// shutdownTimeout bounds the final cleanup call on the run loop.
const shutdownTimeout = 2 * time.Second

// Options configures a Daemon.
type Options struct {
	Config *config.Config
	// SocketPath overrides the configured socket.
	SocketPath string
	// StatePath overrides ~/.local/state/borders/daemon.json.
	StatePath string
	// Prompt asks the user for accessibility permission if missing.
	Prompt bool
}

// Daemon is the border process.
type Daemon struct {
	provider  *platform.Provider
	cfg       *config.Config
	prompt    bool
	statePath string

	loop    *runloop.Loop
	machine *focus.Machine
	bridge  *bridge.Bridge
	server  *server.Server
	state   *state.DaemonState
}

// LoadConfig reads and validates the config file, reporting failures as a
// config stage SetupError.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, &SetupError{Stage: StageConfig, Err: err}
	}
	return cfg, nil
}

// New assembles a daemon on top of p. Nothing touches the platform until
// Setup.
func New(p *platform.Provider, opts Options) *Daemon {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	socket := opts.SocketPath
	if socket == "" {
		socket = cfg.GetSocketPath()
	}
	statePath := opts.StatePath
	if statePath == "" {
		statePath = state.GetStatePath()
	}

	loop := runloop.New()
	overlay := window.New(p.Compositor, window.Style{
		Width: cfg.GetBorderWidth(),
		Color: cfg.GetBorderColor(),
		Level: cfg.Border.Level,
	})

	// The bridge needs the machine as its target, so the observer callback
	// resolves it lazily.
	var br *bridge.Bridge
	machine := focus.New(p, overlay, loop, focus.Options{
		InitialDelay: cfg.GetInitialDelay(),
		PollInterval: cfg.GetPollInterval(),
		Notify: func(kind platform.Notification, el platform.Element) {
			br.Notification(kind, el)
		},
	})
	br = bridge.New(loop, machine)

	return &Daemon{
		provider:  p,
		cfg:       cfg,
		prompt:    opts.Prompt,
		statePath: statePath,
		loop:      loop,
		machine:   machine,
		bridge:    br,
		server:    server.New(socket, loop, message.NewHandler(machine)),
		state:     state.NewDaemonState(os.Getpid(), socket),
	}
}

// Setup checks accessibility permission, installs the process event
// handlers and binds the command socket, in that order.
func (d *Daemon) Setup() error {
	if !d.provider.Accessibility.IsTrusted(d.prompt) {
		return &SetupError{Stage: StagePermission, Err: ErrNotTrusted}
	}

	if err := d.provider.Events.Install(d.bridge.Handlers()); err != nil {
		return &SetupError{Stage: StageEvents, Err: err}
	}

	if err := d.server.Listen(); err != nil {
		return &SetupError{Stage: StageSocket, Err: err}
	}

	if err := d.state.SaveTo(d.statePath); err != nil {
		logging.Warn().Err(err).Str("path", d.statePath).Msg("failed to write daemon state")
	}

	logging.SetVerbose(d.cfg.DebugOutput)
	return nil
}

// Run subscribes to the front process, draws the first border and then
// blocks in the platform main loop until ctx is cancelled. It must be
// called from the main OS thread after a successful Setup.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- d.loop.Run(loopCtx)
	}()

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- d.server.Serve(ctx)
	}()

	d.bridge.WatchSignals(ctx)
	d.loop.Post(d.start)

	go func() {
		<-ctx.Done()
		d.provider.Events.Stop()
	}()

	logging.Info().Int("pid", os.Getpid()).Str("socket", d.server.Path()).Msg("borders started")
	d.provider.Events.Run()

	cancel()
	d.server.Close()
	if err := <-serveDone; err != nil {
		logging.Error().Err(err).Msg("command socket stopped")
	}

	closeCtx, cancelClose := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := d.loop.Call(closeCtx, d.machine.Close); err != nil {
		logging.Warn().Err(err).Msg("cleanup did not run")
	}
	cancelClose()

	stopLoop()
	<-loopDone

	if err := d.state.RemoveFrom(d.statePath); err != nil {
		logging.Warn().Err(err).Msg("failed to remove daemon state")
	}

	logging.Info().Msg("borders stopped")
	return nil
}

// start runs on the loop: it subscribes to the front process and commits
// the first border.
func (d *Daemon) start() {
	pid, err := d.provider.WindowServer.FrontProcess()
	if err != nil {
		logging.Warn().Err(err).Msg("no front process at startup")
		d.machine.Refresh()
		return
	}
	d.machine.ApplicationSwitched(pid)
}
