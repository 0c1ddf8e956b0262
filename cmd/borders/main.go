package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/borders/internal/client"
	"github.com/yourusername/borders/internal/config"
	"github.com/yourusername/borders/internal/daemon"
	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/output"
	"github.com/yourusername/borders/internal/platform"
	"github.com/yourusername/borders/internal/render"
	"github.com/yourusername/borders/internal/state"
	"github.com/yourusername/borders/internal/types"
)

// Process exit codes. Setup failures each get their own code.
const (
	exitOK         = 0
	exitPermission = 1
	exitEvents     = 2
	exitConfig     = 3
	exitSocket     = 4
	exitFailure    = 5
)

var (
	socketPath string
	configPath string
	timeout    time.Duration
	jsonOutput bool
	yamlOutput bool
	noColor    bool
	logStderr  bool
	verbose    bool
	visual     bool

	previewWidth  float64
	previewHeight float64
	previewOut    string
	previewLabel  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd runs the daemon when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "borders",
	Short: "Draw a border around the focused window",
	Long: `borders keeps a colored outline around the focused window on macOS.

Run without a subcommand to start the daemon. The other commands talk to a
running daemon over its command socket.`,
	Version:       "0.1.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

// runCmd starts the daemon explicitly
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the border daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

// configCmd forwards a config message to the daemon
var configCmd = &cobra.Command{
	Use:   "config <command> [value]",
	Short: "Read or change daemon settings",
	Long: `Sends a config message to the running daemon.

  borders config debug_output        prints on or off
  borders config debug_output on|off sets verbose logging`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := sendMessage(append([]string{"config"}, args...))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// validateCmd checks a config file without starting the daemon
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if jsonOutput {
			return printJSON(cfg)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Border: width %v, color %s, level %d\n", cfg.GetBorderWidth(), cfg.GetBorderColor().Hex(), cfg.Border.Level)
		fmt.Printf("  Overview: delay %v, poll %v\n", cfg.GetInitialDelay(), cfg.GetPollInterval())
		fmt.Printf("  Socket: %s\n", cfg.GetSocketPath())
		return nil
	},
}

// signalCmd forces the daemon to re-read the focused window
var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Force the daemon to refresh the border",
	Long:  `Sends SIGUSR1 to the daemon recorded in the state file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := state.LoadState()
		if err != nil {
			return err
		}
		if !ds.Alive() {
			return fmt.Errorf("%w (stale pid %d)", state.ErrNoDaemon, ds.PID)
		}
		if err := ds.Signal(); err != nil {
			return fmt.Errorf("failed to signal pid %d: %w", ds.PID, err)
		}

		successColor.Printf("✓ Signalled borders (pid %d)\n", ds.PID)
		return nil
	},
}

// statusCmd shows the daemon snapshot
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daemon state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(resolveSocket(), timeout)
		defer c.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		st, err := c.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		switch {
		case jsonOutput:
			return printJSON(st)
		case yamlOutput:
			return printYAML(st)
		case visual:
			output.PrintVisualization(os.Stdout, st, output.DefaultVisualizationOptions())
			return nil
		}

		if ds, err := state.LoadState(); err == nil {
			keyColor.Print("Daemon: ")
			fmt.Printf("pid %d, up %s\n", ds.PID, ds.Uptime())
		}
		output.PrintStatusTable(os.Stdout, st)
		return nil
	},
}

// previewCmd renders the configured border to a PNG file
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the configured border to a PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		img, err := render.Outline(types.Size{Width: previewWidth, Height: previewHeight}, render.Options{
			Width:   cfg.GetBorderWidth(),
			Color:   cfg.GetBorderColor(),
			Padding: render.DefaultPadding,
			Label:   previewLabel,
		})
		if err != nil {
			return err
		}

		f, err := os.Create(previewOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", previewOut, err)
		}
		defer f.Close()

		if err := render.WritePNG(f, img); err != nil {
			return err
		}

		successColor.Printf("✓ Wrote %s\n", previewOut)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&socketPath, "socket", "s", "", "Command socket path (default: from config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.config/borders/config.yaml)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().BoolVar(&logStderr, "log-stderr", false, "Log to stderr instead of the log file")
		cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Start with debug output on")
	}

	statusCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	statusCmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")
	statusCmd.Flags().BoolVar(&visual, "visual", false, "Draw the border frame in the terminal")
	validateCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Print the loaded config as JSON")

	previewCmd.Flags().Float64Var(&previewWidth, "width", 400, "Frame width in pixels")
	previewCmd.Flags().Float64Var(&previewHeight, "height", 300, "Frame height in pixels")
	previewCmd.Flags().StringVarP(&previewOut, "output", "o", "border.png", "Output PNG file")
	previewCmd.Flags().BoolVar(&previewLabel, "label", true, "Print the frame size inside the border")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(previewCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		printError(err.Error())
	}
	os.Exit(exitCode(err))
}

// runDaemon starts the border process. It blocks on the main goroutine,
// which the platform needs for its event loop.
func runDaemon(cmd *cobra.Command, args []string) error {
	if logStderr {
		logging.InitWriter(os.Stderr)
	} else if err := logging.Init(""); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file, logging to stderr: %v\n", err)
		logging.InitWriter(os.Stderr)
	}
	defer logging.Close()

	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.DebugOutput = true
	}

	p, err := platform.NewProvider()
	if err != nil {
		return err
	}

	d := daemon.New(p, daemon.Options{
		Config:     cfg,
		SocketPath: socketPath,
		Prompt:     true,
	})
	if err := d.Setup(); err != nil {
		logging.Error().Err(err).Msg("startup failed")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	defer stop()

	return d.Run(ctx)
}

// exitCode maps setup failures to their process exit codes
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var setupErr *daemon.SetupError
	if errors.As(err, &setupErr) {
		switch setupErr.Stage {
		case daemon.StagePermission:
			return exitPermission
		case daemon.StageEvents:
			return exitEvents
		case daemon.StageConfig:
			return exitConfig
		case daemon.StageSocket:
			return exitSocket
		}
	}
	return exitFailure
}

// resolveSocket picks the socket from the flag, the running daemon's state
// file, or the config, in that order
func resolveSocket() string {
	if socketPath != "" {
		return socketPath
	}
	if ds, err := state.LoadState(); err == nil && ds.Socket != "" && ds.Alive() {
		return ds.Socket
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		cfg = config.Default()
	}
	return cfg.GetSocketPath()
}

// sendMessage delivers one message and returns the daemon's output
func sendMessage(args []string) (string, error) {
	c := client.NewClient(resolveSocket(), timeout)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := c.Send(ctx, args...)
	if err != nil {
		if errors.Is(err, client.ErrFailure) {
			return "", errors.New(strings.TrimPrefix(err.Error(), client.ErrFailure.Error()+": "))
		}
		return "", err
	}
	return out, nil
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printYAML(data interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
