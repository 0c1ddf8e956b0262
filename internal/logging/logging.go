package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultLogDir is the directory under $HOME for the daemon log
	DefaultLogDir = ".local/state/borders"
	// DefaultLogFile is the log file name
	DefaultLogFile = "borders.log"
)

var (
	Logger  = zerolog.Nop()
	logFile *os.File
	verbose atomic.Bool
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// GetLogPath returns the default log file path
func GetLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultLogDir, DefaultLogFile)
}

// Init initializes the logging system with zerolog, appending to path.
// An empty path uses the default location.
func Init(path string) error {
	if path == "" {
		path = GetLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f

	InitWriter(logFile)
	return nil
}

// InitWriter points the logger at w without touching the filesystem.
func InitWriter(w io.Writer) {
	// Configure field names
	zerolog.MessageFieldName = "msg"

	// Create logger with hook that adds timestamp last
	Logger = zerolog.New(w).Hook(timestampHook{})

	SetVerbose(verbose.Load())
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetVerbose toggles debug output process-wide
func SetVerbose(on bool) {
	verbose.Store(on)
	if on {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Verbose reports whether debug output is enabled
func Verbose() bool {
	return verbose.Load()
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
