package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/borders/internal/types"
)

const (
	DefaultConfigDir  = ".config/borders"
	DefaultConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides
	EnvPrefix = "BORDERS"
)

// configFiles are tried in order when no path is given
var configFiles = []string{"config.yaml", "config.json", "config.toml"}

// Defaults match the outline drawn when no config file exists.
const (
	DefaultWidth        = 4.0
	DefaultColor        = "#d4d232"
	DefaultLevel        = 5
	DefaultInitialDelay = 100 * time.Millisecond
	DefaultPollInterval = 100 * time.Millisecond
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Border: BorderConfig{
			Width: DefaultWidth,
			Color: DefaultColor,
			Level: DefaultLevel,
		},
		Overview: OverviewConfig{
			InitialDelay: DefaultInitialDelay.String(),
			PollInterval: DefaultPollInterval.String(),
		},
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, config.yaml, config.json and config.toml under
// ~/.config/borders are tried in order; when none exists the defaults are
// used. Fields missing from the file keep their default values, and
// BORDERS_* environment variables override both.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		for _, name := range configFiles {
			candidate := filepath.Join(home, DefaultConfigDir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if cfg, err = LoadConfigFromBytes(data, ext); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from BORDERS_* environment variables and
// validates the result. Unset variables leave fields untouched.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml", "json" or "toml"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// GetBorderColor returns the parsed stroke color.
// Falls back to the default color if the configured one does not parse.
func (c *Config) GetBorderColor() types.Color {
	if col, err := types.ParseColor(c.Border.Color); err == nil {
		return col
	}
	col, _ := types.ParseColor(DefaultColor)
	return col
}

// GetBorderWidth returns the stroke width, 4 if not configured
func (c *Config) GetBorderWidth() float64 {
	if c.Border.Width > 0 {
		return c.Border.Width
	}
	return DefaultWidth
}

// GetInitialDelay returns the wait between the overview notification and
// the first poll
func (c *Config) GetInitialDelay() time.Duration {
	if d, err := time.ParseDuration(c.Overview.InitialDelay); err == nil && d >= 0 {
		return d
	}
	return DefaultInitialDelay
}

// GetPollInterval returns the overview poll period
func (c *Config) GetPollInterval() time.Duration {
	if d, err := time.ParseDuration(c.Overview.PollInterval); err == nil && d > 0 {
		return d
	}
	return DefaultPollInterval
}

// GetSocketPath returns the command socket path.
// Defaults to /tmp/borders_$USER.socket.
func (c *Config) GetSocketPath() string {
	if c.Socket != "" {
		return c.Socket
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "default"
	}
	return fmt.Sprintf("/tmp/borders_%s.socket", user)
}
